package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// TargetOverviewComponent summarizes the identity of the captured image.
type TargetOverviewComponent struct{}

// NewTargetOverviewComponent creates the component.
func NewTargetOverviewComponent() *TargetOverviewComponent {
	return &TargetOverviewComponent{}
}

// Name returns the component identifier.
func (c *TargetOverviewComponent) Name() string { return "target_overview" }

// Title returns the section title.
func (c *TargetOverviewComponent) Title() string { return "Target Overview" }

// Generate projects snapshot identity fields into the report. It always
// contributes.
func (c *TargetOverviewComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	return &model.TargetReport{
		ProcessID:       snap.ProcessID(),
		TargetType:      string(snap.TargetType()),
		Architecture:    snap.Architecture(),
		RuntimeVersions: snap.RuntimeVersions(),
	}, nil
}
