package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/advisor"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// RecommendationsComponent runs the advisor rules over the snapshot. Rules
// compute their own inputs, so this component stays independent of the other
// components' outputs.
type RecommendationsComponent struct {
	advisor *advisor.Advisor
}

// NewRecommendationsComponent creates the component with the default rules.
func NewRecommendationsComponent() *RecommendationsComponent {
	return &RecommendationsComponent{advisor: advisor.NewAdvisor()}
}

// Name returns the component identifier.
func (c *RecommendationsComponent) Name() string { return "recommendations" }

// Title returns the section title.
func (c *RecommendationsComponent) Title() string { return "Recommendations" }

// Generate declines when no rule fired.
func (c *RecommendationsComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	recs := c.advisor.Advise(snap)
	if len(recs) == 0 {
		return nil, nil
	}
	return &model.RecommendationsReport{Recommendations: recs}, nil
}
