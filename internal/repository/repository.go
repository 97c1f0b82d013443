// Package repository persists report run history.
package repository

import (
	"context"

	"github.com/tinmanjk/msos/pkg/model"
)

// RunRepository records report runs and serves run history queries.
type RunRepository interface {
	// SaveRun persists one completed run. The run's ID is populated on
	// success.
	SaveRun(ctx context.Context, run *model.ReportRun) error

	// GetRunByID retrieves a run by its id.
	GetRunByID(ctx context.Context, id int64) (*model.ReportRun, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*model.ReportRun, error)
}
