package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tinmanjk/msos/pkg/model"
)

// GormRunRepository implements RunRepository using GORM.
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a GormRunRepository.
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Migrate creates the run-history schema.
func (r *GormRunRepository) Migrate() error {
	if err := r.db.AutoMigrate(&ReportRunRecord{}); err != nil {
		return fmt.Errorf("failed to migrate run history schema: %w", err)
	}
	return nil
}

// SaveRun persists one completed run.
func (r *GormRunRepository) SaveRun(ctx context.Context, run *model.ReportRun) error {
	record := FromModel(run)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save report run: %w", err)
	}
	run.ID = record.ID
	run.CreatedAt = record.CreatedAt
	return nil
}

// GetRunByID retrieves a run by its id.
func (r *GormRunRepository) GetRunByID(ctx context.Context, id int64) (*model.ReportRun, error) {
	var record ReportRunRecord

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("report run not found: %d", id)
		}
		return nil, fmt.Errorf("failed to get report run: %w", err)
	}
	return record.ToModel(), nil
}

// ListRuns returns the most recent runs, newest first.
func (r *GormRunRepository) ListRuns(ctx context.Context, limit int) ([]*model.ReportRun, error) {
	var records []ReportRunRecord

	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list report runs: %w", err)
	}

	runs := make([]*model.ReportRun, len(records))
	for i := range records {
		runs[i] = records[i].ToModel()
	}
	return runs, nil
}
