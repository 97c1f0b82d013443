package repository

import (
	"strings"
	"time"

	"github.com/tinmanjk/msos/pkg/model"
)

// ReportRunRecord is the database row for one report run.
type ReportRunRecord struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement"`
	DumpPath         string    `gorm:"column:dump_path;size:1024"`
	OutputFile       string    `gorm:"column:output_file;size:1024"`
	Result           string    `gorm:"column:result;size:32;index"`
	FailedComponents string    `gorm:"column:failed_components;size:1024"`
	SectionCount     int       `gorm:"column:section_count"`
	StartedAt        time.Time `gorm:"column:started_at"`
	EndedAt          time.Time `gorm:"column:ended_at"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name.
func (ReportRunRecord) TableName() string {
	return "report_runs"
}

// ToModel converts the row to the domain model.
func (r *ReportRunRecord) ToModel() *model.ReportRun {
	run := &model.ReportRun{
		ID:           r.ID,
		DumpPath:     r.DumpPath,
		OutputFile:   r.OutputFile,
		Result:       model.ReportResult(r.Result),
		SectionCount: r.SectionCount,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
		CreatedAt:    r.CreatedAt,
	}
	if r.FailedComponents != "" {
		run.FailedComponents = strings.Split(r.FailedComponents, ",")
	}
	return run
}

// FromModel converts the domain model to a row.
func FromModel(run *model.ReportRun) *ReportRunRecord {
	return &ReportRunRecord{
		ID:               run.ID,
		DumpPath:         run.DumpPath,
		OutputFile:       run.OutputFile,
		Result:           string(run.Result),
		FailedComponents: strings.Join(run.FailedComponents, ","),
		SectionCount:     run.SectionCount,
		StartedAt:        run.StartedAt,
		EndedAt:          run.EndedAt,
		CreatedAt:        run.CreatedAt,
	}
}
