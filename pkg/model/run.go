package model

import "time"

// ReportRun is one recorded execution of the report pipeline, persisted in
// the run-history repository.
type ReportRun struct {
	ID               int64        `json:"id"`
	DumpPath         string       `json:"dump_path"`
	OutputFile       string       `json:"output_file"`
	Result           ReportResult `json:"result"`
	FailedComponents []string     `json:"failed_components,omitempty"`
	SectionCount     int          `json:"section_count"`
	StartedAt        time.Time    `json:"started_at"`
	EndedAt          time.Time    `json:"ended_at"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Duration returns the wall-clock time the run took.
func (r *ReportRun) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
