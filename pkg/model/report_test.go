package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExceptionInfo_Depth(t *testing.T) {
	var nilExc *ExceptionInfo
	assert.Equal(t, 0, nilExc.Depth())

	exc := &ExceptionInfo{
		ExceptionType: "System.Exception",
		InnerException: &ExceptionInfo{
			ExceptionType:  "System.IO.IOException",
			InnerException: &ExceptionInfo{ExceptionType: "System.Exception"},
		},
	}
	assert.Equal(t, 3, exc.Depth())
}

func TestReportRun_Duration(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	run := &ReportRun{StartedAt: started, EndedAt: started.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, run.Duration())
}

func TestReportDocument_JSONShape(t *testing.T) {
	doc := &ReportDocument{
		Result:           ResultInternalError,
		FailedComponents: []string{"thread_stacks"},
		Sections: []Section{
			{Name: "target_overview", Title: "Target Overview", Body: &TargetReport{ProcessID: 1}},
		},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	raw := map[string]any{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "InternalError", raw["result"])
	assert.Contains(t, raw, "analysis_start_time")
	assert.Contains(t, raw, "failed_components")
}

func TestReportDocument_OmitsEmptyFailedComponents(t *testing.T) {
	data, err := json.Marshal(&ReportDocument{Result: ResultCompletedSuccessfully})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "failed_components")
}
