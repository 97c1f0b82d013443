package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tinmanjk/msos/internal/mock"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/internal/testutil"
	"github.com/tinmanjk/msos/pkg/config"
	"github.com/tinmanjk/msos/pkg/model"
	"github.com/tinmanjk/msos/pkg/utils"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.LoadFromReader("yaml", []byte(""))
	require.NoError(t, err)
	cfg.Report.Pretty = false
	return cfg
}

func fullSnapshot() *mock.FakeSnapshot {
	snap := mock.NewFakeSnapshot()
	snap.ThreadList = []*mock.FakeThread{{OSID: 100, ManagedID: 1}}
	snap.HeapData = &mock.FakeHeap{
		Objects: []snapshot.Object{
			{Address: 0x1000, Size: 64, TypeName: "System.String"},
		},
	}
	snap.Walker = &mock.FakeStackWalker{}
	return snap
}

func TestService_New_Validation(t *testing.T) {
	opener := &mock.FakeOpener{Snapshot: fullSnapshot()}

	_, err := New(nil, opener, &utils.NullLogger{})
	assert.Error(t, err)

	_, err = New(testConfig(t), nil, &utils.NullLogger{})
	assert.Error(t, err)

	svc, err := New(testConfig(t), opener, &utils.NullLogger{})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestService_Run_WritesReport(t *testing.T) {
	cfg := testConfig(t)
	opener := &mock.FakeOpener{Snapshot: fullSnapshot()}
	svc, err := New(cfg, opener, &utils.NullLogger{})
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	result, err := svc.Run(context.Background(), "app.dmp", output)
	require.NoError(t, err)

	assert.Equal(t, []string{"app.dmp"}, opener.Opened)
	assert.Equal(t, output, result.OutputFile)

	doc := testutil.ReadReportFile(t, output)
	assert.Equal(t, model.ResultCompletedSuccessfully, doc.Result)
	assert.NotEmpty(t, doc.Sections)
	assert.Equal(t, "target_overview", doc.Sections[0].Name)
}

func TestService_Run_GzipOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Gzip = true
	svc, err := New(cfg, &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{})
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	result, err := svc.Run(context.Background(), "app.dmp", output)
	require.NoError(t, err)

	// The gz suffix is appended when missing.
	assert.Equal(t, output+".gz", result.OutputFile)
	doc := testutil.ReadReportFile(t, result.OutputFile)
	assert.Equal(t, model.ResultCompletedSuccessfully, doc.Result)
}

func TestService_Run_OpenFailure(t *testing.T) {
	opener := &mock.FakeOpener{Err: errors.New("not a dump file")}
	svc, err := New(testConfig(t), opener, &utils.NullLogger{})
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	_, err = svc.Run(context.Background(), "bad.dmp", output)
	assert.Error(t, err)
	assert.False(t, testutil.FileExists(t, output))
}

func TestService_Run_InputValidation(t *testing.T) {
	svc, err := New(testConfig(t), &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{})
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), "", "out.json")
	assert.Error(t, err)

	_, err = svc.Run(context.Background(), "app.dmp", "")
	assert.Error(t, err)
}

func TestService_Run_ArchivesReport(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Archive = true

	store := &mock.MockStorage{}
	store.ExpectUploadFile("", nil)
	store.ExpectGetURL("cos://reports/report.json")

	svc, err := New(cfg, &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{},
		WithStorage(store))
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	result, err := svc.Run(context.Background(), "app.dmp", output)
	require.NoError(t, err)
	assert.Equal(t, "cos://reports/report.json", result.ArchiveURL)
	store.AssertExpectations(t)
}

func TestService_Run_ArchiveFailureDoesNotFailRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.Archive = true

	store := &mock.MockStorage{}
	store.ExpectUploadFile("", errors.New("bucket unavailable"))

	svc, err := New(cfg, &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{},
		WithStorage(store))
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	result, err := svc.Run(context.Background(), "app.dmp", output)
	require.NoError(t, err)
	assert.Empty(t, result.ArchiveURL)
	assert.True(t, testutil.FileExists(t, output))
}

func TestService_Run_RecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.History = true

	repo := &mock.MockRunRepository{}
	repo.ExpectSaveRun(nil).Run(func(args tmock.Arguments) {
		run := args.Get(1).(*model.ReportRun)
		run.ID = 42
	})

	svc, err := New(cfg, &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{},
		WithRepository(repo))
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	result, err := svc.Run(context.Background(), "app.dmp", output)
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.RunID)
	repo.AssertExpectations(t)
}

func TestService_Run_HistoryFailureDoesNotFailRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Report.History = true

	repo := &mock.MockRunRepository{}
	repo.ExpectSaveRun(errors.New("database locked"))

	svc, err := New(cfg, &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{},
		WithRepository(repo))
	require.NoError(t, err)

	output := filepath.Join(testutil.TempDir(t), "report.json")
	result, err := svc.Run(context.Background(), "app.dmp", output)
	require.NoError(t, err)
	assert.Zero(t, result.RunID)
}

func TestService_ListHistory_RequiresRepository(t *testing.T) {
	svc, err := New(testConfig(t), &mock.FakeOpener{Snapshot: fullSnapshot()}, &utils.NullLogger{})
	require.NoError(t, err)

	_, err = svc.ListHistory(context.Background(), 10)
	assert.Error(t, err)
}
