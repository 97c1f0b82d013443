package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinmanjk/msos/internal/mock"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

func TestThreadStacksComponent_Generate_UnifiedTraces(t *testing.T) {
	managed := &mock.FakeThread{OSID: 100, ManagedID: 7}
	snap := mock.NewFakeSnapshot()
	snap.Walker = &mock.FakeStackWalker{
		ThreadList: []*mock.FakeWalkerThread{
			{
				OSID:    100,
				Managed: managed,
				FrameList: []snapshot.UnifiedFrame{
					{Module: "ntdll", Method: "NtWaitForSingleObject"},
					{Module: "app", Method: "Program.Main", SourceFile: "Program.cs", SourceLine: 42},
				},
			},
			{
				OSID: 200, // no managed code on this thread
				FrameList: []snapshot.UnifiedFrame{
					{Module: "kernel32", Method: "BaseThreadInitThunk"},
				},
			},
		},
	}

	body, err := NewThreadStacksComponent().Generate(context.Background(), snap)
	require.NoError(t, err)
	require.NotNil(t, body)

	rep := body.(*model.StacksReport)
	require.Len(t, rep.Traces, 2)

	first := rep.Traces[0]
	assert.Equal(t, uint32(100), first.OSThreadID)
	assert.Equal(t, 7, first.ManagedThreadID)
	require.Len(t, first.Frames, 2)
	// Frame order is preserved as produced by the walk.
	assert.Equal(t, "NtWaitForSingleObject", first.Frames[0].Method)
	assert.Equal(t, "Program.Main", first.Frames[1].Method)
	assert.Equal(t, "Program.cs", first.Frames[1].SourceFile)
	assert.Equal(t, 42, first.Frames[1].SourceLine)

	second := rep.Traces[1]
	assert.Equal(t, uint32(200), second.OSThreadID)
	assert.Equal(t, model.NoManagedThread, second.ManagedThreadID)
}

func TestThreadStacksComponent_Generate_ReleasesWalker(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.Walker = &mock.FakeStackWalker{}

	_, err := NewThreadStacksComponent().Generate(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, snap.Walker.Closed)
	assert.Equal(t, 1, snap.WalkerCalls)
}

func TestThreadStacksComponent_Generate_AcquisitionFailureDeclines(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.WalkerErr = errors.New("stack walking unavailable for this target")

	body, err := NewThreadStacksComponent().Generate(context.Background(), snap)
	assert.NoError(t, err)
	assert.Nil(t, body)
}

func TestThreadStacksComponent_Generate_EmptyWalkerContributes(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.Walker = &mock.FakeStackWalker{}

	body, err := NewThreadStacksComponent().Generate(context.Background(), snap)
	require.NoError(t, err)
	require.NotNil(t, body)
	assert.Empty(t, body.(*model.StacksReport).Traces)
}
