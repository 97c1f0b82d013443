package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinmanjk/msos/internal/mock"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

func TestUnhandledExceptionComponent_Generate_Chain(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.ThreadList = []*mock.FakeThread{
		{OSID: 100, ManagedID: 1},
		{OSID: 200, ManagedID: 2, Exception: &snapshot.Exception{
			TypeName: "System.InvalidOperationException",
			Message:  "outer",
			Frames:   []string{"A.Run()", "B.Main()"},
			Inner: &snapshot.Exception{
				TypeName: "System.IO.FileNotFoundException",
				Message:  "inner",
			},
		}},
	}

	body, err := NewUnhandledExceptionComponent().Generate(context.Background(), snap)
	require.NoError(t, err)
	require.NotNil(t, body)

	rep := body.(*model.ExceptionReport)
	assert.Equal(t, uint32(200), rep.OSThreadID)
	assert.Equal(t, 2, rep.ManagedThreadID)

	require.NotNil(t, rep.Exception)
	assert.Equal(t, "System.InvalidOperationException", rep.Exception.ExceptionType)
	assert.Equal(t, "outer", rep.Exception.Message)
	assert.Equal(t, []string{"A.Run()", "B.Main()"}, rep.Exception.StackFrames)

	inner := rep.Exception.InnerException
	require.NotNil(t, inner)
	assert.Equal(t, "System.IO.FileNotFoundException", inner.ExceptionType)
	assert.Nil(t, inner.InnerException)
	assert.Equal(t, 2, rep.Exception.Depth())
}

func TestUnhandledExceptionComponent_Generate_NoExceptionDeclines(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.ThreadList = []*mock.FakeThread{
		{OSID: 100, ManagedID: 1},
	}

	body, err := NewUnhandledExceptionComponent().Generate(context.Background(), snap)
	assert.NoError(t, err)
	assert.Nil(t, body)
}

func TestUnhandledExceptionComponent_Generate_FirstFaultedThreadWins(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.ThreadList = []*mock.FakeThread{
		{OSID: 100, ManagedID: 1, Exception: &snapshot.Exception{TypeName: "First"}},
		{OSID: 200, ManagedID: 2, Exception: &snapshot.Exception{TypeName: "Second"}},
	}

	body, err := NewUnhandledExceptionComponent().Generate(context.Background(), snap)
	require.NoError(t, err)

	rep := body.(*model.ExceptionReport)
	assert.Equal(t, uint32(100), rep.OSThreadID)
	assert.Equal(t, "First", rep.Exception.ExceptionType)
}

func TestWalkExceptionChain_CyclicChainIsBounded(t *testing.T) {
	// A self-referential source chain must terminate at the depth guard.
	exc := &snapshot.Exception{TypeName: "System.Exception", Message: "loop"}
	exc.Inner = exc

	info := walkExceptionChain(exc, maxExceptionDepth)
	require.NotNil(t, info)
	assert.Equal(t, maxExceptionDepth, info.Depth())
}

func TestWalkExceptionChain_NilAndExhaustedDepth(t *testing.T) {
	assert.Nil(t, walkExceptionChain(nil, maxExceptionDepth))
	assert.Nil(t, walkExceptionChain(&snapshot.Exception{}, 0))
}
