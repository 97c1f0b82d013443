package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// maxExceptionDepth bounds the inner-exception walk. The live exception
// graph does not guarantee acyclicity; a self-referential chain must not
// loop the walker forever.
const maxExceptionDepth = 64

// UnhandledExceptionComponent reports the exception chain of the first
// thread carrying a live, currently-active managed exception.
type UnhandledExceptionComponent struct{}

// NewUnhandledExceptionComponent creates the component.
func NewUnhandledExceptionComponent() *UnhandledExceptionComponent {
	return &UnhandledExceptionComponent{}
}

// Name returns the component identifier.
func (c *UnhandledExceptionComponent) Name() string { return "unhandled_exception" }

// Title returns the section title.
func (c *UnhandledExceptionComponent) Title() string { return "Unhandled Exception" }

// Generate declines when no thread holds a live exception.
func (c *UnhandledExceptionComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	for _, t := range snap.Threads() {
		exc := t.CurrentException()
		if exc == nil {
			continue
		}
		return &model.ExceptionReport{
			OSThreadID:      t.OSThreadID(),
			ManagedThreadID: t.ManagedThreadID(),
			Exception:       walkExceptionChain(exc, maxExceptionDepth),
		}, nil
	}
	return nil, nil
}

// walkExceptionChain converts a live exception and its inner chain into
// ExceptionInfo records, following Inner links until absent or the depth
// guard trips.
func walkExceptionChain(exc *snapshot.Exception, maxDepth int) *model.ExceptionInfo {
	if exc == nil || maxDepth <= 0 {
		return nil
	}

	frames := make([]string, len(exc.Frames))
	copy(frames, exc.Frames)

	return &model.ExceptionInfo{
		ExceptionType:  exc.TypeName,
		Message:        exc.Message,
		StackFrames:    frames,
		InnerException: walkExceptionChain(exc.Inner, maxDepth-1),
	}
}
