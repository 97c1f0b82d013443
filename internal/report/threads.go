package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// ThreadStacksComponent produces one unified call stack per OS thread known
// to the secondary stack-walking engine. The engine has already merged
// unmanaged and managed frames per thread, matched by OS thread id; this
// component only converts frames and attaches the managed thread id.
type ThreadStacksComponent struct{}

// NewThreadStacksComponent creates the component.
func NewThreadStacksComponent() *ThreadStacksComponent {
	return &ThreadStacksComponent{}
}

// Name returns the component identifier.
func (c *ThreadStacksComponent) Name() string { return "thread_stacks" }

// Title returns the section title.
func (c *ThreadStacksComponent) Title() string { return "Thread Stacks" }

// Generate acquires the scoped stack-walking handle and releases it on every
// exit path. Acquisition failure (e.g. an unsupported target type) is a
// clean decline, not a fault.
func (c *ThreadStacksComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	walker, err := snap.StackWalker()
	if err != nil {
		return nil, nil
	}
	defer walker.Close()

	walkerThreads := walker.Threads()
	traces := make([]model.StackTrace, 0, len(walkerThreads))
	for _, wt := range walkerThreads {
		traces = append(traces, convertStackTrace(wt))
	}

	return &model.StacksReport{Traces: traces}, nil
}

// convertStackTrace maps one walker thread to the report format. Frame order
// is preserved as produced by the stack walk; frame conversion is a straight
// field mapping with no inference.
func convertStackTrace(wt snapshot.WalkerThread) model.StackTrace {
	trace := model.StackTrace{
		OSThreadID:      wt.OSThreadID(),
		ManagedThreadID: model.NoManagedThread,
	}
	if mt := wt.ManagedThread(); mt != nil {
		trace.ManagedThreadID = mt.ManagedThreadID()
	}

	frames := wt.Frames()
	trace.Frames = make([]model.StackFrame, 0, len(frames))
	for _, f := range frames {
		trace.Frames = append(trace.Frames, model.StackFrame{
			Module:     f.Module,
			Method:     f.Method,
			SourceFile: f.SourceFile,
			SourceLine: f.SourceLine,
		})
	}
	return trace
}
