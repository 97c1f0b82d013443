// Package mock provides test doubles: a plain-data snapshot fake and
// testify mocks for the storage and repository interfaces.
package mock

import (
	"errors"

	"github.com/tinmanjk/msos/internal/snapshot"
)

// FakeSnapshot is a plain-data implementation of snapshot.Snapshot. Tests
// populate the fields directly.
type FakeSnapshot struct {
	Target       snapshot.TargetType
	PID          uint32
	Arch         string
	Versions     []string
	ThreadList   []*FakeThread
	HeapData     *FakeHeap // nil = heap-less snapshot
	ModuleList   []snapshot.Module
	Regions      []snapshot.MemoryRegion
	Walker       *FakeStackWalker // nil = acquisition fails
	WalkerErr    error
	WalkerCalls  int
}

// NewFakeSnapshot returns a minimal full-dump snapshot.
func NewFakeSnapshot() *FakeSnapshot {
	return &FakeSnapshot{
		Target: snapshot.TargetFullDump,
		PID:    4242,
		Arch:   "x64",
	}
}

func (s *FakeSnapshot) TargetType() snapshot.TargetType { return s.Target }
func (s *FakeSnapshot) ProcessID() uint32               { return s.PID }
func (s *FakeSnapshot) Architecture() string            { return s.Arch }
func (s *FakeSnapshot) RuntimeVersions() []string       { return s.Versions }
func (s *FakeSnapshot) Modules() []snapshot.Module      { return s.ModuleList }

func (s *FakeSnapshot) MemoryRegions() []snapshot.MemoryRegion { return s.Regions }

func (s *FakeSnapshot) Threads() []snapshot.Thread {
	threads := make([]snapshot.Thread, len(s.ThreadList))
	for i, t := range s.ThreadList {
		threads[i] = t
	}
	return threads
}

func (s *FakeSnapshot) Heap() (snapshot.Heap, bool) {
	if s.HeapData == nil {
		return nil, false
	}
	return s.HeapData, true
}

func (s *FakeSnapshot) StackWalker() (snapshot.StackWalker, error) {
	s.WalkerCalls++
	if s.WalkerErr != nil {
		return nil, s.WalkerErr
	}
	if s.Walker == nil {
		return nil, errors.New("stack walking not supported for this target")
	}
	return s.Walker, nil
}

// FakeThread implements snapshot.Thread.
type FakeThread struct {
	OSID      uint32
	ManagedID int
	Exception *snapshot.Exception
	Blocking  []snapshot.BlockingObject
}

func (t *FakeThread) OSThreadID() uint32                          { return t.OSID }
func (t *FakeThread) ManagedThreadID() int                        { return t.ManagedID }
func (t *FakeThread) CurrentException() *snapshot.Exception       { return t.Exception }
func (t *FakeThread) BlockingObjects() []snapshot.BlockingObject  { return t.Blocking }

// FakeHeap implements snapshot.Heap over a fixed object slice.
type FakeHeap struct {
	Total       uint64
	Generations [4]uint64
	SegmentList []snapshot.Segment
	Objects     []snapshot.Object
	WalkErr     error // returned by ForEachObject when set
	TypeNames   map[uint64]string
}

func (h *FakeHeap) TotalSize() uint64             { return h.Total }
func (h *FakeHeap) GenerationSizes() [4]uint64    { return h.Generations }
func (h *FakeHeap) Segments() []snapshot.Segment  { return h.SegmentList }

func (h *FakeHeap) ForEachObject(fn func(snapshot.Object) bool) error {
	if h.WalkErr != nil {
		return h.WalkErr
	}
	for _, obj := range h.Objects {
		if !fn(obj) {
			break
		}
	}
	return nil
}

func (h *FakeHeap) TypeName(addr uint64) (string, bool) {
	name, ok := h.TypeNames[addr]
	return name, ok
}

// FakeStackWalker implements snapshot.StackWalker and records whether it was
// released.
type FakeStackWalker struct {
	ThreadList []*FakeWalkerThread
	Closed     bool
	CloseErr   error
}

func (w *FakeStackWalker) Threads() []snapshot.WalkerThread {
	threads := make([]snapshot.WalkerThread, len(w.ThreadList))
	for i, t := range w.ThreadList {
		threads[i] = t
	}
	return threads
}

func (w *FakeStackWalker) Close() error {
	w.Closed = true
	return w.CloseErr
}

// FakeWalkerThread implements snapshot.WalkerThread.
type FakeWalkerThread struct {
	OSID      uint32
	Managed   *FakeThread // nil when the OS thread runs no managed code
	FrameList []snapshot.UnifiedFrame
}

func (t *FakeWalkerThread) OSThreadID() uint32 { return t.OSID }

func (t *FakeWalkerThread) ManagedThread() snapshot.Thread {
	if t.Managed == nil {
		return nil
	}
	return t.Managed
}

func (t *FakeWalkerThread) Frames() []snapshot.UnifiedFrame { return t.FrameList }

// FakeOpener implements snapshot.Opener, returning a prepared snapshot or
// error for any path.
type FakeOpener struct {
	Snapshot *FakeSnapshot
	Err      error
	Opened   []string
}

func (o *FakeOpener) Open(path string) (snapshot.Snapshot, error) {
	o.Opened = append(o.Opened, path)
	if o.Err != nil {
		return nil, o.Err
	}
	return o.Snapshot, nil
}
