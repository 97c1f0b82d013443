// Package snapshot defines the contract the report engine consumes from a
// snapshot provider: a frozen, read-only view of a captured process image.
//
// The engine never parses dump files itself. A provider (ClrMD/DbgEng bridge,
// test fake, ...) implements these interfaces and hands the engine a Snapshot.
package snapshot

import "fmt"

// TargetType describes the kind of captured image a snapshot was opened from.
type TargetType string

const (
	// TargetFullDump is a full process dump including the managed heap.
	TargetFullDump TargetType = "full_dump"
	// TargetMiniDump is a heap-less minidump; heap-dependent analyses decline.
	TargetMiniDump TargetType = "mini_dump"
	// TargetLiveProcess is a suspended live process.
	TargetLiveProcess TargetType = "live_process"
)

// Snapshot is an immutable point-in-time view of a process's runtime state.
// All reads are non-destructive; implementations must tolerate concurrent
// calls only from a single goroutine at a time.
type Snapshot interface {
	// TargetType reports what kind of image backs this snapshot.
	TargetType() TargetType

	// ProcessID returns the OS process id of the captured process.
	ProcessID() uint32

	// Architecture returns the target architecture, e.g. "x64".
	Architecture() string

	// RuntimeVersions lists the managed runtime versions loaded in the target.
	RuntimeVersions() []string

	// Threads enumerates all managed threads known to the snapshot.
	Threads() []Thread

	// Heap returns the managed heap view. ok is false for heap-less targets;
	// callers must treat that as "analysis not applicable", not an error.
	Heap() (Heap, bool)

	// Modules enumerates the modules loaded in the target process.
	Modules() []Module

	// MemoryRegions enumerates the target's virtual memory regions.
	MemoryRegions() []MemoryRegion

	// StackWalker acquires the secondary stack-walking handle. The handle is
	// exclusive and non-reentrant; the caller must Close it on every exit
	// path before anything else may acquire it.
	StackWalker() (StackWalker, error)
}

// Thread is a managed thread observed in the snapshot.
type Thread interface {
	// OSThreadID returns the operating-system thread id.
	OSThreadID() uint32

	// ManagedThreadID returns the runtime-assigned managed thread id.
	ManagedThreadID() int

	// CurrentException returns the live, currently-active exception on this
	// thread, or nil when the thread holds none.
	CurrentException() *Exception

	// BlockingObjects lists the synchronization objects this thread is
	// blocked on. Empty for threads that are not waiting.
	BlockingObjects() []BlockingObject
}

// BlockReason classifies why a thread is blocked on an object.
type BlockReason int

// Block reasons, mirroring the provider's blocking-object records.
const (
	BlockReasonNone BlockReason = iota
	BlockReasonMonitorEnter
	BlockReasonMonitorWait
	BlockReasonWaitOne
	BlockReasonWaitAll
	BlockReasonWaitAny
	BlockReasonThreadJoin
	BlockReasonReaderAcquired
	BlockReasonWriterAcquired
)

// String returns the human-readable reason name.
func (r BlockReason) String() string {
	switch r {
	case BlockReasonNone:
		return "None"
	case BlockReasonMonitorEnter:
		return "Monitor.Enter"
	case BlockReasonMonitorWait:
		return "Monitor.Wait"
	case BlockReasonWaitOne:
		return "WaitHandle.WaitOne"
	case BlockReasonWaitAll:
		return "WaitHandle.WaitAll"
	case BlockReasonWaitAny:
		return "WaitHandle.WaitAny"
	case BlockReasonThreadJoin:
		return "Thread.Join"
	case BlockReasonReaderAcquired:
		return "ReaderWriterLock (read)"
	case BlockReasonWriterAcquired:
		return "ReaderWriterLock (write)"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// BlockingObject is one blocking relationship of a thread: the object it
// waits on, the threads currently owning it and the threads waiting with it.
// Owner slots may be nil when the provider could not resolve an owner.
type BlockingObject struct {
	Reason  BlockReason
	Address uint64
	Owners  []Thread
	Waiters []Thread
}

// Exception is a live managed exception object. Inner links form a chain that
// the provider does not guarantee to be acyclic; walkers must bound traversal.
type Exception struct {
	TypeName string
	Message  string
	Frames   []string // display strings, caller to callee
	Inner    *Exception
}

// Object is a single heap object visited during heap enumeration.
type Object struct {
	Address  uint64
	Size     uint64
	TypeName string // empty when the provider could not resolve the type
	Free     bool   // internal free-space marker, not user data
}

// Segment is one managed heap segment with its commit and reserve extents.
type Segment struct {
	Base           uint64
	CommittedBytes uint64
	ReservedBytes  uint64
}

// Heap is the managed heap view of a full-dump snapshot.
type Heap interface {
	// TotalSize returns the total managed heap size in bytes.
	TotalSize() uint64

	// GenerationSizes returns per-generation sizes: gen0, gen1, gen2 and the
	// large object heap, in that order.
	GenerationSizes() [4]uint64

	// Segments lists the heap segments.
	Segments() []Segment

	// ForEachObject walks every heap object (free-space markers included) in
	// a single forward pass, invoking fn for each. Enumeration stops early
	// when fn returns false. The object population can reach tens of
	// millions; callers must not buffer it.
	ForEachObject(fn func(Object) bool) error

	// TypeName resolves the runtime type name of the object at addr.
	// Best-effort: ok is false when the address maps to no known type.
	TypeName(addr uint64) (string, bool)
}

// Module is a module loaded in the target process.
type Module struct {
	FileName string
	FileSize uint64
	Version  string // empty when unresolved
	Managed  bool
}

// Memory region state flags.
const (
	RegionFree    uint32 = 0x10000 // MEM_FREE
	RegionCommit  uint32 = 0x1000  // MEM_COMMIT
	RegionReserve uint32 = 0x2000  // MEM_RESERVE
)

// Memory region type flags.
const (
	RegionPrivate uint32 = 0x20000   // MEM_PRIVATE
	RegionMapped  uint32 = 0x40000   // MEM_MAPPED
	RegionImage   uint32 = 0x1000000 // MEM_IMAGE
)

// MemoryRegion is one virtual-memory region of the target process.
type MemoryRegion struct {
	Base  uint64
	Size  uint64
	State uint32
	Type  uint32
}

// IsFree reports whether the region is unallocated address space.
func (r MemoryRegion) IsFree() bool { return r.State&RegionFree != 0 }

// IsCommitted reports whether the region is committed.
func (r MemoryRegion) IsCommitted() bool { return r.State&RegionCommit != 0 }

// IsReserved reports whether the region is reserved but not committed.
func (r MemoryRegion) IsReserved() bool { return r.State&RegionReserve != 0 }

// IsPrivate reports whether the region is private (non-shareable) memory.
func (r MemoryRegion) IsPrivate() bool { return r.Type&RegionPrivate != 0 }

// UnifiedFrame is one frame of a stack already merged across unmanaged and
// managed code by the secondary engine. Order is caller to callee and must be
// preserved end to end.
type UnifiedFrame struct {
	Module     string
	Method     string
	SourceFile string
	SourceLine int
}

// WalkerThread is a thread as seen by the secondary stack-walking engine.
// Not every walker thread corresponds to a managed thread.
type WalkerThread interface {
	// OSThreadID returns the OS thread id used to match managed threads.
	OSThreadID() uint32

	// ManagedThread returns the matched managed thread, or nil when this OS
	// thread runs no managed code.
	ManagedThread() Thread

	// Frames returns the unified stack trace for this thread.
	Frames() []UnifiedFrame
}

// StackWalker is the scoped secondary stack-walking handle. It represents
// exclusive access to the snapshot's lower-level debug interface; holders
// must Close it before any other component may acquire one.
type StackWalker interface {
	// Threads enumerates all threads known to the secondary engine.
	Threads() []WalkerThread

	// Close releases the handle. Safe to call exactly once.
	Close() error
}

// Opener opens a captured process image into a Snapshot. Implementations
// live outside this repository; tests use the fake in internal/mock.
type Opener interface {
	Open(path string) (Snapshot, error)
}
