// Package model defines the report document and its section payloads.
package model

import "time"

// ReportResult is the overall outcome of a report run.
type ReportResult string

const (
	// ResultCompletedSuccessfully means every component either contributed
	// or declined cleanly.
	ResultCompletedSuccessfully ReportResult = "CompletedSuccessfully"
	// ResultInternalError means at least one component faulted during
	// generation. The remaining sections are still valid.
	ResultInternalError ReportResult = "InternalError"
)

// ReportDocument is the final assembled report. It is created once per run
// and immutable once serialized. Sections appear in component registration
// order; components that declined are absent.
type ReportDocument struct {
	StartedAt        time.Time    `json:"analysis_start_time"`
	EndedAt          time.Time    `json:"analysis_end_time"`
	Result           ReportResult `json:"result"`
	FailedComponents []string     `json:"failed_components,omitempty"`
	Sections         []Section    `json:"sections"`
}

// Section is one accepted component contribution.
type Section struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Body  any    `json:"body"`
}

// TargetReport identifies the captured image the report was built from.
type TargetReport struct {
	ProcessID       uint32   `json:"process_id"`
	TargetType      string   `json:"target_type"`
	Architecture    string   `json:"architecture"`
	RuntimeVersions []string `json:"runtime_versions"`
}

// ExceptionInfo is one link of an unhandled-exception chain. InnerException
// forms a finite singly-linked chain; the walker bounds depth so a malformed
// self-referential source cannot produce an unbounded document.
type ExceptionInfo struct {
	ExceptionType  string         `json:"exception_type"`
	Message        string         `json:"message"`
	StackFrames    []string       `json:"stack_frames"`
	InnerException *ExceptionInfo `json:"inner_exception,omitempty"`
}

// Depth returns the number of links in the chain, this link included.
func (e *ExceptionInfo) Depth() int {
	d := 0
	for x := e; x != nil; x = x.InnerException {
		d++
	}
	return d
}

// ExceptionReport is the unhandled-exception section body.
type ExceptionReport struct {
	OSThreadID      uint32         `json:"os_thread_id"`
	ManagedThreadID int            `json:"managed_thread_id"`
	Exception       *ExceptionInfo `json:"exception"`
}

// ThreadInfo is a node of the lock graph: a thread and the locks it is
// blocked on. Owner and waiter references inside LockInfo are identity
// copies (no Locks populated), so the graph has no aliasing hazards while
// still representing logical wait cycles.
type ThreadInfo struct {
	OSThreadID      uint32     `json:"os_thread_id"`
	ManagedThreadID int        `json:"managed_thread_id"`
	Locks           []LockInfo `json:"locks,omitempty"`
}

// LockInfo is one blocking relationship: the blocked-on object, why the
// thread waits on it, and the owning and waiting threads. ObjectType is
// empty when the address resolved to no known type.
type LockInfo struct {
	Reason     string       `json:"reason"`
	Object     uint64       `json:"object"`
	ObjectType string       `json:"object_type,omitempty"`
	Owners     []ThreadInfo `json:"owners"`
	Waiters    []ThreadInfo `json:"waiters"`
}

// LockGraphReport is the blocked-threads section body.
type LockGraphReport struct {
	Threads []ThreadInfo `json:"threads"`
}

// StackFrame is one frame of a unified stack trace.
type StackFrame struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	SourceFile string `json:"source_file,omitempty"`
	SourceLine int    `json:"source_line,omitempty"`
}

// NoManagedThread is the ManagedThreadID sentinel for OS threads that run no
// managed code.
const NoManagedThread = -1

// StackTrace is the unified call stack of one OS thread. Frames are ordered
// caller to callee as produced by the stack walk.
type StackTrace struct {
	OSThreadID      uint32       `json:"os_thread_id"`
	ManagedThreadID int          `json:"managed_thread_id"`
	Frames          []StackFrame `json:"frames"`
}

// StacksReport is the thread-stacks section body.
type StacksReport struct {
	Traces []StackTrace `json:"traces"`
}

// ModuleInfo is one loaded module.
type ModuleInfo struct {
	FileName string `json:"file_name"`
	FileSize uint64 `json:"file_size"`
	Version  string `json:"version,omitempty"`
	Managed  bool   `json:"managed"`
}

// ModulesReport is the loaded-modules section body.
type ModulesReport struct {
	Modules []ModuleInfo `json:"modules"`
}

// MemoryUsageReport summarizes virtual-memory and managed-heap usage.
// Win32HeapBytes and ThreadStackBytes are not computed and always report
// zero.
type MemoryUsageReport struct {
	CommittedBytes   uint64    `json:"committed_bytes"`
	ReservedBytes    uint64    `json:"reserved_bytes"`
	FreeBytes        uint64    `json:"free_bytes"`
	PrivateBytes     uint64    `json:"private_bytes"`
	LargestFreeBlock uint64    `json:"largest_free_block"`
	ManagedHeapBytes uint64    `json:"managed_heap_bytes"`
	GenerationSizes  [4]uint64 `json:"generation_sizes"`
	HeapCommitted    uint64    `json:"heap_committed"`
	HeapReserved     uint64    `json:"heap_reserved"`
	Win32HeapBytes   uint64    `json:"win32_heap_bytes"`
	ThreadStackBytes uint64    `json:"thread_stack_bytes"`
}

// TypeInfo aggregates all heap objects of one type. Entries are mutually
// exclusive and exhaustive over the non-free object population.
type TypeInfo struct {
	TypeName    string  `json:"type_name"`
	Count       int64   `json:"count"`
	Size        uint64  `json:"size"`
	AverageSize float64 `json:"average_size"`
	MinimumSize uint64  `json:"minimum_size"`
	MaximumSize uint64  `json:"maximum_size"`
}

// TopConsumersReport ranks heap object types by aggregate memory cost.
type TopConsumersReport struct {
	Types        []TypeInfo `json:"types"`
	TotalObjects int64      `json:"total_objects"`
	TotalBytes   uint64     `json:"total_bytes"`
}

// Recommendation is one advisor finding.
type Recommendation struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// RecommendationsReport is the recommendations section body.
type RecommendationsReport struct {
	Recommendations []Recommendation `json:"recommendations"`
}
