package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// BlockedThreadsComponent builds the lock/wait graph: one node per thread
// with at least one blocking relationship. The component constructs the
// graph only; cycle detection and deadlock classification are left to
// consumers traversing the owner/waiter edges.
type BlockedThreadsComponent struct{}

// NewBlockedThreadsComponent creates the component.
func NewBlockedThreadsComponent() *BlockedThreadsComponent {
	return &BlockedThreadsComponent{}
}

// Name returns the component identifier.
func (c *BlockedThreadsComponent) Name() string { return "blocked_threads" }

// Title returns the section title.
func (c *BlockedThreadsComponent) Title() string { return "Blocked Threads" }

// Generate declines when no thread has any blocking relationship.
func (c *BlockedThreadsComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	var heap snapshot.Heap
	if h, ok := snap.Heap(); ok {
		heap = h
	}

	var threads []model.ThreadInfo
	for _, t := range snap.Threads() {
		blocking := t.BlockingObjects()
		if len(blocking) == 0 {
			continue
		}

		info := model.ThreadInfo{
			OSThreadID:      t.OSThreadID(),
			ManagedThreadID: t.ManagedThreadID(),
			Locks:           make([]model.LockInfo, 0, len(blocking)),
		}
		for _, b := range blocking {
			info.Locks = append(info.Locks, buildLockInfo(heap, b))
		}
		threads = append(threads, info)
	}

	if len(threads) == 0 {
		return nil, nil
	}
	return &model.LockGraphReport{Threads: threads}, nil
}

// buildLockInfo converts one blocking relationship. The object type name is
// best-effort: an address the heap cannot map to a type leaves ObjectType
// empty rather than failing the component.
func buildLockInfo(heap snapshot.Heap, b snapshot.BlockingObject) model.LockInfo {
	lock := model.LockInfo{
		Reason:  b.Reason.String(),
		Object:  b.Address,
		Owners:  make([]model.ThreadInfo, 0, len(b.Owners)),
		Waiters: make([]model.ThreadInfo, 0, len(b.Waiters)),
	}

	if heap != nil {
		if name, ok := heap.TypeName(b.Address); ok {
			lock.ObjectType = name
		}
	}

	for _, owner := range b.Owners {
		if owner == nil {
			// Unowned slot, e.g. a monitor awaiting a pulse.
			continue
		}
		lock.Owners = append(lock.Owners, threadIdentity(owner))
	}
	for _, waiter := range b.Waiters {
		if waiter == nil {
			continue
		}
		lock.Waiters = append(lock.Waiters, threadIdentity(waiter))
	}
	return lock
}

// threadIdentity copies just the identity of a thread. Owner and waiter
// references are value copies without Locks, so the graph stays free of
// shared mutable nodes while still expressing wait cycles.
func threadIdentity(t snapshot.Thread) model.ThreadInfo {
	return model.ThreadInfo{
		OSThreadID:      t.OSThreadID(),
		ManagedThreadID: t.ManagedThreadID(),
	}
}
