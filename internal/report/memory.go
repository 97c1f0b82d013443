package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// MemoryUsageComponent summarizes virtual-memory usage by partitioning the
// target's regions by state and type flags, plus managed heap totals when a
// heap is present.
type MemoryUsageComponent struct{}

// NewMemoryUsageComponent creates the component.
func NewMemoryUsageComponent() *MemoryUsageComponent {
	return &MemoryUsageComponent{}
}

// Name returns the component identifier.
func (c *MemoryUsageComponent) Name() string { return "memory_usage" }

// Title returns the section title.
func (c *MemoryUsageComponent) Title() string { return "Memory Usage" }

// Generate always contributes. Win32HeapBytes and ThreadStackBytes are not
// computed and report zero.
func (c *MemoryUsageComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	usage := &model.MemoryUsageReport{}

	for _, region := range snap.MemoryRegions() {
		switch {
		case region.IsFree():
			usage.FreeBytes += region.Size
			if region.Size > usage.LargestFreeBlock {
				usage.LargestFreeBlock = region.Size
			}
		case region.IsCommitted():
			usage.CommittedBytes += region.Size
			if region.IsPrivate() {
				usage.PrivateBytes += region.Size
			}
		case region.IsReserved():
			usage.ReservedBytes += region.Size
		}
	}

	if heap, ok := snap.Heap(); ok {
		usage.ManagedHeapBytes = heap.TotalSize()
		usage.GenerationSizes = heap.GenerationSizes()
		for _, seg := range heap.Segments() {
			usage.HeapCommitted += seg.CommittedBytes
			usage.HeapReserved += seg.ReservedBytes
		}
	}

	return usage, nil
}
