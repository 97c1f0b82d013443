package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
)

// MemoryFragmentationComponent is a placeholder that currently declines on
// every snapshot. It keeps its slot in the registry so the execution order
// stays stable once the analysis lands.
type MemoryFragmentationComponent struct{}

// NewMemoryFragmentationComponent creates the component.
func NewMemoryFragmentationComponent() *MemoryFragmentationComponent {
	return &MemoryFragmentationComponent{}
}

// Name returns the component identifier.
func (c *MemoryFragmentationComponent) Name() string { return "memory_fragmentation" }

// Title returns the section title.
func (c *MemoryFragmentationComponent) Title() string { return "Memory Fragmentation" }

// Generate declines unconditionally.
func (c *MemoryFragmentationComponent) Generate(context.Context, snapshot.Snapshot) (any, error) {
	return nil, nil
}

// FinalizationQueuesComponent is a placeholder that currently declines on
// every snapshot.
type FinalizationQueuesComponent struct{}

// NewFinalizationQueuesComponent creates the component.
func NewFinalizationQueuesComponent() *FinalizationQueuesComponent {
	return &FinalizationQueuesComponent{}
}

// Name returns the component identifier.
func (c *FinalizationQueuesComponent) Name() string { return "finalization_queues" }

// Title returns the section title.
func (c *FinalizationQueuesComponent) Title() string { return "Finalization Queues" }

// Generate declines unconditionally.
func (c *FinalizationQueuesComponent) Generate(context.Context, snapshot.Snapshot) (any, error) {
	return nil, nil
}
