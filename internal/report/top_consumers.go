package report

import (
	"context"

	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/internal/statistics"
)

// topConsumersN is how many type groups the report retains by default. The
// aggregation itself always covers the entire heap population before
// truncation.
const topConsumersN = 100

// TopMemoryConsumersComponent ranks heap object types by total size.
type TopMemoryConsumersComponent struct {
	calc *statistics.TypeStatsCalculator
}

// NewTopMemoryConsumersComponent creates the component retaining topN type
// groups. Values below 1 fall back to the default.
func NewTopMemoryConsumersComponent(topN int) *TopMemoryConsumersComponent {
	if topN < 1 {
		topN = topConsumersN
	}
	return &TopMemoryConsumersComponent{
		calc: statistics.NewTypeStatsCalculator(statistics.WithTopN(topN)),
	}
}

// Name returns the component identifier.
func (c *TopMemoryConsumersComponent) Name() string { return "top_memory_consumers" }

// Title returns the section title.
func (c *TopMemoryConsumersComponent) Title() string { return "Top Memory Consumers" }

// Generate declines on heap-less snapshots. A heap walk failure is a
// component fault.
func (c *TopMemoryConsumersComponent) Generate(_ context.Context, snap snapshot.Snapshot) (any, error) {
	heap, ok := snap.Heap()
	if !ok {
		return nil, nil
	}

	result, err := c.calc.Calculate(heap)
	if err != nil {
		return nil, err
	}
	return result, nil
}
