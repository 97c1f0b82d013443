package statistics

import (
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

// UnknownTypeName groups heap objects whose address resolved to no known
// type. Best-effort resolution gaps must not abort the walk.
const UnknownTypeName = "<unknown>"

// TypeStatsCalculator aggregates heap objects into per-type statistics.
type TypeStatsCalculator struct {
	topN int
}

// TypeStatsOption configures the TypeStatsCalculator.
type TypeStatsOption func(*TypeStatsCalculator)

// WithTopN limits the result to the N types with the largest total size.
// Zero means no truncation.
func WithTopN(n int) TypeStatsOption {
	return func(c *TypeStatsCalculator) {
		c.topN = n
	}
}

// NewTypeStatsCalculator creates a calculator retaining the top 100 types.
func NewTypeStatsCalculator(opts ...TypeStatsOption) *TypeStatsCalculator {
	c := &TypeStatsCalculator{topN: 100}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate walks the heap once and returns per-type statistics ordered by
// descending total size. Free-space markers are excluded from the population.
func (c *TypeStatsCalculator) Calculate(heap snapshot.Heap) (*model.TopConsumersReport, error) {
	agg := NewGroupAggregator()
	var totalObjects int64
	var totalBytes uint64

	err := heap.ForEachObject(func(obj snapshot.Object) bool {
		if obj.Free {
			return true
		}
		name := obj.TypeName
		if name == "" {
			name = UnknownTypeName
		}
		agg.Observe(name, obj.Size)
		totalObjects++
		totalBytes += obj.Size
		return true
	})
	if err != nil {
		return nil, err
	}

	return &model.TopConsumersReport{
		Types:        agg.Results(c.topN),
		TotalObjects: totalObjects,
		TotalBytes:   totalBytes,
	}, nil
}
