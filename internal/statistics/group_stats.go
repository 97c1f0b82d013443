// Package statistics provides streaming aggregation over keyed populations.
package statistics

import (
	"sort"

	"github.com/tinmanjk/msos/pkg/model"
)

// GroupAggregator computes per-key count/sum/min/max over a stream of
// (key, size) observations in a single forward pass. Individual sizes are
// never buffered: the input population (every non-free object of a process
// heap) can reach tens of millions of elements.
type GroupAggregator struct {
	groups map[string]*model.TypeInfo
}

// NewGroupAggregator creates an empty aggregator.
func NewGroupAggregator() *GroupAggregator {
	return &GroupAggregator{
		groups: make(map[string]*model.TypeInfo),
	}
}

// Observe folds one element into its group.
func (a *GroupAggregator) Observe(key string, size uint64) {
	g, ok := a.groups[key]
	if !ok {
		a.groups[key] = &model.TypeInfo{
			TypeName:    key,
			Count:       1,
			Size:        size,
			MinimumSize: size,
			MaximumSize: size,
		}
		return
	}

	g.Count++
	g.Size += size
	if size < g.MinimumSize {
		g.MinimumSize = size
	}
	if size > g.MaximumSize {
		g.MaximumSize = size
	}
}

// Len returns the number of distinct groups observed so far.
func (a *GroupAggregator) Len() int {
	return len(a.groups)
}

// Results finalizes the aggregation: averages are computed as real-valued
// division, groups are ordered by descending total size, and when topN > 0
// only the first topN groups are retained. Truncation happens after the full
// population has been aggregated, so a type with few large objects still
// outranks one with many small ones.
func (a *GroupAggregator) Results(topN int) []model.TypeInfo {
	entries := make([]model.TypeInfo, 0, len(a.groups))
	for _, g := range a.groups {
		g.AverageSize = float64(g.Size) / float64(g.Count)
		entries = append(entries, *g)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Size != entries[j].Size {
			return entries[i].Size > entries[j].Size
		}
		return entries[i].TypeName < entries[j].TypeName
	})

	if topN > 0 && topN < len(entries) {
		entries = entries[:topN]
	}
	return entries
}
