package statistics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAggregator_Observe_Basic(t *testing.T) {
	agg := NewGroupAggregator()
	agg.Observe("System.String", 10)
	agg.Observe("System.String", 20)
	agg.Observe("System.Byte[]", 5)

	require.Equal(t, 2, agg.Len())

	results := agg.Results(0)
	require.Len(t, results, 2)

	// Ordered by descending total size
	assert.Equal(t, "System.String", results[0].TypeName)
	assert.Equal(t, int64(2), results[0].Count)
	assert.Equal(t, uint64(30), results[0].Size)
	assert.Equal(t, uint64(10), results[0].MinimumSize)
	assert.Equal(t, uint64(20), results[0].MaximumSize)
	assert.InDelta(t, 15.0, results[0].AverageSize, 0.001)

	assert.Equal(t, "System.Byte[]", results[1].TypeName)
	assert.Equal(t, int64(1), results[1].Count)
	assert.Equal(t, uint64(5), results[1].Size)
	assert.Equal(t, uint64(5), results[1].MinimumSize)
	assert.Equal(t, uint64(5), results[1].MaximumSize)
	assert.InDelta(t, 5.0, results[1].AverageSize, 0.001)
}

func TestGroupAggregator_Results_FractionalAverage(t *testing.T) {
	agg := NewGroupAggregator()
	agg.Observe("System.Object", 3)
	agg.Observe("System.Object", 4)

	results := agg.Results(0)
	require.Len(t, results, 1)
	assert.InDelta(t, 3.5, results[0].AverageSize, 0.001)
}

func TestGroupAggregator_Results_TopNTruncation(t *testing.T) {
	agg := NewGroupAggregator()
	for i := 0; i < 10; i++ {
		agg.Observe(fmt.Sprintf("type_%d", i), uint64(100*(i+1)))
	}

	results := agg.Results(3)
	require.Len(t, results, 3)
	assert.Equal(t, "type_9", results[0].TypeName)
	assert.Equal(t, "type_8", results[1].TypeName)
	assert.Equal(t, "type_7", results[2].TypeName)
}

func TestGroupAggregator_Results_FewLargeOutrankManySmall(t *testing.T) {
	agg := NewGroupAggregator()
	// 1000 small objects of one type
	for i := 0; i < 1000; i++ {
		agg.Observe("small", 10)
	}
	// one huge object of another
	agg.Observe("huge", 1000000)

	results := agg.Results(1)
	require.Len(t, results, 1)
	assert.Equal(t, "huge", results[0].TypeName)
}

func TestGroupAggregator_Results_SizeTieBreaksByName(t *testing.T) {
	agg := NewGroupAggregator()
	agg.Observe("b_type", 100)
	agg.Observe("a_type", 100)

	results := agg.Results(0)
	require.Len(t, results, 2)
	assert.Equal(t, "a_type", results[0].TypeName)
	assert.Equal(t, "b_type", results[1].TypeName)
}

func TestGroupAggregator_Results_Empty(t *testing.T) {
	agg := NewGroupAggregator()
	assert.Equal(t, 0, agg.Len())
	assert.Empty(t, agg.Results(10))
}
