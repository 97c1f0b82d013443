package statistics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinmanjk/msos/internal/mock"
	"github.com/tinmanjk/msos/internal/snapshot"
)

func TestTypeStatsCalculator_Calculate_Basic(t *testing.T) {
	heap := &mock.FakeHeap{
		Objects: []snapshot.Object{
			{Address: 0x1000, Size: 10, TypeName: "Foo"},
			{Address: 0x2000, Size: 20, TypeName: "Foo"},
			{Address: 0x3000, Size: 5, TypeName: "Bar"},
		},
	}

	calc := NewTypeStatsCalculator()
	result, err := calc.Calculate(heap)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, int64(3), result.TotalObjects)
	assert.Equal(t, uint64(35), result.TotalBytes)

	require.Len(t, result.Types, 2)
	assert.Equal(t, "Foo", result.Types[0].TypeName)
	assert.Equal(t, int64(2), result.Types[0].Count)
	assert.Equal(t, uint64(30), result.Types[0].Size)
	assert.Equal(t, "Bar", result.Types[1].TypeName)
	assert.Equal(t, int64(1), result.Types[1].Count)
}

func TestTypeStatsCalculator_Calculate_SkipsFreeObjects(t *testing.T) {
	heap := &mock.FakeHeap{
		Objects: []snapshot.Object{
			{Address: 0x1000, Size: 10, TypeName: "Foo"},
			{Address: 0x2000, Size: 1000, TypeName: "Free", Free: true},
		},
	}

	result, err := NewTypeStatsCalculator().Calculate(heap)
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.TotalObjects)
	assert.Equal(t, uint64(10), result.TotalBytes)
	require.Len(t, result.Types, 1)
	assert.Equal(t, "Foo", result.Types[0].TypeName)
}

func TestTypeStatsCalculator_Calculate_UnresolvedTypeGroupsAsUnknown(t *testing.T) {
	heap := &mock.FakeHeap{
		Objects: []snapshot.Object{
			{Address: 0x1000, Size: 10},
			{Address: 0x2000, Size: 20},
		},
	}

	result, err := NewTypeStatsCalculator().Calculate(heap)
	require.NoError(t, err)

	require.Len(t, result.Types, 1)
	assert.Equal(t, UnknownTypeName, result.Types[0].TypeName)
	assert.Equal(t, int64(2), result.Types[0].Count)
}

func TestTypeStatsCalculator_Calculate_WalkError(t *testing.T) {
	heap := &mock.FakeHeap{WalkErr: errors.New("segment read failed")}

	result, err := NewTypeStatsCalculator().Calculate(heap)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestTypeStatsCalculator_Calculate_TopN(t *testing.T) {
	objects := make([]snapshot.Object, 0, 200)
	for i := 0; i < 200; i++ {
		objects = append(objects, snapshot.Object{
			Address:  uint64(0x1000 * (i + 1)),
			Size:     uint64(i + 1),
			TypeName: "type_" + string(rune('a'+i%26)) + string(rune('a'+i/26)),
		})
	}
	heap := &mock.FakeHeap{Objects: objects}

	result, err := NewTypeStatsCalculator(WithTopN(5)).Calculate(heap)
	require.NoError(t, err)

	assert.Len(t, result.Types, 5)
	// Totals still cover the whole population, not just the retained groups.
	assert.Equal(t, int64(200), result.TotalObjects)
	assert.Equal(t, uint64(200*201/2), result.TotalBytes)
}

func TestTypeStatsCalculator_Calculate_MinAvgMaxConsistent(t *testing.T) {
	heap := &mock.FakeHeap{
		Objects: []snapshot.Object{
			{Address: 0x1000, Size: 8, TypeName: "Foo"},
			{Address: 0x2000, Size: 64, TypeName: "Foo"},
			{Address: 0x3000, Size: 24, TypeName: "Foo"},
		},
	}

	result, err := NewTypeStatsCalculator().Calculate(heap)
	require.NoError(t, err)
	require.Len(t, result.Types, 1)

	ti := result.Types[0]
	assert.Equal(t, uint64(8), ti.MinimumSize)
	assert.Equal(t, uint64(64), ti.MaximumSize)
	assert.LessOrEqual(t, float64(ti.MinimumSize), ti.AverageSize)
	assert.LessOrEqual(t, ti.AverageSize, float64(ti.MaximumSize))
}
