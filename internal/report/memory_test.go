package report

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinmanjk/msos/internal/mock"
	"github.com/tinmanjk/msos/internal/snapshot"
	"github.com/tinmanjk/msos/pkg/model"
)

func TestMemoryUsageComponent_Generate_RegionPartition(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.Regions = []snapshot.MemoryRegion{
		{Base: 0x1000, Size: 4096, State: snapshot.RegionCommit, Type: snapshot.RegionPrivate},
		{Base: 0x2000, Size: 8192, State: snapshot.RegionCommit, Type: snapshot.RegionImage},
		{Base: 0x4000, Size: 16384, State: snapshot.RegionReserve},
		{Base: 0x8000, Size: 32768, State: snapshot.RegionFree},
		{Base: 0x10000, Size: 1024, State: snapshot.RegionFree},
	}

	body, err := NewMemoryUsageComponent().Generate(context.Background(), snap)
	require.NoError(t, err)

	usage := body.(*model.MemoryUsageReport)
	assert.Equal(t, uint64(4096+8192), usage.CommittedBytes)
	assert.Equal(t, uint64(4096), usage.PrivateBytes)
	assert.Equal(t, uint64(16384), usage.ReservedBytes)
	assert.Equal(t, uint64(32768+1024), usage.FreeBytes)
	assert.Equal(t, uint64(32768), usage.LargestFreeBlock)
}

func TestMemoryUsageComponent_Generate_HeapTotals(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.HeapData = &mock.FakeHeap{
		Total:       1 << 20,
		Generations: [4]uint64{256 << 10, 128 << 10, 512 << 10, 128 << 10},
		SegmentList: []snapshot.Segment{
			{CommittedBytes: 600 << 10, ReservedBytes: 400 << 10},
			{CommittedBytes: 500 << 10, ReservedBytes: 100 << 10},
		},
	}

	body, err := NewMemoryUsageComponent().Generate(context.Background(), snap)
	require.NoError(t, err)

	usage := body.(*model.MemoryUsageReport)
	assert.Equal(t, uint64(1<<20), usage.ManagedHeapBytes)
	assert.Equal(t, uint64(256<<10), usage.GenerationSizes[0])
	assert.Equal(t, uint64(1100<<10), usage.HeapCommitted)
	assert.Equal(t, uint64(500<<10), usage.HeapReserved)
}

func TestMemoryUsageComponent_Generate_AlwaysContributes(t *testing.T) {
	// No regions, no heap: still a section, all zeros.
	body, err := NewMemoryUsageComponent().Generate(context.Background(), mock.NewFakeSnapshot())
	require.NoError(t, err)
	require.NotNil(t, body)

	usage := body.(*model.MemoryUsageReport)
	assert.Zero(t, usage.CommittedBytes)
	assert.Zero(t, usage.ManagedHeapBytes)
}

func TestMemoryUsageComponent_Generate_UncomputedFieldsStayZero(t *testing.T) {
	snap := mock.NewFakeSnapshot()
	snap.Regions = []snapshot.MemoryRegion{
		{Base: 0x1000, Size: 4096, State: snapshot.RegionCommit},
	}

	body, err := NewMemoryUsageComponent().Generate(context.Background(), snap)
	require.NoError(t, err)

	usage := body.(*model.MemoryUsageReport)
	assert.Zero(t, usage.Win32HeapBytes)
	assert.Zero(t, usage.ThreadStackBytes)
}
