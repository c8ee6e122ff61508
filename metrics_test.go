package arena

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	a := newTestArena(t, 1000)
	assert.Equal(t, ArenaMetrics{Capacity: 1000, Remaining: 1000}, a.Metrics())

	_, err := a.AllocRaw(100, 1)
	require.NoError(t, err)
	_, err = a.AllocRaw(150, 1)
	require.NoError(t, err)
	_, err = a.AllocRaw(2000, 1)
	require.Error(t, err)
	a.Reset(100)

	m := a.Metrics()
	assert.Equal(t, 100, m.SizeInUse)
	assert.Equal(t, 1000, m.Capacity)
	assert.Equal(t, 900, m.Remaining)
	assert.Equal(t, 250, m.Peak)
	assert.Equal(t, uint64(1), m.Failures)
	assert.InDelta(t, 0.1, m.Utilization, 1e-9)

	assert.Zero(t, Empty().Utilization())
}

func TestPoolStats(t *testing.T) {
	p := NewPool()
	id0, err := p.New(64)
	require.NoError(t, err)
	id1, err := p.New(128)
	require.NoError(t, err)
	defer func() { assert.NoError(t, p.Close()) }()

	s := Borrow(p, id1)
	_, err = s.AllocRaw(32, 8)
	require.NoError(t, err)

	stats := p.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, id0, stats[0].ID)
	assert.Equal(t, 0, stats[0].Borrows)
	assert.Equal(t, 64, stats[0].Remaining)
	assert.Equal(t, id1, stats[1].ID)
	assert.Equal(t, 1, stats[1].Borrows)
	assert.Equal(t, 32, stats[1].SizeInUse)

	s.Release()
	assert.Equal(t, 0, p.Stats()[1].Borrows)
}

func TestCollector(t *testing.T) {
	p := NewPool()
	id, err := p.New(256)
	require.NoError(t, err)
	_, err = p.New(64)
	require.NoError(t, err)
	defer func() { assert.NoError(t, p.Close()) }()

	a := p.Arena(id)
	_, err = a.AllocRaw(200, 1)
	require.NoError(t, err)
	a.Reset(40)
	_, err = a.AllocRaw(1024, 1)
	require.Error(t, err)
	s := Borrow(p, id)
	defer s.Release()

	c := NewCollector(p, "test")
	assert.Equal(t, 10, testutil.CollectAndCount(c))

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP test_arena_bytes_in_use Bytes below the arena watermark.
# TYPE test_arena_bytes_in_use gauge
test_arena_bytes_in_use{arena="0"} 40
test_arena_bytes_in_use{arena="1"} 0
# HELP test_arena_borrow_depth Live scratch borrows of the arena.
# TYPE test_arena_borrow_depth gauge
test_arena_borrow_depth{arena="0"} 1
test_arena_borrow_depth{arena="1"} 0
# HELP test_arena_alloc_failures_total Allocations rejected for lack of space.
# TYPE test_arena_alloc_failures_total counter
test_arena_alloc_failures_total{arena="0"} 1
test_arena_alloc_failures_total{arena="1"} 0
# HELP test_arena_peak_bytes Highest watermark the arena reached.
# TYPE test_arena_peak_bytes gauge
test_arena_peak_bytes{arena="0"} 200
test_arena_peak_bytes{arena="1"} 0
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_arena_bytes_in_use",
		"test_arena_borrow_depth",
		"test_arena_alloc_failures_total",
		"test_arena_peak_bytes"))
}
