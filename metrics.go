package arena

// SizeInUse returns the number of bytes below the watermark, including
// padding inserted for alignment.
func (a *Arena) SizeInUse() int {
	return a.offset
}

// Capacity returns the total capacity of the arena in bytes.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Remaining returns the number of bytes above the watermark.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.offset
}

// Peak returns the highest watermark the arena has reached.
func (a *Arena) Peak() int {
	return a.peak
}

// Failures returns the number of allocations rejected for lack of space.
func (a *Arena) Failures() uint64 {
	return a.failures
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		Remaining:   a.Remaining(),
		Peak:        a.Peak(),
		Failures:    a.Failures(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes below the watermark
	Capacity    int     // Total capacity in bytes
	Remaining   int     // Bytes still free
	Peak        int     // Highest watermark reached
	Failures    uint64  // Allocations rejected for lack of space
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// PoolStat is the state of one arena of a pool.
type PoolStat struct {
	ID      ID
	Borrows int // live scratch borrows
	ArenaMetrics
}

// Stats returns a snapshot of every arena in the pool.
func (p *Pool) Stats() []PoolStat {
	stats := make([]PoolStat, 0, len(p.slots))
	for i, s := range p.slots {
		stats = append(stats, PoolStat{
			ID:           ID(i),
			Borrows:      s.borrows,
			ArenaMetrics: s.arena.Metrics(),
		})
	}
	return stats
}
