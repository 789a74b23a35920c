package alloc

// Capacity returns the total size of this instance's slice of the
// extent in bytes.
func (s *Scoped) Capacity() uintptr {
	return s.end - s.start
}

// SizeInUse returns the number of bytes currently consumed, including
// padding inserted for alignment. While a child scope is live, the
// parent reports its usage as of scope entry; the child's allocations
// are its own until the scope rolls back. A closed allocator reports 0.
func (s *Scoped) SizeInUse() uintptr {
	switch {
	case s.closed:
		return 0
	case s.cur == 0:
		return s.saved - s.start
	default:
		return s.cur - s.start
	}
}

// Remaining returns the bytes still available before ErrOutOfMemory,
// ignoring any alignment padding a future request may need.
func (s *Scoped) Remaining() uintptr {
	if s.closed {
		return 0
	}
	return s.Capacity() - s.SizeInUse()
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to
// 1.0). Returns 0.0 for a zero-capacity extent.
func (s *Scoped) Utilization() float64 {
	capacity := s.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(s.SizeInUse()) / float64(capacity)
}

// Metrics is a snapshot of a Scoped allocator's usage.
type Metrics struct {
	SizeInUse   uintptr // bytes currently allocated, padding included
	Capacity    uintptr // extent size in bytes
	Remaining   uintptr // bytes left before out-of-memory
	Utilization float64 // SizeInUse / Capacity (0.0-1.0)
	Suspended   bool    // whether a child scope owns the extent right now
}

// Metrics returns a snapshot of allocator statistics.
func (s *Scoped) Metrics() Metrics {
	return Metrics{
		SizeInUse:   s.SizeInUse(),
		Capacity:    s.Capacity(),
		Remaining:   s.Remaining(),
		Utilization: s.Utilization(),
		Suspended:   s.Suspended(),
	}
}
