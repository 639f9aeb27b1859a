package handler

import (
	"sync"
	"sync/atomic"

	"github.com/philipp01105/lvlog/core"
)

// Stats tracks handler statistics. Counters are kept per severity value
// because the set of levels is open-ended.
type Stats struct {
	processed sync.Map // core.Level -> *atomic.Uint64
	failed    atomic.Uint64
	total     atomic.Uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) counter(level core.Level) *atomic.Uint64 {
	if c, ok := s.processed.Load(level); ok {
		return c.(*atomic.Uint64)
	}
	c, _ := s.processed.LoadOrStore(level, new(atomic.Uint64))
	return c.(*atomic.Uint64)
}

// Record counts one handled entry, failed or not.
func (s *Stats) Record(level core.Level, err error) {
	if err != nil {
		s.failed.Add(1)
		return
	}
	s.counter(level).Add(1)
	s.total.Add(1)
}

// GetProcessed returns the processed count for a level
func (s *Stats) GetProcessed(level core.Level) uint64 {
	if c, ok := s.processed.Load(level); ok {
		return c.(*atomic.Uint64).Load()
	}
	return 0
}

// GetFailed returns the number of entries that failed to write
func (s *Stats) GetFailed() uint64 {
	return s.failed.Load()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	s.processed.Range(func(k, _ any) bool {
		s.processed.Delete(k)
		return true
	})
	s.failed.Store(0)
	s.total.Store(0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Processed      map[core.Level]uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	snap := Snapshot{
		Processed:      make(map[core.Level]uint64),
		ProcessedTotal: s.total.Load(),
		FailedTotal:    s.failed.Load(),
	}
	s.processed.Range(func(k, v any) bool {
		snap.Processed[k.(core.Level)] = v.(*atomic.Uint64).Load()
		return true
	})
	return snap
}
