package table

import (
	"sync/atomic"
	"time"
)

// Stats counts table activity since Build.
type Stats struct {
	Builds    int64 // layout projections, including the initial build
	Flips     int64 // reorientations triggered by queries
	Slices    int64
	Hits      int64
	Misses    int64
	LastBuild time.Duration
}

// stats is atomic so batch slicing can record from its workers.
type stats struct {
	builds    atomic.Int64
	flips     atomic.Int64
	slices    atomic.Int64
	hits      atomic.Int64
	misses    atomic.Int64
	lastBuild atomic.Int64 // nanoseconds
}

func (s *stats) recordBuild(d time.Duration) {
	s.builds.Add(1)
	s.lastBuild.Store(int64(d))
}

func (s *stats) recordSlice(found bool) {
	s.slices.Add(1)
	if found {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
}

func (s *stats) lastBuildDuration() time.Duration {
	return time.Duration(s.lastBuild.Load())
}

// Stats returns a snapshot of the table counters.
func (t *Table[A, B, V]) Stats() Stats {
	return Stats{
		Builds:    t.stats.builds.Load(),
		Flips:     t.stats.flips.Load(),
		Slices:    t.stats.slices.Load(),
		Hits:      t.stats.hits.Load(),
		Misses:    t.stats.misses.Load(),
		LastBuild: t.stats.lastBuildDuration(),
	}
}
