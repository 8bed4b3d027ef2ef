package cache

import "github.com/PedroPareja/AutoCache/internal/util"

// Stats is a point-in-time snapshot of the cache's operation counters.
// Counters are cumulative since construction; Entries is the current
// table size.
type Stats struct {
	Hits    int64
	Misses  int64
	Loads   int64
	Saves   int64
	Removes int64
	Entries int
}

// counters are the hot per-cache tallies. Padded so goroutines bumping
// different counters do not share a cache line.
type counters struct {
	hits    util.PaddedAtomicInt64
	misses  util.PaddedAtomicInt64
	loads   util.PaddedAtomicInt64
	saves   util.PaddedAtomicInt64
	removes util.PaddedAtomicInt64
}

func (c *cache[K, V]) Stats() Stats {
	return Stats{
		Hits:    c.stats.hits.Load(),
		Misses:  c.stats.misses.Load(),
		Loads:   c.stats.loads.Load(),
		Saves:   c.stats.saves.Load(),
		Removes: c.stats.removes.Load(),
		Entries: c.table.Len(),
	}
}
