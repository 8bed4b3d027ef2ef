package cache

import "github.com/PedroPareja/AutoCache/store"

// maintain is the access-time maintenance check, run at the top of every
// Get and Set. Two independent triggers, in precedence order:
//
//  1. time: at > nextPurge. Run the time action, then unconditionally
//     reschedule nextPurge = at + PurgeInterval.
//  2. size: Len() >= MaxElements. Run the size action. This trigger does
//     NOT touch nextPurge, so a size-pressured cache still gets its
//     regular time sweep on schedule.
//
// Maintenance is opportunistic: no background goroutine exists, so a cache
// that stops receiving traffic never purges. Accepted trade-off.
func (c *cache[K, V]) maintain(at int64) {
	if at > c.nextPurge.Load() {
		c.runMaintenance(c.timeAction, at)
		c.scheduleNextPurge(at)
		return
	}
	if c.table.Len() >= c.maxElements {
		c.runMaintenance(c.sizeAction, at)
	}
}

// runMaintenance executes one sweep action, then applies the safety clear:
// if enabled and the table is still at or above MaxElements (a purge where
// most entries were live, say), everything goes.
func (c *cache[K, V]) runMaintenance(action Action, at int64) {
	switch action {
	case ActionClear:
		c.clearAll()
	case ActionPurge:
		c.purge(at)
	}

	if c.safetyClear && c.table.Len() >= c.maxElements {
		c.clearAll()
	}
}

// Purge removes exactly the entries whose deadline lies strictly before at.
func (c *cache[K, V]) Purge(at int64) {
	c.purge(at)
}

// purge is a single O(n) scan. Keys are collected first and deleted after
// the scan so the table is not mutated mid-iteration; the remove event
// fires per entry as it is discovered.
//
// An entry whose deadline is extended concurrently between discovery and
// deletion is deleted anyway, same as any other lookup/delete interleaving
// the table contract permits.
func (c *cache[K, V]) purge(at int64) {
	var expired []K
	c.table.ForEach(func(key K, e *store.Entry[V]) bool {
		if e.Expired(at) {
			expired = append(expired, key)
			c.removeEvent(key, e, RemoveExpired)
		}
		return true
	})

	for _, key := range expired {
		c.table.Remove(key)
	}
	c.metrics.Size(c.table.Len())
}

// scheduleNextPurge arms the time trigger relative to at.
func (c *cache[K, V]) scheduleNextPurge(at int64) {
	c.nextPurge.Store(at + int64(c.purgeEvery))
}
