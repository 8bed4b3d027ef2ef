// Package cache provides a generic, self-managing, read-through key/value
// cache: a single Get consults the table, and on a miss loads the value
// through a caller-supplied Loader, stores it and returns it. The cache
// schedules its own time-based and size-based maintenance and exposes
// synchronous lifecycle hooks for every state transition.
//
// # Design
//
//   - Read-through: Get runs the maintenance check, then the lookup, and
//     on a miss: miss hook, Loader, load hook, store-admission check,
//     store. The loaded value is
//     returned even when the admission check keeps it out of the table.
//     Loader errors propagate verbatim and are never cached.
//
//   - Maintenance: opportunistic, evaluated on every access. A time
//     trigger (every PurgeInterval) and a size trigger (table at or above
//     MaxElements) each run a configurable Action: ActionPurge deletes
//     only expired entries in one O(n) scan, ActionClear empties the
//     table. A safety clear backstops a sweep that leaves the table
//     oversized. No background goroutine exists: an idle cache never
//     purges.
//
//   - Storage: pluggable via store.Table. The default is a sync.Map-backed
//     table; store.Sharded trades memory for lower write contention, and
//     callers can inject anything that satisfies the capability interface.
//     The cache performs no locking of its own.
//
//   - Hooks: five optional observer slots (miss, hit, load, save, remove)
//     plus a store-admission check. Hooks run synchronously on the calling
//     goroutine, after the operation's effect is decided and before the
//     value is returned. An overwrite emits remove(old) then save(new).
//
//   - Async: GetFuture schedules one Get onto a caller-supplied Executor
//     and returns a Future. Cancelling a Future's Wait abandons the wait;
//     it does not abort an in-flight loader call.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Load/Save/Remove/Size
//     signals (NoopMetrics by default; see metrics/prom for a Prometheus
//     adapter). Stats() returns cumulative counters.
//
// # Known limitation: load stampedes
//
// The check-then-act sequence in Get is not atomic per key. Concurrent
// callers missing on the same key each invoke the Loader and each store a
// result; last write wins. The cache does not coalesce duplicate loads:
// callers that need single-flight semantics must coordinate externally
// (per-key mutual exclusion around Get).
//
// # Basic usage
//
//	c, err := cache.New[string, string](
//	    func(ctx context.Context, key string) (string, error) {
//	        return fetchFromDB(ctx, key) // authoritative source
//	    },
//	    cache.Options[string, string]{TTL: 5 * time.Minute},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := c.Get(ctx, "user:42")
//
// # With hooks and a store-admission check
//
//	c.SetStoreCheck(func(v string) bool { return v != "" })
//	c.SetOnRemove(func(_ cache.Cache[string, string], k, v string) {
//	    audit.Evicted(k)
//	})
//
// # Asynchronous gets
//
//	f := c.GetFuture(ctx, "user:42", exec.Goroutines{})
//	v, err := f.Wait(ctx)
//
// Configuration accessors mirror the Options fields and may be called at
// runtime, but they are not synchronized against concurrent traffic:
// configure first, then share.
package cache
