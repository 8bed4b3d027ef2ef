package cache

import (
	"context"
	"time"
)

// Cache is a self-managing, read-through key/value cache.
//
// A Get consults the backing table and, on a miss or an expired entry,
// invokes the configured Loader, stores the result (subject to the
// store-admission check) and returns it. The cache runs its own
// maintenance opportunistically on access; it owns no goroutines and
// takes no locks of its own; thread safety comes from the injected
// store.Table.
//
// Configuration accessors are intended for setup. They are not
// synchronized against concurrent traffic; bring the cache to its steady
// configuration before sharing it across goroutines.
type Cache[K comparable, V any] interface {
	// Get returns the value for key, loading and caching it on a miss.
	// The reference time is taken from the cache's clock. A loader
	// failure is returned verbatim; nothing is cached for it.
	Get(ctx context.Context, key K) (V, error)

	// GetAt is Get with an explicit reference time (UnixNano). An entry
	// whose deadline lies strictly before at is treated as a miss.
	GetAt(ctx context.Context, key K, at int64) (V, error)

	// GetFuture schedules a single Get onto the supplied executor and
	// returns a handle to its eventual result. Abandoning the handle does
	// not abort an in-flight loader call.
	GetFuture(ctx context.Context, key K, ex Executor) *Future[V]

	// GetFutureAt is GetFuture with an explicit reference time.
	GetFutureAt(ctx context.Context, key K, at int64, ex Executor) *Future[V]

	// Set manually inserts key→value with a fresh TTL, bypassing the
	// loader and the store-admission check. Meant for pre-warming or
	// overriding; Get is the primary population path.
	Set(key K, value V)

	// SetDirty invalidates a single key: the remove hook fires if an
	// entry exists, then the entry is deleted. Absent keys are a no-op.
	SetDirty(key K)

	// Clear deletes every entry, firing the remove hook per entry.
	Clear()

	// Purge removes exactly the entries whose deadline lies strictly
	// before at, firing the remove hook for each. Non-expired entries
	// survive untouched.
	Purge(at int64)

	// Len returns the number of resident entries, expired ones included.
	Len() int

	// Stats returns a snapshot of the cache's operation counters.
	Stats() Stats

	// TTL is how long a stored entry lasts. Default 30m.
	TTL() time.Duration
	// SetTTL applies to entries stored afterwards; existing deadlines are
	// unaffected. The value is not validated: a zero or negative TTL
	// produces entries that expire as soon as the clock advances.
	SetTTL(ttl time.Duration)

	// PurgeInterval is how long between time-triggered maintenance
	// sweeps. Default 2h.
	PurgeInterval() time.Duration
	// SetPurgeInterval also reschedules the next sweep from the current
	// clock reading.
	SetPurgeInterval(d time.Duration)

	// MaxElements is the resident-entry count that arms size-triggered
	// maintenance. Default 20000. Not validated: a non-positive value
	// makes every access trigger maintenance.
	MaxElements() int
	SetMaxElements(n int)

	// SafetyClear controls the emergency full clear that runs when a
	// maintenance action leaves the table at or above MaxElements.
	// Default on.
	SafetyClear() bool
	SetSafetyClear(enabled bool)

	// TimePurgeAction is the action a time-triggered sweep runs.
	// Default ActionPurge.
	TimePurgeAction() Action
	SetTimePurgeAction(a Action)

	// SizePurgeAction is the action a size-triggered sweep runs.
	// Default ActionClear.
	SizePurgeAction() Action
	SetSizePurgeAction(a Action)

	// ExtendOnHit controls whether a hit pushes the entry's deadline out
	// to referenceTime+TTL. Default off.
	ExtendOnHit() bool
	SetExtendOnHit(enabled bool)

	// SetStoreCheck installs the store-admission check consulted after a
	// load. A rejected value is still returned to the caller, just not
	// cached. nil admits everything.
	SetStoreCheck(fn StoreCheck[V])

	// SetOnMiss installs the hook fired when a requested key is absent or
	// expired, before the loader runs.
	SetOnMiss(fn MissHook[K, V])

	// SetOnHit installs the hook fired when a live entry is returned.
	SetOnHit(fn EntryHook[K, V])

	// SetOnLoad installs the hook fired after a successful loader call,
	// before the store-admission check.
	SetOnLoad(fn EntryHook[K, V])

	// SetOnSave installs the hook fired after an entry is written to the
	// table.
	SetOnSave(fn EntryHook[K, V])

	// SetOnRemove installs the hook fired whenever an entry leaves the
	// table: overwrite (with the old value), SetDirty, purge sweep, or
	// clear.
	SetOnRemove(fn EntryHook[K, V])
}
