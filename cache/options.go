package cache

import (
	"context"
	"time"

	"github.com/PedroPareja/AutoCache/store"
)

// Loader fetches the authoritative value for a key on a cache miss.
// It runs synchronously on the calling goroutine; its error is returned
// to the Get caller verbatim and is never cached.
type Loader[K comparable, V any] func(ctx context.Context, key K) (V, error)

// StoreCheck decides whether a freshly loaded value is worth caching.
// Rejected values are returned to the caller but not stored.
type StoreCheck[V any] func(value V) bool

// MissHook observes a cache miss. It runs inline before the loader;
// keep it lightweight and do not assume it is safe to mutate the cache
// reentrantly.
type MissHook[K comparable, V any] func(c Cache[K, V], key K)

// EntryHook observes an entry-level event (hit, load, save, remove).
// Same caveats as MissHook.
type EntryHook[K comparable, V any] func(c Cache[K, V], key K, value V)

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Action selects what a maintenance sweep does.
type Action int

const (
	// ActionClear removes every entry.
	ActionClear Action = iota + 1
	// ActionPurge scans the whole table and removes only the entries
	// whose deadline has passed. O(n) per sweep.
	ActionPurge
)

// String returns a stable label for the action.
func (a Action) String() string {
	switch a {
	case ActionClear:
		return "clear"
	case ActionPurge:
		return "purge"
	default:
		return "unknown"
	}
}

// Defaults applied by New when the corresponding Options field is zero.
const (
	DefaultTTL           = 30 * time.Minute
	DefaultPurgeInterval = 2 * time.Hour
	DefaultMaxElements   = 20000
)

// Options configures cache construction. Zero values are safe; New applies
// defaults:
//   - TTL 0            => DefaultTTL
//   - PurgeInterval 0  => DefaultPurgeInterval
//   - MaxElements 0    => DefaultMaxElements
//   - TimePurgeAction unset => ActionPurge
//   - SizePurgeAction unset => ActionClear
//   - nil Table        => store.SyncMapFactory
//   - nil Metrics      => NoopMetrics
//   - nil Clock        => time.Now
//
// Every field has a matching runtime accessor on Cache; the setters are
// the unvalidated path (e.g. SetTTL(0) really stores a zero TTL).
type Options[K comparable, V any] struct {
	TTL           time.Duration
	PurgeInterval time.Duration
	MaxElements   int

	// DisableSafetyClear turns off the emergency full clear that fires
	// when a sweep leaves the table at or above MaxElements.
	DisableSafetyClear bool

	TimePurgeAction Action
	SizePurgeAction Action

	// ExtendOnHit renews an entry's deadline on every hit.
	ExtendOnHit bool

	// Hooks. All optional; see the Set* accessors on Cache.
	StoreCheck StoreCheck[V]
	OnMiss     MissHook[K, V]
	OnHit      EntryHook[K, V]
	OnLoad     EntryHook[K, V]
	OnSave     EntryHook[K, V]
	OnRemove   EntryHook[K, V]

	// Table supplies the backing table. It runs once; its error surfaces
	// from New. The table's concurrency guarantee is a property of the
	// chosen implementation, not something the cache adds.
	Table store.Factory[K, V]

	// Metrics receives hit/miss/load/save/remove/size signals.
	Metrics Metrics

	// Clock overrides the time source (tests). Nil => time.Now.
	Clock Clock
}
