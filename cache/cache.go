package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/PedroPareja/AutoCache/store"
)

// ErrNoLoader is returned by Get when the cache misses and no Loader was
// configured.
var ErrNoLoader = errors.New("cache: no loader provided")

// cache is the read-through implementation behind the Cache interface.
//
// It owns exactly one table, one nextPurge deadline, and the configuration
// bundle. All concurrency guarantees come from the injected table; the
// cache itself adds no locking, so a Get's check-then-act sequence is not
// atomic per key (see the package doc on load stampedes).
type cache[K comparable, V any] struct {
	table  store.Table[K, V]
	loader Loader[K, V]

	// nextPurge is the absolute UnixNano deadline of the next
	// time-triggered sweep. Atomic because every access may read it and a
	// firing sweep rewrites it.
	nextPurge atomic.Int64

	// Configuration. Read on every operation; expected to reach steady
	// state before concurrent traffic starts. Mutating it under live
	// traffic is unsynchronized and caller-owned.
	ttl         time.Duration
	purgeEvery  time.Duration
	maxElements int
	safetyClear bool
	timeAction  Action
	sizeAction  Action
	extendOnHit bool

	storeCheck StoreCheck[V]
	onMiss     MissHook[K, V]
	onHit      EntryHook[K, V]
	onLoad     EntryHook[K, V]
	onSave     EntryHook[K, V]
	onRemove   EntryHook[K, V]

	metrics Metrics
	clock   Clock
	stats   counters
}

// New constructs a cache around loader with the provided Options.
// A nil loader is allowed; Get then fails with ErrNoLoader on a miss
// (Set/SetDirty still work, so a loaderless cache degrades to a plain
// TTL table). The table factory runs once here; its error is returned
// unchanged.
func New[K comparable, V any](loader Loader[K, V], opt Options[K, V]) (Cache[K, V], error) {
	factory := opt.Table
	if factory == nil {
		factory = store.SyncMapFactory[K, V]
	}
	table, err := factory()
	if err != nil {
		return nil, err
	}

	if opt.TTL == 0 {
		opt.TTL = DefaultTTL
	}
	if opt.PurgeInterval == 0 {
		opt.PurgeInterval = DefaultPurgeInterval
	}
	if opt.MaxElements == 0 {
		opt.MaxElements = DefaultMaxElements
	}
	if opt.TimePurgeAction == 0 {
		opt.TimePurgeAction = ActionPurge
	}
	if opt.SizePurgeAction == 0 {
		opt.SizePurgeAction = ActionClear
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	c := &cache[K, V]{
		table:       table,
		loader:      loader,
		ttl:         opt.TTL,
		purgeEvery:  opt.PurgeInterval,
		maxElements: opt.MaxElements,
		safetyClear: !opt.DisableSafetyClear,
		timeAction:  opt.TimePurgeAction,
		sizeAction:  opt.SizePurgeAction,
		extendOnHit: opt.ExtendOnHit,
		storeCheck:  opt.StoreCheck,
		onMiss:      opt.OnMiss,
		onHit:       opt.OnHit,
		onLoad:      opt.OnLoad,
		onSave:      opt.OnSave,
		onRemove:    opt.OnRemove,
		metrics:     opt.Metrics,
		clock:       opt.Clock,
	}
	c.scheduleNextPurge(c.now())
	return c, nil
}

// ---- read-through path ----

// Get returns the value for key using the cache clock as reference time.
func (c *cache[K, V]) Get(ctx context.Context, key K) (V, error) {
	return c.GetAt(ctx, key, c.now())
}

// GetAt implements the read-through sequence: maintenance check, lookup,
// and on a miss (absent or deadline < at) the loader round-trip.
func (c *cache[K, V]) GetAt(ctx context.Context, key K, at int64) (V, error) {
	c.maintain(at)

	e, ok := c.table.Lookup(key)
	if !ok || e.Expired(at) {
		return c.load(ctx, key, at)
	}

	if c.extendOnHit {
		e.Extend(c.deadlineFrom(at))
	}
	c.stats.hits.Add(1)
	c.metrics.Hit()
	if h := c.onHit; h != nil {
		h(c, key, e.Value())
	}
	return e.Value(), nil
}

// load runs the miss path: miss hook, loader, load hook, store-admission
// check, store. A loader failure propagates verbatim and applies no side
// effects beyond the miss hook already fired. The loaded value is returned
// whether or not it was admitted to the table.
func (c *cache[K, V]) load(ctx context.Context, key K, at int64) (V, error) {
	c.stats.misses.Add(1)
	c.metrics.Miss()
	if h := c.onMiss; h != nil {
		h(c, key)
	}

	if c.loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	value, err := c.loader(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.stats.loads.Add(1)
	c.metrics.Load()
	if h := c.onLoad; h != nil {
		h(c, key, value)
	}

	if check := c.storeCheck; check == nil || check(value) {
		c.put(key, store.NewEntry(value, c.deadlineFrom(at)))
	}
	return value, nil
}

// Set manually inserts key→value with a fresh TTL from the cache clock.
// It bypasses the loader and the store-admission check.
func (c *cache[K, V]) Set(key K, value V) {
	at := c.now()
	c.maintain(at)
	c.put(key, store.NewEntry(value, c.deadlineFrom(at)))
}

// put is the single write path shared by Get's store step and Set.
// Overwriting emits remove(old value) strictly before save(new value);
// there is no single "replace" event.
func (c *cache[K, V]) put(key K, e *store.Entry[V]) {
	if old, ok := c.table.Lookup(key); ok {
		c.removeEvent(key, old, RemoveReplaced)
	}
	c.table.Insert(key, e)

	c.stats.saves.Add(1)
	c.metrics.Save()
	if h := c.onSave; h != nil {
		h(c, key, e.Value())
	}
	c.metrics.Size(c.table.Len())
}

// ---- invalidation ----

// SetDirty forces logical removal of one key. The remove hook fires while
// the entry is still resident (hooks that look back into the cache see the
// pre-removal state); removing an absent key is a silent no-op.
func (c *cache[K, V]) SetDirty(key K) {
	if e, ok := c.table.Lookup(key); ok {
		c.removeEvent(key, e, RemoveExplicit)
	}
	if _, ok := c.table.Remove(key); ok {
		c.metrics.Size(c.table.Len())
	}
}

// Clear deletes every entry, emitting a remove event per entry first.
func (c *cache[K, V]) Clear() {
	c.clearAll()
}

func (c *cache[K, V]) clearAll() {
	c.table.ForEach(func(key K, e *store.Entry[V]) bool {
		c.removeEvent(key, e, RemoveCleared)
		return true
	})
	c.table.Clear()
	c.metrics.Size(c.table.Len())
}

// Len returns the resident entry count, expired entries included.
func (c *cache[K, V]) Len() int { return c.table.Len() }

// ---- helpers ----

// removeEvent records one entry leaving the table: counter, metric, hook.
// Every destroyed entry passes through here exactly once.
func (c *cache[K, V]) removeEvent(key K, e *store.Entry[V], reason RemoveReason) {
	c.stats.removes.Add(1)
	c.metrics.Remove(reason)
	if h := c.onRemove; h != nil {
		h(c, key, e.Value())
	}
}

// deadlineFrom converts a reference time into an absolute expiry deadline.
// No validation: a non-positive TTL yields a deadline at or before at.
func (c *cache[K, V]) deadlineFrom(at int64) int64 {
	return at + int64(c.ttl)
}

func (c *cache[K, V]) now() int64 {
	if c.clock != nil {
		return c.clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}
