// Package store defines the entry table the cache keeps its data in.
//
// The cache itself adds no locking: it relies on the chosen Table
// implementation being safe for concurrent use. Two implementations are
// provided: SyncMap (the default) and Sharded (a mutex-striped map for
// write-heavy workloads). Callers may supply their own via a Factory.
package store

import "sync/atomic"

// Entry is a cached value together with its absolute expiration deadline.
// The value is immutable once stored; the deadline may be extended on a
// hit while other goroutines read it (purge scans, expiry checks), hence
// the atomic.
type Entry[V any] struct {
	value    V
	deadline atomic.Int64 // UnixNano
}

// NewEntry builds an entry expiring at the absolute UnixNano deadline.
func NewEntry[V any](value V, deadline int64) *Entry[V] {
	e := &Entry[V]{value: value}
	e.deadline.Store(deadline)
	return e
}

// Value returns the stored value.
func (e *Entry[V]) Value() V { return e.value }

// Deadline returns the current expiration deadline in UnixNano.
func (e *Entry[V]) Deadline() int64 { return e.deadline.Load() }

// Extend moves the expiration deadline (used when extend-on-hit is enabled).
func (e *Entry[V]) Extend(deadline int64) { e.deadline.Store(deadline) }

// Expired reports whether the entry's deadline lies strictly before now.
func (e *Entry[V]) Expired(now int64) bool { return e.deadline.Load() < now }

// Table is the capability interface a backing table must provide.
//
// Each method must be individually safe for concurrent use, but the table
// gives no atomicity across calls: a Lookup followed by an Insert is two
// independent operations and may interleave with other writers.
type Table[K comparable, V any] interface {
	// Lookup returns the entry for key, if present.
	Lookup(key K) (*Entry[V], bool)

	// Insert stores the entry under key, silently overwriting any
	// previous entry.
	Insert(key K, e *Entry[V])

	// Remove deletes key if present and returns the removed entry.
	// Removing an absent key is a no-op.
	Remove(key K) (*Entry[V], bool)

	// ForEach visits every resident entry exactly once, in no particular
	// order, until fn returns false. fn may call back into the table;
	// mutations made during the scan may or may not be visited.
	ForEach(fn func(key K, e *Entry[V]) bool)

	// Len returns the number of resident entries (expired ones included).
	Len() int

	// Clear removes every entry.
	Clear()
}

// Factory constructs the table a cache will own. It runs once, at cache
// construction; a failure is surfaced to the constructor's caller.
type Factory[K comparable, V any] func() (Table[K, V], error)
