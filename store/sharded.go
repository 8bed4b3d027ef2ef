package store

import (
	"sync"

	"github.com/PedroPareja/AutoCache/internal/util"
)

// Sharded is a mutex-striped Table: the keyspace is split across a
// power-of-two number of independently locked maps, which keeps write
// contention low under heavy concurrent traffic.
//
// Keys are routed by 64-bit FNV-1a; see util.Fnv64a for the supported key
// types (string, []byte, fixed byte arrays, all integer widths,
// fmt.Stringer).
type Sharded[K comparable, V any] struct {
	shards []*mapShard[K, V]
}

type mapShard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]*Entry[V]
}

// NewSharded returns a striped table with the given shard count, rounded
// up to the next power of two. shards <= 0 picks an automatic value
// (~2×GOMAXPROCS).
func NewSharded[K comparable, V any](shards int) *Sharded[K, V] {
	n := shards
	if n <= 0 {
		n = util.ReasonableShardCount()
	} else {
		n = int(util.NextPow2(uint64(n)))
	}

	t := &Sharded[K, V]{shards: make([]*mapShard[K, V], n)}
	for i := range t.shards {
		t.shards[i] = &mapShard[K, V]{m: make(map[K]*Entry[V])}
	}
	return t
}

// ShardedFactory adapts NewSharded to the Factory signature. It never fails.
func ShardedFactory[K comparable, V any](shards int) Factory[K, V] {
	return func() (Table[K, V], error) {
		return NewSharded[K, V](shards), nil
	}
}

func (t *Sharded[K, V]) shard(key K) *mapShard[K, V] {
	idx := util.ShardIndex(util.Fnv64a(key), len(t.shards))
	return t.shards[idx]
}

// Lookup returns the entry for key, if present.
func (t *Sharded[K, V]) Lookup(key K) (*Entry[V], bool) {
	s := t.shard(key)
	s.mu.RLock()
	e, ok := s.m[key]
	s.mu.RUnlock()
	return e, ok
}

// Insert stores the entry, overwriting silently.
func (t *Sharded[K, V]) Insert(key K, e *Entry[V]) {
	s := t.shard(key)
	s.mu.Lock()
	s.m[key] = e
	s.mu.Unlock()
}

// Remove deletes key if present and returns the removed entry.
func (t *Sharded[K, V]) Remove(key K) (*Entry[V], bool) {
	s := t.shard(key)
	s.mu.Lock()
	e, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	s.mu.Unlock()
	return e, ok
}

// ForEach visits entries until fn returns false.
//
// Each shard is snapshotted under its read lock and fn runs outside it, so
// fn may call back into the table (the cache's remove hooks do) without
// deadlocking. Entries inserted mid-iteration may or may not be visited.
func (t *Sharded[K, V]) ForEach(fn func(key K, e *Entry[V]) bool) {
	type kv struct {
		k K
		e *Entry[V]
	}
	for _, s := range t.shards {
		s.mu.RLock()
		snap := make([]kv, 0, len(s.m))
		for k, e := range s.m {
			snap = append(snap, kv{k, e})
		}
		s.mu.RUnlock()

		for _, p := range snap {
			if !fn(p.k, p.e) {
				return
			}
		}
	}
}

// Len returns the total number of resident entries across all shards.
func (t *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range t.shards {
		s.mu.RLock()
		total += len(s.m)
		s.mu.RUnlock()
	}
	return total
}

// Clear removes every entry.
func (t *Sharded[K, V]) Clear() {
	for _, s := range t.shards {
		s.mu.Lock()
		clear(s.m)
		s.mu.Unlock()
	}
}

var _ Table[string, int] = (*Sharded[string, int])(nil)
