package store

import (
	"sync"
	"sync/atomic"
)

// SyncMap is the default Table: a sync.Map plus an atomic length counter
// (sync.Map itself cannot report its size cheaply).
//
// It suits the cache's typical read-mostly access pattern. The length
// counter is maintained via Swap/LoadAndDelete so concurrent inserts and
// removals keep it consistent.
type SyncMap[K comparable, V any] struct {
	m   sync.Map // K -> *Entry[V]
	len atomic.Int64
}

// NewSyncMap returns an empty sync.Map-backed table.
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{}
}

// SyncMapFactory adapts NewSyncMap to the Factory signature. It never fails.
func SyncMapFactory[K comparable, V any]() (Table[K, V], error) {
	return NewSyncMap[K, V](), nil
}

// Lookup returns the entry for key, if present.
func (s *SyncMap[K, V]) Lookup(key K) (*Entry[V], bool) {
	v, ok := s.m.Load(key)
	if !ok {
		return nil, false
	}
	return v.(*Entry[V]), true
}

// Insert stores the entry, overwriting silently.
func (s *SyncMap[K, V]) Insert(key K, e *Entry[V]) {
	if _, loaded := s.m.Swap(key, e); !loaded {
		s.len.Add(1)
	}
}

// Remove deletes key if present and returns the removed entry.
func (s *SyncMap[K, V]) Remove(key K) (*Entry[V], bool) {
	v, ok := s.m.LoadAndDelete(key)
	if !ok {
		return nil, false
	}
	s.len.Add(-1)
	return v.(*Entry[V]), true
}

// ForEach visits entries until fn returns false.
func (s *SyncMap[K, V]) ForEach(fn func(key K, e *Entry[V]) bool) {
	s.m.Range(func(k, v any) bool {
		return fn(k.(K), v.(*Entry[V]))
	})
}

// Len returns the number of resident entries.
func (s *SyncMap[K, V]) Len() int { return int(s.len.Load()) }

// Clear removes every entry. Entries inserted concurrently with Clear may
// survive; callers that need a quiescent clear must stop traffic first.
func (s *SyncMap[K, V]) Clear() {
	s.m.Range(func(k, _ any) bool {
		if _, ok := s.m.LoadAndDelete(k); ok {
			s.len.Add(-1)
		}
		return true
	})
}

var _ Table[string, int] = (*SyncMap[string, int])(nil)
