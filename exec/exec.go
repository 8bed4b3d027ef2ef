// Package exec provides ready-made executors for cache.GetFuture.
//
// An executor only decides where and when a submitted task runs; result
// delivery and cancellation semantics live in cache.Future.
package exec

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Goroutines runs every task on its own goroutine. Unbounded: a burst of
// futures becomes a burst of goroutines.
type Goroutines struct{}

// Execute starts task on a new goroutine.
func (Goroutines) Execute(task func()) { go task() }

// Bounded caps the number of in-flight tasks with a weighted semaphore.
// Execute blocks the submitter while the cap is reached, which gives
// natural backpressure on miss storms (each blocked submit is a loader
// call that hasn't started yet).
type Bounded struct {
	sem *semaphore.Weighted
}

// NewBounded returns an executor allowing at most limit concurrent tasks.
// limit < 1 is clamped to 1.
func NewBounded(limit int64) *Bounded {
	if limit < 1 {
		limit = 1
	}
	return &Bounded{sem: semaphore.NewWeighted(limit)}
}

// Execute blocks until a slot frees up, then runs task on its own
// goroutine.
func (b *Bounded) Execute(task func()) {
	// Acquire with Background never returns an error.
	_ = b.sem.Acquire(context.Background(), 1)
	go func() {
		defer b.sem.Release(1)
		task()
	}()
}
