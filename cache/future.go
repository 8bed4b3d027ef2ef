package cache

import "context"

// Executor runs tasks submitted by GetFuture. Implementations decide the
// scheduling policy (dedicated goroutine, bounded pool, ...); the exec
// package provides ready-made ones.
type Executor interface {
	Execute(task func())
}

// Future is the handle to an asynchronous Get scheduled on an Executor.
//
// Publishing (val, err) happens-before close(done), so reads after Wait or
// <-Done() observe the final values.
type Future[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Done returns a channel closed once the result is available.
func (f *Future[V]) Done() <-chan struct{} { return f.done }

// Wait blocks until the result is available or ctx is cancelled.
// Cancellation abandons the wait only; the underlying Get, and any
// in-flight loader call, keep running on the executor.
func (f *Future[V]) Wait(ctx context.Context) (V, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// GetFuture schedules a single Get on ex using the cache clock as
// reference time.
func (c *cache[K, V]) GetFuture(ctx context.Context, key K, ex Executor) *Future[V] {
	return c.GetFutureAt(ctx, key, c.now(), ex)
}

// GetFutureAt schedules a single GetAt on ex. The cache defines no
// cancellation of its own; timeout and cancellation semantics are whatever
// the executor and ctx provide.
func (c *cache[K, V]) GetFutureAt(ctx context.Context, key K, at int64, ex Executor) *Future[V] {
	f := &Future[V]{done: make(chan struct{})}
	ex.Execute(func() {
		f.val, f.err = c.GetAt(ctx, key, at)
		close(f.done)
	})
	return f
}
