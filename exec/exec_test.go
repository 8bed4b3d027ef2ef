package exec

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGoroutines_RunsTask(t *testing.T) {
	t.Parallel()

	done := make(chan struct{})
	Goroutines{}.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}

func TestBounded_LimitsConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 3
	ex := NewBounded(limit)

	var inFlight, peak atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		ex.Execute(func() {
			defer wg.Done()
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
		})
	}
	wg.Wait()

	require.LessOrEqual(t, peak.Load(), int64(limit))
	require.Positive(t, peak.Load())
}

func TestNewBounded_ClampsLimit(t *testing.T) {
	t.Parallel()

	ex := NewBounded(0) // clamped to 1: still a usable executor
	done := make(chan struct{})
	ex.Execute(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task never ran")
	}
}
