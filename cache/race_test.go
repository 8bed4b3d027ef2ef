package cache

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PedroPareja/AutoCache/exec"
	"github.com/PedroPareja/AutoCache/store"
)

// A mixed workload of concurrent Get/Set/SetDirty/Len on random keys, with
// maintenance firing under pressure. Should pass under `-race` without
// detector reports. Configuration is fixed before traffic starts, as the
// contract requires.
func TestRace_MixedOps(t *testing.T) {
	c, err := New[string, string](
		func(_ context.Context, k string) (string, error) { return "v:" + k, nil },
		Options[string, string]{
			TTL:         50 * time.Millisecond,
			MaxElements: 4_096,
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 10_000
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% SetDirty
					c.SetDirty(k)
				case 5, 6, 7, 8, 9: // ~5% Set
					c.Set(k, "x")
				case 10: // ~1% Len
					_ = c.Len()
				default: // ~89% Get
					if _, err := c.Get(ctx, k); err != nil {
						t.Errorf("Get: %v", err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()
}

// Same workload on the striped table.
func TestRace_ShardedTable(t *testing.T) {
	c, err := New[string, string](
		func(_ context.Context, k string) (string, error) { return "v:" + k, nil },
		Options[string, string]{
			TTL:         50 * time.Millisecond,
			MaxElements: 4_096,
			Table:       store.ShardedFactory[string, string](32),
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var g errgroup.Group
	for w := 0; w < 2*runtime.GOMAXPROCS(0); w++ {
		id := w
		g.Go(func() error {
			r := rand.New(rand.NewSource(int64(id)*7919 + 1))
			for i := 0; i < 20_000; i++ {
				k := "k:" + strconv.Itoa(r.Intn(5_000))
				switch r.Intn(10) {
				case 0:
					c.Set(k, "x")
				case 1:
					c.SetDirty(k)
				default:
					if _, err := c.Get(ctx, k); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

// Concurrent misses on one key each run the loader independently; load
// coalescing is deliberately absent. Every caller must still observe a
// correct value, and at least one load must have happened.
func TestRace_ConcurrentMissesAllServed(t *testing.T) {
	var loads atomic.Int64
	c, err := New[string, string](
		func(_ context.Context, k string) (string, error) {
			loads.Add(1)
			time.Sleep(2 * time.Millisecond) // widen the stampede window
			return "v:" + k, nil
		},
		Options[string, string]{},
	)
	if err != nil {
		t.Fatal(err)
	}

	const goroutines = 64
	start := make(chan struct{})
	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			<-start
			v, err := c.Get(context.Background(), "same-key")
			if err != nil {
				return err
			}
			if v != "v:same-key" {
				return fmt.Errorf("got %q", v)
			}
			return nil
		})
	}
	close(start)
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if n := loads.Load(); n < 1 || n > goroutines {
		t.Fatalf("loads out of range [1..%d]: %d", goroutines, n)
	}
	// Last write won; the key serves hits now.
	if v, err := c.Get(context.Background(), "same-key"); err != nil || v != "v:same-key" {
		t.Fatalf("post-stampede Get: v=%q err=%v", v, err)
	}
}

// Extend-on-hit mutates deadlines while purge sweeps read them.
func TestRace_ExtendOnHitVersusPurge(t *testing.T) {
	c, err := New[string, string](
		func(_ context.Context, k string) (string, error) { return "v:" + k, nil },
		Options[string, string]{
			TTL:         10 * time.Millisecond,
			ExtendOnHit: true,
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	deadline := time.Now().Add(1 * time.Second)
	var g errgroup.Group
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		g.Go(func() error {
			for time.Now().Before(deadline) {
				if _, err := c.Get(ctx, "hot"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		for time.Now().Before(deadline) {
			c.Purge(time.Now().UnixNano())
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

// Many concurrent futures on a bounded executor all resolve.
func TestRace_Futures(t *testing.T) {
	c, err := New[string, string](
		func(_ context.Context, k string) (string, error) {
			time.Sleep(time.Millisecond)
			return "v:" + k, nil
		},
		Options[string, string]{},
	)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	ex := exec.NewBounded(8)

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		key := "k:" + strconv.Itoa(i%16)
		g.Go(func() error {
			f := c.GetFuture(ctx, key, ex)
			v, err := f.Wait(ctx)
			if err != nil {
				return err
			}
			if v != "v:"+key {
				return fmt.Errorf("got %q for %q", v, key)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
