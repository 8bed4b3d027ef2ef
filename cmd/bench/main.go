// Command bench runs a synthetic read-through workload against the cache
// and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PedroPareja/AutoCache/cache"
	pmet "github.com/PedroPareja/AutoCache/metrics/prom"
	"github.com/PedroPareja/AutoCache/store"
)

func main() {
	// ---- Flags ----
	var (
		ttl         = flag.Duration("ttl", time.Minute, "entry TTL")
		purgeEvery  = flag.Duration("purge", 10*time.Second, "purge interval")
		maxElements = flag.Int("max", 200_000, "max element count (size trigger)")
		table       = flag.String("table", "syncmap", "backing table: syncmap | sharded")
		shards      = flag.Int("shards", 0, "shard count for -table=sharded (0=auto)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")

		keys     = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV    = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		loadCost = flag.Duration("load_cost", 0, "artificial latency per loader call")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "autocache", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	// ---- Build cache ----
	var loads atomic.Int64
	loadCostVal := *loadCost
	loader := func(_ context.Context, k string) (string, error) {
		loads.Add(1)
		if loadCostVal > 0 {
			time.Sleep(loadCostVal)
		}
		return "v:" + k, nil
	}

	opt := cache.Options[string, string]{
		TTL:           *ttl,
		PurgeInterval: *purgeEvery,
		MaxElements:   *maxElements,
		Metrics:       metrics,
	}
	switch *table {
	case "syncmap":
		// nil => sync.Map-backed table by default
	case "sharded":
		opt.Table = store.ShardedFactory[string, string](*shards)
	default:
		log.Fatalf("unknown table: %q (use syncmap or sharded)", *table)
	}
	c, err := cache.New[string, string](loader, opt)
	if err != nil {
		log.Fatal(err)
	}

	// ---- Snapshot flags for goroutines ----
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	zipfSVal := *zipfS
	zipfVVal := *zipfV
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation: every op is a read-through Get ----
	var total, failures uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workersN)
	for w := 0; w < workersN; w++ {
		go func(id int) {
			defer wg.Done()

			// Each worker gets its own RNG + Zipf (rand.Rand is NOT goroutine-safe).
			localR := rand.New(rand.NewSource(seedBase + int64(id)*9973))
			localZipf := rand.NewZipf(localR, zipfSVal, zipfVVal, keysMax)

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddUint64(&total, 1)
				k := "k:" + strconv.FormatUint(localZipf.Uint64(), 10)
				if _, err := c.Get(context.Background(), k); err != nil {
					atomic.AddUint64(&failures, 1)
				}
			}
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	// ---- Report ----
	ops := atomic.LoadUint64(&total)
	s := c.Stats()

	hitRate := 0.0
	if gets := s.Hits + s.Misses; gets > 0 {
		hitRate = float64(s.Hits) / float64(gets) * 100
	}

	fmt.Printf("table=%s ttl=%v purge=%v max=%d workers=%d keys=%d dur=%v seed=%d\n",
		*table, *ttl, *purgeEvery, *maxElements, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  failures=%d  loader-calls=%d\n",
		ops, float64(ops)/elapsed.Seconds(), atomic.LoadUint64(&failures), loads.Load())
	fmt.Printf("hits=%d  misses=%d  hit-rate=%.2f%%  saves=%d  removes=%d\n",
		s.Hits, s.Misses, hitRate, s.Saves, s.Removes)
	fmt.Printf("Len()=%d\n", c.Len())
}
