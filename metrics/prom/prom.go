package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PedroPareja/AutoCache/cache"
)

// Adapter implements cache.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	loads   prometheus.Counter
	saves   prometheus.Counter
	removes *prometheus.CounterVec
	size    prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:         registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Cache hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Cache misses (absent or expired entries)",
			ConstLabels: constLabels,
		}),
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "loads_total",
			Help:        "Successful loader invocations",
			ConstLabels: constLabels,
		}),
		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "saves_total",
			Help:        "Entries written to the table",
			ConstLabels: constLabels,
		}),
		removes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "removes_total",
				Help:        "Entries removed from the table, by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of resident entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.loads, a.saves, a.removes, a.size)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Load increments the loader-invocation counter.
func (a *Adapter) Load() { a.loads.Inc() }

// Save increments the save counter.
func (a *Adapter) Save() { a.saves.Inc() }

// Remove increments the removal counter with a reason label.
func (a *Adapter) Remove(r cache.RemoveReason) {
	a.removes.WithLabelValues(reason(r)).Inc()
}

// Size updates the resident-entries gauge.
func (a *Adapter) Size(entries int) {
	a.size.Set(float64(entries))
}

// reason maps RemoveReason to a stable label value.
func reason(r cache.RemoveReason) string {
	switch r {
	case cache.RemoveExpired:
		return "expired"
	case cache.RemoveReplaced:
		return "replaced"
	case cache.RemoveExplicit:
		return "explicit"
	case cache.RemoveCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Compile-time check: ensure Adapter implements cache.Metrics.
var _ cache.Metrics = (*Adapter)(nil)
