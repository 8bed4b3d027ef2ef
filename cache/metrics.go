package cache

// RemoveReason explains why an entry left the table.
type RemoveReason int

const (
	// RemoveExpired: deleted by a purge sweep after its deadline passed.
	RemoveExpired RemoveReason = iota
	// RemoveReplaced: overwritten by a store under the same key.
	RemoveReplaced
	// RemoveExplicit: invalidated via SetDirty.
	RemoveExplicit
	// RemoveCleared: deleted by a full clear (maintenance or Clear).
	RemoveCleared
)

// Metrics exposes cache-level observability signals. A NoopMetrics
// implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Load()
	Save()
	Remove(reason RemoveReason)
	Size(entries int)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// Safe for concurrent use.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                {}
func (NoopMetrics) Miss()               {}
func (NoopMetrics) Load()               {}
func (NoopMetrics) Save()               {}
func (NoopMetrics) Remove(RemoveReason) {}
func (NoopMetrics) Size(int)            {}

var _ Metrics = NoopMetrics{}
