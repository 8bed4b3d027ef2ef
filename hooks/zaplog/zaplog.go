// Package zaplog provides ready-made cache event hooks that log through a
// zap.Logger. Hooks run inline on the goroutine performing the cache
// operation, so the logger's own cost is paid on the request path; keep
// the level at Debug for hot caches.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/PedroPareja/AutoCache/cache"
)

// Miss returns a miss hook logging the requested key.
func Miss[K comparable, V any](log *zap.Logger) cache.MissHook[K, V] {
	return func(_ cache.Cache[K, V], key K) {
		log.Debug("cache miss", zap.Any("key", key))
	}
}

// Hit returns a hit hook logging the requested key.
func Hit[K comparable, V any](log *zap.Logger) cache.EntryHook[K, V] {
	return entryHook[K, V](log, "cache hit")
}

// Load returns a load hook logging the key fetched from the loader.
func Load[K comparable, V any](log *zap.Logger) cache.EntryHook[K, V] {
	return entryHook[K, V](log, "cache load")
}

// Save returns a save hook logging the key written to the table.
func Save[K comparable, V any](log *zap.Logger) cache.EntryHook[K, V] {
	return entryHook[K, V](log, "cache save")
}

// Remove returns a remove hook logging the key leaving the table.
func Remove[K comparable, V any](log *zap.Logger) cache.EntryHook[K, V] {
	return entryHook[K, V](log, "cache remove")
}

// Attach installs all five hooks on c. Existing hooks are replaced.
func Attach[K comparable, V any](c cache.Cache[K, V], log *zap.Logger) {
	c.SetOnMiss(Miss[K, V](log))
	c.SetOnHit(Hit[K, V](log))
	c.SetOnLoad(Load[K, V](log))
	c.SetOnSave(Save[K, V](log))
	c.SetOnRemove(Remove[K, V](log))
}

// entryHook logs the key only. Values can be large and may carry data that
// does not belong in logs.
func entryHook[K comparable, V any](log *zap.Logger, msg string) cache.EntryHook[K, V] {
	return func(_ cache.Cache[K, V], key K, _ V) {
		log.Debug(msg, zap.Any("key", key))
	}
}
