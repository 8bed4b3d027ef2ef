package cache

import "time"

// Runtime configuration accessors. None of these validate their input and
// none of them synchronize with concurrent traffic; see the Cache
// interface docs.

func (c *cache[K, V]) TTL() time.Duration       { return c.ttl }
func (c *cache[K, V]) SetTTL(ttl time.Duration) { c.ttl = ttl }

func (c *cache[K, V]) PurgeInterval() time.Duration { return c.purgeEvery }

// SetPurgeInterval changes the sweep cadence and reschedules the next
// sweep from the current clock reading.
func (c *cache[K, V]) SetPurgeInterval(d time.Duration) {
	c.purgeEvery = d
	c.scheduleNextPurge(c.now())
}

func (c *cache[K, V]) MaxElements() int     { return c.maxElements }
func (c *cache[K, V]) SetMaxElements(n int) { c.maxElements = n }

func (c *cache[K, V]) SafetyClear() bool           { return c.safetyClear }
func (c *cache[K, V]) SetSafetyClear(enabled bool) { c.safetyClear = enabled }

func (c *cache[K, V]) TimePurgeAction() Action     { return c.timeAction }
func (c *cache[K, V]) SetTimePurgeAction(a Action) { c.timeAction = a }

func (c *cache[K, V]) SizePurgeAction() Action     { return c.sizeAction }
func (c *cache[K, V]) SetSizePurgeAction(a Action) { c.sizeAction = a }

func (c *cache[K, V]) ExtendOnHit() bool           { return c.extendOnHit }
func (c *cache[K, V]) SetExtendOnHit(enabled bool) { c.extendOnHit = enabled }

func (c *cache[K, V]) SetStoreCheck(fn StoreCheck[V]) { c.storeCheck = fn }
func (c *cache[K, V]) SetOnMiss(fn MissHook[K, V])    { c.onMiss = fn }
func (c *cache[K, V]) SetOnHit(fn EntryHook[K, V])    { c.onHit = fn }
func (c *cache[K, V]) SetOnLoad(fn EntryHook[K, V])   { c.onLoad = fn }
func (c *cache[K, V]) SetOnSave(fn EntryHook[K, V])   { c.onSave = fn }
func (c *cache[K, V]) SetOnRemove(fn EntryHook[K, V]) { c.onRemove = fn }
