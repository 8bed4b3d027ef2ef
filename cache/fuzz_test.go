//go:build go1.18

package cache

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
)

// Fuzz basic Set/Get/SetDirty semantics under arbitrary string inputs.
// Guards against panics and ensures core invariants hold.
// Key/value lengths are capped to avoid pathological memory usage during
// fuzzing.
func FuzzCache_SetGetSetDirty(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		var calls atomic.Int64
		c, _ := newTestCache(t, Options[string, string]{}, &calls)
		ctx := context.Background()

		// Set -> Get must round-trip without touching the loader.
		c.Set(k, v)
		got, err := c.Get(ctx, k)
		if err != nil || got != v {
			t.Fatalf("after Set/Get: want %q, got %q err=%v", v, got, err)
		}
		if calls.Load() != 0 {
			t.Fatalf("loader ran on a manual entry: %d calls", calls.Load())
		}

		// SetDirty must evict; the next Get goes through the loader.
		c.SetDirty(k)
		if c.Len() != 0 {
			t.Fatalf("key must be absent after SetDirty, Len=%d", c.Len())
		}
		got, err = c.Get(ctx, k)
		if err != nil || got != "v:"+k {
			t.Fatalf("after SetDirty/Get: want %q, got %q err=%v", "v:"+k, got, err)
		}
		if calls.Load() != 1 {
			t.Fatalf("loader must run exactly once, got %d", calls.Load())
		}

		// The loaded value is resident now.
		if c.Len() != 1 {
			t.Fatalf("loaded value must be cached, Len=%d", c.Len())
		}
	})
}
