package zaplog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/PedroPareja/AutoCache/cache"
)

func newObservedCache(t *testing.T) (cache.Cache[string, string], *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	c, err := cache.New[string, string](
		func(_ context.Context, k string) (string, error) { return "v:" + k, nil },
		cache.Options[string, string]{},
	)
	require.NoError(t, err)

	Attach(c, zap.New(core))
	return c, logs
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func TestAttach_LogsReadThroughLifecycle(t *testing.T) {
	t.Parallel()

	c, logs := newObservedCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "k") // miss -> load -> save
	require.NoError(t, err)
	_, err = c.Get(ctx, "k") // hit
	require.NoError(t, err)
	c.SetDirty("k") // remove

	require.Equal(t,
		[]string{"cache miss", "cache load", "cache save", "cache hit", "cache remove"},
		messages(logs))

	// Keys are logged; values are not.
	first := logs.All()[0]
	require.Equal(t, "k", first.ContextMap()["key"])
}

func TestHooks_IndividuallyInstallable(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	c, err := cache.New[string, string](nil, cache.Options[string, string]{
		OnSave: Save[string, string](log),
	})
	require.NoError(t, err)

	c.Set("k", "v")
	require.Equal(t, []string{"cache save"}, messages(logs))
}
