package groupcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	lingua "github.com/tooinfinity/lingua-go"
	"github.com/tooinfinity/lingua-go/groupcache"
)

func newMemory(t *testing.T, opts ...groupcache.MemoryOption) *groupcache.Memory {
	t.Helper()
	c := groupcache.NewMemory(opts...)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemory_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrNotFound for missing key", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t)
		_, err := c.Get(context.Background(), "en:missing")
		require.ErrorIs(t, err, groupcache.ErrNotFound)
	})

	t.Run("returns stored table", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t)
		table := lingua.Table{"title": "Dashboard"}
		require.NoError(t, c.Set(context.Background(), lingua.CacheKey("en", "dashboard"), table, -1))

		got, err := c.Get(context.Background(), "en:dashboard")
		require.NoError(t, err)
		require.Equal(t, table, got)
	})

	t.Run("overwrites existing entry", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t)
		require.NoError(t, c.Set(context.Background(), "en:g", lingua.Table{"k": "old"}, -1))
		require.NoError(t, c.Set(context.Background(), "en:g", lingua.Table{"k": "new"}, -1))

		got, err := c.Get(context.Background(), "en:g")
		require.NoError(t, err)
		require.Equal(t, "new", got["k"])
	})

	t.Run("expires entries after TTL", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t, groupcache.WithCleanupInterval(0))
		require.NoError(t, c.Set(context.Background(), "en:g", lingua.Table{}, 10*time.Millisecond))

		time.Sleep(20 * time.Millisecond)
		_, err := c.Get(context.Background(), "en:g")
		require.ErrorIs(t, err, groupcache.ErrNotFound)
	})

	t.Run("zero TTL uses the configured default", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t, groupcache.WithDefaultTTL(10*time.Millisecond), groupcache.WithCleanupInterval(0))
		require.NoError(t, c.Set(context.Background(), "en:g", lingua.Table{}, 0))

		time.Sleep(20 * time.Millisecond)
		_, err := c.Get(context.Background(), "en:g")
		require.ErrorIs(t, err, groupcache.ErrNotFound)
	})

	t.Run("negative TTL never expires", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t, groupcache.WithDefaultTTL(time.Millisecond), groupcache.WithCleanupInterval(0))
		require.NoError(t, c.Set(context.Background(), "en:g", lingua.Table{}, -1))

		time.Sleep(10 * time.Millisecond)
		_, err := c.Get(context.Background(), "en:g")
		require.NoError(t, err)
	})
}

func TestMemory_LRU(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t, groupcache.WithMaxEntries(2), groupcache.WithCleanupInterval(0))
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "en:a", lingua.Table{}, -1))
		require.NoError(t, c.Set(ctx, "en:b", lingua.Table{}, -1))

		// Touch "a" so "b" becomes the eviction candidate.
		_, err := c.Get(ctx, "en:a")
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "en:c", lingua.Table{}, -1))

		_, err = c.Get(ctx, "en:b")
		require.ErrorIs(t, err, groupcache.ErrNotFound)
		_, err = c.Get(ctx, "en:a")
		require.NoError(t, err)
	})
}

func TestMemory_HasClearClose(t *testing.T) {
	t.Parallel()

	t.Run("has reflects existence and expiry", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t, groupcache.WithCleanupInterval(0))
		ctx := context.Background()

		ok, err := c.Has(ctx, "en:g")
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, c.Set(ctx, "en:g", lingua.Table{}, 10*time.Millisecond))
		ok, err = c.Has(ctx, "en:g")
		require.NoError(t, err)
		require.True(t, ok)

		time.Sleep(20 * time.Millisecond)
		ok, err = c.Has(ctx, "en:g")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t)
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "en:a", lingua.Table{}, -1))
		require.NoError(t, c.Set(ctx, "en:b", lingua.Table{}, -1))
		require.NoError(t, c.Clear(ctx))

		_, err := c.Get(ctx, "en:a")
		require.ErrorIs(t, err, groupcache.ErrNotFound)
	})

	t.Run("operations on a closed cache fail", func(t *testing.T) {
		t.Parallel()
		c := groupcache.NewMemory()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close()) // idempotent

		require.ErrorIs(t, c.Set(context.Background(), "en:g", lingua.Table{}, -1), groupcache.ErrClosed)
		require.ErrorIs(t, c.Delete(context.Background(), "en:g"), groupcache.ErrClosed)
		require.ErrorIs(t, c.Clear(context.Background()), groupcache.ErrClosed)
	})

	t.Run("janitor removes expired entries", func(t *testing.T) {
		t.Parallel()
		c := newMemory(t, groupcache.WithCleanupInterval(5*time.Millisecond))
		ctx := context.Background()

		require.NoError(t, c.Set(ctx, "en:g", lingua.Table{}, time.Millisecond))
		require.Eventually(t, func() bool {
			ok, err := c.Has(ctx, "en:g")
			return err == nil && !ok
		}, time.Second, 5*time.Millisecond)
	})
}
