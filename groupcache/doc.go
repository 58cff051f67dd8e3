// Package groupcache caches fetched translation-group tables so repeated
// store initializations and locale switches do not re-hit the Lingua server.
//
// Entries are keyed "{locale}:{group}" (lingua.CacheKey). Two backends are
// provided: Memory for per-process caching and Redis for sharing warm groups
// across processes. Both satisfy lingua.GroupCache:
//
//	cache := groupcache.NewMemory(
//		groupcache.WithDefaultTTL(15 * time.Minute),
//	)
//	defer cache.Close()
//
//	store, err := lingua.New(snapshot, fetcher,
//		lingua.WithGroupCache(cache),
//	)
//
// The store treats the cache as read-through and best-effort: hits merge
// without a network request, successful fetches populate it, and cache
// failures never fail a load.
//
// GetOrFetch is a standalone helper for callers that bypass the store; it
// deduplicates concurrent misses for one key with singleflight. Note the
// store does not need it: the store's own pending map already guarantees a
// single fetch per group.
package groupcache
