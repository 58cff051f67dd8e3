package groupcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	lingua "github.com/tooinfinity/lingua-go"
)

// Cache stores translation-group tables keyed by "{locale}:{group}"
// (see lingua.CacheKey).
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: entry never expires
//
// Both implementations satisfy lingua.GroupCache, so they plug straight
// into lingua.WithGroupCache.
type Cache interface {
	// Get retrieves a group table by key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(ctx context.Context, key string) (lingua.Table, error)

	// Set stores a group table with the given TTL.
	Set(ctx context.Context, key string, table lingua.Table, ttl time.Duration) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

func marshalTable(table lingua.Table) ([]byte, error) {
	data, err := json.Marshal(table)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshalTable(data []byte) (lingua.Table, error) {
	var table lingua.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return table, nil
}

var sfGroup singleflight.Group

type getOrFetchResult struct {
	table lingua.Table
	ttl   time.Duration
}

// GetOrFetch retrieves a group table from the cache, or calls fn to fetch it
// on a miss. Uses singleflight to prevent cache stampedes: concurrent misses
// for the same key invoke fn only once.
//
// The callback returns the table, a TTL for caching, and an error.
// If fn returns an error, nothing is cached and the error is returned.
func GetOrFetch(ctx context.Context, c Cache, key string, fn func(ctx context.Context) (lingua.Table, time.Duration, error)) (lingua.Table, error) {
	// Fast path: try cache first.
	if table, err := c.Get(ctx, key); err == nil {
		return table, nil
	}

	v, err, _ := sfGroup.Do(key, func() (any, error) {
		table, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return getOrFetchResult{table: table, ttl: ttl}, nil
	})
	if err != nil {
		return nil, err
	}

	r := v.(getOrFetchResult)

	// Best-effort cache the result.
	_ = c.Set(ctx, key, r.table, r.ttl)

	return r.table, nil
}
