package groupcache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a key does not exist in the cache or has expired.
	ErrNotFound = errors.New("groupcache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("groupcache: closed")

	// ErrMarshal is returned when table serialization fails.
	ErrMarshal = errors.New("groupcache: failed to marshal table")

	// ErrUnmarshal is returned when table deserialization fails.
	ErrUnmarshal = errors.New("groupcache: failed to unmarshal table")
)
