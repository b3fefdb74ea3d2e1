// Package cache stores rendered artifacts and fetched documents by key.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON entry file per key under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (render service)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys are built by a [Keyer] so the backends never see raw inputs:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: "svg", Today: "2024-2-14"})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data, nil
//	}
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by helpers that report a missing entry as an error.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value store with optional expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired and
	// unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Lookup is Get with a miss reported as [ErrCacheMiss].
func Lookup(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
