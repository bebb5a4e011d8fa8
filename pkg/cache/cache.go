// Package cache provides byte-oriented caching for rendered graph
// artifacts, with file, Redis, and no-op backends.
//
// Keys are derived from a hash of the snapshot content plus the render
// options, so a changed graph never serves a stale artifact. Entries carry
// a TTL; a TTL of zero means they never expire.
package cache

import (
	"context"
	"time"
)

// Cache stores and retrieves byte blobs by key.
//
// Get returns the data and true on a hit, or nil and false on a miss.
// Implementations report misses for expired entries and are free to evict
// them lazily.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
