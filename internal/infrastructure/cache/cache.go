// Package cache provides the read-through cache used for configuration and
// report reads. Invalidation is explicit: mutations call Invalidate with the
// keys they made stale, there is no ambient global state.
package cache

import (
	"context"
	"time"
)

// Cache is the capability handed to services: read, write with TTL, and
// explicit invalidation. Implementations are safe for concurrent use.
type Cache interface {
	// Get unmarshals the cached value for key into dest. Returns false when
	// the key is absent or expired; that is not an error.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Invalidate drops the keys. Missing keys are a no-op.
	Invalidate(ctx context.Context, keys ...string) error
}
