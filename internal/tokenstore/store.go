// Package tokenstore provides a keyed value store with TTL semantics.
// Backed by Redis it is shared across process instances: entries survive
// restarts and are visible to every instance behind the load balancer.
package tokenstore

import (
	"context"
	"time"
)

type Store interface {
	// Put stores value under key for ttl, overwriting any previous entry.
	Put(ctx context.Context, key string, value string, ttl time.Duration) error
	// PutIfAbsent stores value under key only when no live entry exists.
	// It reports whether the write happened.
	PutIfAbsent(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	// Get returns the live value for key, reporting whether one exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}
