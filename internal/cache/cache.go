// Package cache provides a small TTL cache behind a common interface,
// with in-memory and Redis implementations. Used to avoid hammering
// vendor APIs with identical listing searches.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indicates the key was not found or has expired.
var ErrMiss = errors.New("cache miss")

// Cache stores opaque byte values with a TTL.
type Cache interface {
	// Get retrieves a value by key. Returns ErrMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Close releases any background resources.
	Close() error
}
