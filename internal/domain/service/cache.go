package service

import (
	"context"
	"time"
)

// Cache is a TTL-based key-value port. Any backing store with expiry
// support satisfies it.
type Cache interface {
	// Get unmarshals the cached value into dest and reports whether the
	// key was present. A miss is not an error.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes one or more keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
