// Package cache provides the catalog response cache. Catalog reads dominate
// storefront traffic and tolerate short staleness, so responses are cached
// for a configurable TTL. Cart, checkout and customer data are never cached.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when the key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores serialized responses under string keys with a TTL.
type Cache interface {
	// Get returns the cached value, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
