// Package cache stores rendered diagrams and parsed timetables between runs.
//
// Three backends share the [Cache] interface:
//
//   - [FileCache] keeps entries as JSON files under a local directory (CLI)
//   - [RedisCache] shares entries between server replicas
//   - [NullCache] disables caching
//
// Keys are built by a [Keyer] so that every input affecting an output ends up
// hashed into its key. Wrap a keyer with [NewScopedKeyer] to isolate tenants.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per entry kind.
const (
	TimetableTTL = 24 * time.Hour
	ArtifactTTL  = 7 * 24 * time.Hour
)
