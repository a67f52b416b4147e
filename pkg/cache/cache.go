// Package cache stores rendered artifacts and parsed datasets.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for the
// server and [NullCache] to disable caching. Keys come from a [Keyer] so
// that the same inputs always map to the same entry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Default TTLs per entry kind.
const (
	TTLData     = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
	TTLChart    = time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and whether it was found. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// NullCache never stores anything; every Get misses.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
