// Package cache stores rendered artifacts and dataset snapshots.
//
// A [Cache] is a byte store with optional TTLs. Implementations:
//
//   - [FileCache]: entries as files under a directory (the CLI default)
//   - [RedisCache]: entries in Redis, shared between machines
//   - [NullCache]: stores nothing (--no-cache)
//
// Wrappers add behaviour to any cache: [Compressed] stores entries
// snappy-compressed and [Instrumented] reports hits and misses to the
// observability hooks.
//
// Keys come from a [Keyer] so that every input affecting the output
// (dataset contents, chart, format, configuration) is part of the key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Clear empties c if it supports clearing.
func Clear(ctx context.Context, c Cache) error {
	if cl, ok := c.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return nil
}

// NullCache misses on every Get and drops every Set.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns the cache used for --no-cache and the "none" backend.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
