// Package cache provides the key-value backends that persist editor history
// between CLI invocations.
//
// Three backends implement [Cache]:
//   - [FileCache]: entries as JSON files under a directory, for single-user CLI use
//   - [RedisCache]: entries in Redis, so several machines can share a journal
//   - [NullCache]: stores nothing, used when journaling is disabled
//
// Keys come from a [Keyer]. [ScopedKeyer] adds a namespace prefix so that
// several installations can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// reported as ok == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero keeps the entry until it is
	// deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Lookup reads key from c, retrying transient failures. A missing entry is
// reported as [ErrCacheMiss].
func Lookup(ctx context.Context, c Cache, key string) ([]byte, error) {
	var (
		data []byte
		ok   bool
	)
	err := RetryWithBackoff(ctx, func() error {
		var err error
		data, ok, err = c.Get(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
