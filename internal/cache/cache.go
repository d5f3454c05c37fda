// Package cache is a small distributed cache abstraction used for read-through caching of
// downstream API responses. Values are stored as JSON so the Redis and in-memory backends
// behave the same.
package cache

import (
	"context"
	"time"
)

// Options controls how long an entry lives.
//
// Sliding is renewed on every read. Absolute is measured from Set and is never extended, so
// an entry read continuously still disappears once its absolute deadline passes. A zero value
// disables that bound.
type Options struct {
	Sliding  time.Duration
	Absolute time.Duration
}

// Cache stores JSON-encodable values by key.
type Cache interface {
	// Get decodes the entry for key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, opts Options) error
	// Remove is idempotent.
	Remove(ctx context.Context, key string) error
}

// deadlines returns the next expiry of an entry given the time it was written and the time it
// is being touched. The zero time means no expiry.
func deadlines(opts Options, written, now time.Time) time.Time {
	var expires time.Time
	if opts.Sliding > 0 {
		expires = now.Add(opts.Sliding)
	}
	if opts.Absolute > 0 {
		abs := written.Add(opts.Absolute)
		if expires.IsZero() || abs.Before(expires) {
			expires = abs
		}
	}
	return expires
}
