// Package cache stores match results keyed by the content of the graphs
// being compared.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, selected with a redis:// URL
//   - [NullCache]: stores nothing, used with --no-cache
//
// All backends implement [Cache]. Keys come from a [Keyer], which hashes
// the canonical JSON of both graphs so that the same pair of inputs maps to
// the same entry regardless of file name or format.
//
// # Usage
//
//	c, err := cache.Open(ctx, cache.Options{Dir: dir, RedisURL: url})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	key := cache.NewDefaultKeyer().MatchKey(g0JSON, g1JSON)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	// TTLMatch is how long a match result stays valid. Results never go
	// stale for the same input, so the TTL only bounds disk usage.
	TTLMatch = 30 * 24 * time.Hour

	// TTLProfile is how long forest profile summaries are kept.
	TTLProfile = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// and unreadable entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Options selects and configures a backend for [Open].
type Options struct {
	// Disabled returns a NullCache.
	Disabled bool

	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix namespaces Redis keys.
	Prefix string

	// Dir is the FileCache directory, used when RedisURL is empty.
	Dir string
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch {
	case opts.Disabled:
		return NewNullCache(), nil
	case opts.RedisURL != "":
		c, err := NewRedisCache(ctx, opts.RedisURL, opts.Prefix)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
