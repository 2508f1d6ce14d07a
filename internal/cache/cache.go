// Package cache provides the TTL response cache used at the provider
// boundary. Entries are keyed by the full request signature and expire
// strictly after their TTL; an expired entry is never served.
package cache

import (
	"context"
	"time"
)

type Store interface {
	// Get returns the cached value for key, or ok=false on a miss or an
	// expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
