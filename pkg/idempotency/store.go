// Package idempotency deduplicates webhook deliveries by their update id.
package idempotency

import (
	"context"
	"time"
)

// Store marks update ids as seen for a bounded window. FirstSeen returns true
// only for the first caller to claim a key; later calls within the TTL return
// false.
type Store interface {
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
