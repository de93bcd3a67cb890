package idempotency

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

// NewMemoryStore builds a process-local Store. It is the fallback when no
// Redis address is configured; deduplication then only holds per instance.
func NewMemoryStore() Store {
	return &memoryStore{
		cache: gocache.New(gocache.NoExpiration, 5*time.Minute),
	}
}

func (s *memoryStore) FirstSeen(_ context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.cache.Get(key); found {
		return false, nil
	}
	s.cache.Set(key, struct{}{}, ttl)
	return true, nil
}
