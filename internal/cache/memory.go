package cache

import (
	"time"

	"github.com/deorlovnis/popping-lab/internal/model"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps verdicts in process memory
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates an in-memory verdict store
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a cached verdict
func (s *MemoryStore) Get(key string) (*model.ClaimResult, bool) {
	if val, found := s.cache.Get(key); found {
		result := val.(model.ClaimResult)
		return &result, true
	}
	return nil, false
}

// Set stores a verdict with the given TTL. The result is copied so later
// caller mutations cannot reach the cached value.
func (s *MemoryStore) Set(key string, result *model.ClaimResult, ttl time.Duration) error {
	s.cache.Set(key, *result, ttl)
	return nil
}

// Delete removes a verdict
func (s *MemoryStore) Delete(key string) error {
	s.cache.Delete(key)
	return nil
}

// Clear removes all verdicts
func (s *MemoryStore) Clear() error {
	s.cache.Flush()
	return nil
}
