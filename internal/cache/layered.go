package cache

import (
	"time"

	"github.com/deorlovnis/popping-lab/internal/model"
)

// LayeredStore combines a memory and a disk store: reads check memory
// first and promote disk hits, writes go to both.
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a two-level verdict store
func NewLayeredStore(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir, diskTTL),
	}
}

// Get retrieves a verdict, promoting disk hits into memory
func (s *LayeredStore) Get(key string) (*model.ClaimResult, bool) {
	if result, found := s.memory.Get(key); found {
		return result, true
	}
	if result, found := s.disk.Get(key); found {
		_ = s.memory.Set(key, result, 0)
		return result, true
	}
	return nil, false
}

// Set stores a verdict in both layers
func (s *LayeredStore) Set(key string, result *model.ClaimResult, ttl time.Duration) error {
	if err := s.memory.Set(key, result, ttl); err != nil {
		return err
	}
	return s.disk.Set(key, result, ttl)
}

// Delete removes a verdict from both layers
func (s *LayeredStore) Delete(key string) error {
	_ = s.memory.Delete(key)
	return s.disk.Delete(key)
}

// Clear empties both layers
func (s *LayeredStore) Clear() error {
	_ = s.memory.Clear()
	return s.disk.Clear()
}
