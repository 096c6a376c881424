package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deorlovnis/popping-lab/internal/model"
)

// DiskStore persists verdicts as JSON files. Entries survive process
// restarts and serve as the audit trail of past evaluations.
type DiskStore struct {
	dir string
	ttl time.Duration
}

// NewDiskStore creates a disk-backed verdict store
func NewDiskStore(dir string, ttl time.Duration) *DiskStore {
	return &DiskStore{dir: dir, ttl: ttl}
}

type diskEntry struct {
	Result    model.ClaimResult `json:"result"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// Get retrieves a cached verdict, removing it if expired
func (s *DiskStore) Get(key string) (*model.ClaimResult, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(s.path(key))
		return nil, false
	}
	return &entry.Result, true
}

// Set stores a verdict. A zero TTL uses the store default.
func (s *DiskStore) Set(key string, result *model.ClaimResult, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}

	entry := diskEntry{
		Result:    *result,
		ExpiresAt: time.Now().Add(ttl),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Delete removes a cached verdict
func (s *DiskStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

// Clear removes the whole store
func (s *DiskStore) Clear() error {
	return os.RemoveAll(s.dir)
}

// path hashes the key into the filename so keys with separator characters
// stay valid on every filesystem
func (s *DiskStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}
