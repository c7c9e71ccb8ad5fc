package session

import (
	"context"
	"sync"
)

// Persisted keys. They are written and removed together.
const (
	KeyToken  = "auth_token"
	KeyUser   = "user_data"
	KeyUserID = "user_id"
)

// Storage is a persistent string key/value store scoped to one client profile.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStorage keeps entries in process memory. Used by tests and the "memory" backend.
type MemoryStorage struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: make(map[string]string)}
}

// Get returns the value for key.
func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
	return nil
}

// Delete removes keys; missing keys are ignored.
func (m *MemoryStorage) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
