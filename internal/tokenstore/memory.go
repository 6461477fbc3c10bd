package tokenstore

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used in tests and in dev
// setups without Redis. Entries vanish on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (store *MemoryStore) Put(_ context.Context, key string, value string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked()
	store.entries[key] = memoryEntry{value: value, expiresAt: store.now().Add(ttl)}
	return nil
}

func (store *MemoryStore) PutIfAbsent(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pruneLocked()
	if _, exists := store.entries[key]; exists {
		return false, nil
	}
	store.entries[key] = memoryEntry{value: value, expiresAt: store.now().Add(ttl)}
	return true, nil
}

func (store *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, exists := store.entries[key]
	if !exists || !entry.expiresAt.After(store.now()) {
		delete(store.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (store *MemoryStore) Delete(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.entries, key)
	return nil
}

func (store *MemoryStore) pruneLocked() {
	threshold := store.now()
	for key, entry := range store.entries {
		if !entry.expiresAt.After(threshold) {
			delete(store.entries, key)
		}
	}
}
