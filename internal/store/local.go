// Package store holds the storage adapters behind the entry coordinator: the remote document
// store (Mongo), the device local store (Redis or memory) and the remote backup API (Postgres).
package store

import (
	"context"
	"sync"
)

// LocalStore is a string key/value store with the semantics of browser localStorage.
// A missing key is reported with ok == false and a nil error.
type LocalStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

// EntryItemKey addresses the single local record for one day.
func EntryItemKey(ownerID, date string) string {
	return "journal_" + ownerID + "_" + date
}

// EntryListKey addresses the denormalized list of every entry an owner has saved locally.
func EntryListKey(ownerID string) string {
	return "all_entries_" + ownerID
}

// MemoryLocalStore keeps items in process memory. Used for LOCAL_STORE=memory and in tests.
type MemoryLocalStore struct {
	mu    sync.RWMutex
	items map[string]string
}

func NewMemoryLocalStore() *MemoryLocalStore {
	return &MemoryLocalStore{items: make(map[string]string)}
}

func (m *MemoryLocalStore) GetItem(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryLocalStore) SetItem(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.items[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryLocalStore) RemoveItem(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}
