// Package cache holds the process-lifetime view of each owner's entries.
package cache

import (
	"sync"

	"github.com/AnshRaj112/diary-backend/internal/models"
)

// EntryCache maps an owner id to that owner's entries, newest first.
// Values are copied on the way in and out so callers can never alias cached slices.
type EntryCache struct {
	mu      sync.RWMutex
	byOwner map[string][]models.JournalEntry
}

func NewEntryCache() *EntryCache {
	return &EntryCache{byOwner: make(map[string][]models.JournalEntry)}
}

// Get returns the owner's cached entries. ok is false when the owner has never been cached
// or was invalidated; an empty slice with ok true means "cached, no entries".
func (c *EntryCache) Get(ownerID string) ([]models.JournalEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries, ok := c.byOwner[ownerID]
	if !ok {
		return nil, false
	}
	return models.CloneEntries(entries), true
}

// Lookup returns a single cached entry.
func (c *EntryCache) Lookup(ownerID, date string) (models.JournalEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := models.FindEntry(c.byOwner[ownerID], date)
	if !ok {
		return models.JournalEntry{}, false
	}
	return e.Clone(), true
}

// Set replaces the owner's entries.
func (c *EntryCache) Set(ownerID string, entries []models.JournalEntry) {
	cp := models.CloneEntries(entries)
	models.SortByDateDesc(cp)
	c.mu.Lock()
	c.byOwner[ownerID] = cp
	c.mu.Unlock()
}

// Upsert inserts or replaces one entry, but only for owners already cached: a partial
// list would otherwise masquerade as the owner's complete history.
func (c *EntryCache) Upsert(ownerID string, e models.JournalEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.byOwner[ownerID]
	if !ok {
		return false
	}
	entries = models.UpsertEntry(entries, e.Clone())
	models.SortByDateDesc(entries)
	c.byOwner[ownerID] = entries
	return true
}

// Invalidate drops the owner's entries so the next read goes to a slower tier.
func (c *EntryCache) Invalidate(ownerID string) {
	c.mu.Lock()
	delete(c.byOwner, ownerID)
	c.mu.Unlock()
}

// Len reports how many owners are cached.
func (c *EntryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byOwner)
}
