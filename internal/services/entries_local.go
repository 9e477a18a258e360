package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AnshRaj112/diary-backend/internal/metrics"
	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/store"
	"go.uber.org/zap"
)

// readLocalEntry returns the single local record for date. Unreadable and corrupt records
// count as absent; corrupt ones are removed.
func (c *EntryCoordinator) readLocalEntry(ctx context.Context, ownerID, date string) (models.JournalEntry, bool) {
	key := store.EntryItemKey(ownerID, date)
	raw, ok, err := c.local.GetItem(ctx, key)
	if err != nil {
		c.log.Warn("local read failed", zap.String("key", key), zap.String("tier", "local"), zap.Error(err))
		return models.JournalEntry{}, false
	}
	if !ok {
		return models.JournalEntry{}, false
	}

	var e models.JournalEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		c.discardCorrupt(ctx, key, err)
		return models.JournalEntry{}, false
	}
	e.OwnerID, e.Date, e.ID = ownerID, date, models.EntryKey(ownerID, date)
	e.Normalize()
	return e, true
}

// readLocalList returns the owner's local list, or ok == false when there is none or it
// cannot be read.
func (c *EntryCoordinator) readLocalList(ctx context.Context, ownerID string) ([]models.JournalEntry, bool) {
	entries, ok, err := c.localList(ctx, ownerID)
	if err != nil {
		c.log.Warn("local read failed", zap.String("key", store.EntryListKey(ownerID)), zap.String("tier", "local"), zap.Error(err))
		return nil, false
	}
	return entries, ok
}

// localList is readLocalList for read-modify-write callers, which must not mistake an
// unreachable store for an empty list. A corrupt list is discarded and reported as absent.
func (c *EntryCoordinator) localList(ctx context.Context, ownerID string) ([]models.JournalEntry, bool, error) {
	key := store.EntryListKey(ownerID)
	raw, ok, err := c.local.GetItem(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		c.discardCorrupt(ctx, key, err)
		return nil, false, nil
	}
	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if models.ValidateDate(e.Date) != nil {
			continue
		}
		e.OwnerID = ownerID
		e.ID = models.EntryKey(ownerID, e.Date)
		e.Normalize()
		out = append(out, e)
	}
	return out, true, nil
}

func (c *EntryCoordinator) discardCorrupt(ctx context.Context, key string, cause error) {
	metrics.RecordCorruptLocalRecord()
	c.log.Warn("discarding corrupt local record", zap.String("key", key), zap.String("tier", "local"), zap.Error(cause))
	if err := c.local.RemoveItem(ctx, key); err != nil {
		c.log.Warn("removing corrupt local record failed", zap.String("key", key), zap.String("tier", "local"), zap.Error(err))
	}
}

func (c *EntryCoordinator) writeLocalEntry(ctx context.Context, e models.JournalEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWrite, err)
	}
	if err := c.local.SetItem(ctx, store.EntryItemKey(e.OwnerID, e.Date), string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWrite, err)
	}
	return nil
}

func (c *EntryCoordinator) writeLocalList(ctx context.Context, ownerID string, entries []models.JournalEntry) error {
	if entries == nil {
		entries = []models.JournalEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWrite, err)
	}
	if err := c.local.SetItem(ctx, store.EntryListKey(ownerID), string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrLocalWrite, err)
	}
	return nil
}
