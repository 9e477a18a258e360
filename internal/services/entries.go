package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AnshRaj112/diary-backend/internal/cache"
	"github.com/AnshRaj112/diary-backend/internal/metrics"
	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/notify"
	"github.com/AnshRaj112/diary-backend/internal/store"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultRecentLimit   = 50
	DefaultRemoteTimeout = 5 * time.Second
)

// Sources reported by Load and List.
const (
	SourceCache  = "cache"
	SourceLocal  = "local"
	SourceRemote = "remote"
	SourceFresh  = "fresh"
	SourceNone   = "none"
)

// ErrLocalWrite means a save could not be confirmed because the local store rejected it.
var ErrLocalWrite = errors.New("local store write failed")

// RemoteEntryStore is the cloud document store. Every call may fail independently.
type RemoteEntryStore interface {
	GetByKey(ctx context.Context, ownerID, date string) (*models.JournalEntry, error)
	GetRecent(ctx context.Context, ownerID string, limit int) ([]models.JournalEntry, error)
	GetAll(ctx context.Context, ownerID string) ([]models.JournalEntry, error)
	GetForMonth(ctx context.Context, ownerID string, year, month int) ([]models.JournalEntry, error)
	Put(ctx context.Context, entry models.JournalEntry) error
}

// BackupStore is the optional second remote copy.
type BackupStore interface {
	Put(ctx context.Context, entry models.JournalEntry) error
}

// CoordinatorOptions wires an EntryCoordinator. Local is required; a nil Remote runs the
// coordinator offline and a nil Backup disables backups.
type CoordinatorOptions struct {
	Local         store.LocalStore
	Remote        RemoteEntryStore
	Backup        BackupStore
	Cache         *cache.EntryCache
	Hub           *notify.Hub
	Publisher     notify.Publisher
	Logger        *zap.Logger
	RecentLimit   int
	RemoteTimeout time.Duration
	Now           func() time.Time
}

// EntryCoordinator serves journal entries from the fastest tier that has them (memory, then
// the local store, then the remote store) and persists saves local-first with detached
// remote writes.
type EntryCoordinator struct {
	local         store.LocalStore
	remote        RemoteEntryStore
	backup        BackupStore
	cache         *cache.EntryCache
	hub           *notify.Hub
	publisher     notify.Publisher
	log           *zap.Logger
	recentLimit   int
	remoteTimeout time.Duration
	now           func() time.Time

	refreshes singleflight.Group

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	tasksMu sync.Mutex
	closed  bool
	tasks   sync.WaitGroup
}

func NewEntryCoordinator(opts CoordinatorOptions) *EntryCoordinator {
	c := &EntryCoordinator{
		local:         opts.Local,
		remote:        opts.Remote,
		backup:        opts.Backup,
		cache:         opts.Cache,
		hub:           opts.Hub,
		publisher:     opts.Publisher,
		log:           opts.Logger,
		recentLimit:   opts.RecentLimit,
		remoteTimeout: opts.RemoteTimeout,
		now:           opts.Now,
		locks:         make(map[string]*sync.Mutex),
	}
	if c.local == nil {
		c.local = store.NewMemoryLocalStore()
	}
	if c.cache == nil {
		c.cache = cache.NewEntryCache()
	}
	if c.hub == nil {
		c.hub = notify.NewHub()
	}
	if c.publisher == nil {
		c.publisher = c.hub
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.recentLimit <= 0 {
		c.recentLimit = DefaultRecentLimit
	}
	if c.remoteTimeout <= 0 {
		c.remoteTimeout = DefaultRemoteTimeout
	}
	if c.now == nil {
		c.now = func() time.Time { return time.Now().UTC() }
	}
	return c
}

// Load returns the best entry available for date without waiting on the remote store.
// A day with nothing stored yields the fresh entry; absence is never an error.
func (c *EntryCoordinator) Load(ctx context.Context, ownerID, date string) (models.JournalEntry, string, error) {
	if err := validateKey(ownerID, date); err != nil {
		return models.JournalEntry{}, "", err
	}

	if e, ok := c.cache.Lookup(ownerID, date); ok {
		c.refreshEntry(ownerID, date)
		metrics.RecordEntryRead("load", SourceCache)
		return e, SourceCache, nil
	}

	if e, ok := c.readLocalEntry(ctx, ownerID, date); ok {
		c.refreshEntry(ownerID, date)
		metrics.RecordEntryRead("load", SourceLocal)
		return e, SourceLocal, nil
	}

	c.refreshEntry(ownerID, date)
	metrics.RecordEntryRead("load", SourceFresh)
	return models.FreshEntry(ownerID, date), SourceFresh, nil
}

// Save persists data for date. It returns once the local store holds the entry; remote and
// backup writes continue in the background and their failures are only logged.
func (c *EntryCoordinator) Save(ctx context.Context, ownerID, date string, data models.EntryData) (models.JournalEntry, error) {
	if err := validateKey(ownerID, date); err != nil {
		return models.JournalEntry{}, err
	}
	if err := data.Validate(); err != nil {
		return models.JournalEntry{}, err
	}

	mu := c.ownerLock(ownerID)
	mu.Lock()

	list, _, err := c.localList(ctx, ownerID)
	if err != nil {
		mu.Unlock()
		return models.JournalEntry{}, fmt.Errorf("%w: %w", ErrLocalWrite, err)
	}
	prior, hasPrior := models.FindEntry(list, date)
	if !hasPrior {
		if e, ok := c.readLocalEntry(ctx, ownerID, date); ok {
			prior, hasPrior = e, true
		}
	}

	now := c.now().Truncate(time.Millisecond)
	entry := models.FreshEntry(ownerID, date)
	entry.Apply(data)
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.SavedAt = now
	if hasPrior {
		if !prior.CreatedAt.IsZero() {
			entry.CreatedAt = prior.CreatedAt
		}
		if prior.UpdatedAt.After(now) {
			entry.UpdatedAt = prior.UpdatedAt
		}
	}

	if err := c.writeLocalEntry(ctx, entry); err != nil {
		mu.Unlock()
		return models.JournalEntry{}, err
	}
	list = models.UpsertEntry(list, entry)
	if err := c.writeLocalList(ctx, ownerID, list); err != nil {
		mu.Unlock()
		return models.JournalEntry{}, err
	}
	c.cache.Set(ownerID, list)
	mu.Unlock()

	c.persistRemote(entry)
	c.publisher.Publish(notify.Event{Type: notify.EventEntriesUpdated, OwnerID: ownerID, Date: date, At: now})

	return entry.Clone(), nil
}

// List returns every known entry of the owner, newest day first.
func (c *EntryCoordinator) List(ctx context.Context, ownerID string) ([]models.JournalEntry, string, error) {
	if ownerID == "" {
		return nil, "", models.ErrInvalidOwner
	}

	if entries, ok := c.cache.Get(ownerID); ok {
		c.syncList(ownerID, false)
		metrics.RecordEntryRead("list", SourceCache)
		return entries, SourceCache, nil
	}

	if entries, ok := c.readLocalList(ctx, ownerID); ok {
		models.SortByDateDesc(entries)
		c.cache.Set(ownerID, entries)
		c.syncList(ownerID, false)
		metrics.RecordEntryRead("list", SourceLocal)
		return entries, SourceLocal, nil
	}

	if c.remote == nil {
		metrics.RecordEntryRead("list", SourceNone)
		return []models.JournalEntry{}, SourceNone, nil
	}

	rctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
	recent, err := c.remote.GetRecent(rctx, ownerID, c.recentLimit)
	cancel()
	if err != nil {
		c.log.Warn("remote list failed", zap.String("owner_id", ownerID), zap.String("tier", "remote"), zap.Error(err))
		metrics.RecordEntryRead("list", SourceNone)
		return []models.JournalEntry{}, SourceNone, nil
	}
	models.SortByDateDesc(recent)

	// A save may have landed while the remote call was in flight; merge instead of overwriting.
	mu := c.ownerLock(ownerID)
	mu.Lock()
	entries := recent
	base, ok, lerr := c.localList(ctx, ownerID)
	if lerr != nil {
		c.log.Warn("local read failed, not caching remote list locally", zap.String("owner_id", ownerID), zap.String("tier", "local"), zap.Error(lerr))
	}
	if !ok {
		base, ok = c.cache.Get(ownerID)
	}
	if ok {
		entries, _ = mergeEntries(base, recent)
	}
	if lerr == nil {
		if err := c.writeLocalList(ctx, ownerID, entries); err != nil {
			c.log.Warn("caching remote list locally failed", zap.String("owner_id", ownerID), zap.String("tier", "local"), zap.Error(err))
		}
	}
	c.cache.Set(ownerID, entries)
	mu.Unlock()

	// Exactly a full page back means there may be more; fetch everything in the background.
	if len(recent) == c.recentLimit {
		c.syncList(ownerID, true)
	}
	metrics.RecordEntryRead("list", SourceRemote)
	return models.CloneEntries(entries), SourceRemote, nil
}

// ListMonth returns the owner's entries for one calendar month. Cached and local lists are
// filtered in place; a cold start asks the remote store for that month only.
func (c *EntryCoordinator) ListMonth(ctx context.Context, ownerID string, year, month int) ([]models.JournalEntry, string, error) {
	if ownerID == "" {
		return nil, "", models.ErrInvalidOwner
	}
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return nil, "", models.ErrInvalidDate
	}
	prefix := fmt.Sprintf("%04d-%02d", year, month)

	_, cached := c.cache.Get(ownerID)
	_, local := c.readLocalList(ctx, ownerID)
	if cached || local || c.remote == nil {
		entries, source, err := c.List(ctx, ownerID)
		if err != nil {
			return nil, "", err
		}
		return models.FilterMonth(entries, prefix), source, nil
	}

	rctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
	defer cancel()
	entries, err := c.remote.GetForMonth(rctx, ownerID, year, month)
	if err != nil {
		c.log.Warn("remote month query failed", zap.String("owner_id", ownerID), zap.String("month", prefix), zap.String("tier", "remote"), zap.Error(err))
		return []models.JournalEntry{}, SourceNone, nil
	}
	models.SortByDateDesc(entries)
	metrics.RecordEntryRead("list_month", SourceRemote)
	return entries, SourceRemote, nil
}

// DropCached forgets the owner's cached entries without notifying anyone. It is the hook for
// change events relayed from other instances, which have already been published here.
func (c *EntryCoordinator) DropCached(ownerID string) {
	c.cache.Invalidate(ownerID)
}

// Invalidate drops the owner's cached entries and tells subscribers to re-read.
func (c *EntryCoordinator) Invalidate(ownerID string) {
	c.cache.Invalidate(ownerID)
	c.publisher.Publish(notify.Event{Type: notify.EventCacheInvalidated, OwnerID: ownerID, At: c.now()})
}

// Subscribe delivers change signals for ownerID until the returned func is called.
func (c *EntryCoordinator) Subscribe(ownerID string) (<-chan notify.Event, func()) {
	return c.hub.Subscribe(ownerID)
}

// Wait blocks until every background task started so far has finished.
func (c *EntryCoordinator) Wait() {
	c.tasks.Wait()
}

// Close stops accepting background work and waits for in-flight tasks, up to ctx.
func (c *EntryCoordinator) Close(ctx context.Context) error {
	c.tasksMu.Lock()
	c.closed = true
	c.tasksMu.Unlock()

	done := make(chan struct{})
	go func() {
		c.tasks.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func validateKey(ownerID, date string) error {
	if ownerID == "" {
		return models.ErrInvalidOwner
	}
	return models.ValidateDate(date)
}

func (c *EntryCoordinator) ownerLock(ownerID string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	mu, ok := c.locks[ownerID]
	if !ok {
		mu = &sync.Mutex{}
		c.locks[ownerID] = mu
	}
	return mu
}

// goBackground runs fn detached from the caller. Background work is not cancellable;
// each remote call inside fn carries its own timeout.
func (c *EntryCoordinator) goBackground(fn func(ctx context.Context)) {
	c.tasksMu.Lock()
	if c.closed {
		c.tasksMu.Unlock()
		return
	}
	c.tasks.Add(1)
	c.tasksMu.Unlock()

	go func() {
		defer c.tasks.Done()
		fn(context.Background())
	}()
}

// persistRemote writes entry to the remote store and the backup concurrently.
func (c *EntryCoordinator) persistRemote(entry models.JournalEntry) {
	if c.remote == nil && c.backup == nil {
		return
	}
	entry = entry.Clone()
	c.goBackground(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
		defer cancel()

		var g errgroup.Group
		if c.remote != nil {
			g.Go(func() error {
				err := c.remote.Put(ctx, entry)
				metrics.RecordBackgroundWrite("remote", err)
				if err != nil {
					c.log.Warn("remote write failed", zap.String("owner_id", entry.OwnerID), zap.String("date", entry.Date), zap.String("tier", "remote"), zap.Error(err))
				}
				return err
			})
		}
		if c.backup != nil {
			g.Go(func() error {
				err := c.backup.Put(ctx, entry)
				metrics.RecordBackgroundWrite("backup", err)
				if err != nil {
					c.log.Warn("backup write failed", zap.String("owner_id", entry.OwnerID), zap.String("date", entry.Date), zap.String("tier", "backup"), zap.Error(err))
				}
				return err
			})
		}
		_ = g.Wait()
	})
}

// refreshEntry fetches one entry from the remote store and applies it when it is newer than
// what the faster tiers hold.
func (c *EntryCoordinator) refreshEntry(ownerID, date string) {
	if c.remote == nil {
		return
	}
	c.goBackground(func(ctx context.Context) {
		_, _, _ = c.refreshes.Do("entry:"+models.EntryKey(ownerID, date), func() (any, error) {
			rctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
			remote, err := c.remote.GetByKey(rctx, ownerID, date)
			cancel()
			if err != nil {
				metrics.RecordBackgroundRefresh("load", "error")
				c.log.Warn("background refresh failed", zap.String("owner_id", ownerID), zap.String("date", date), zap.String("tier", "remote"), zap.Error(err))
				return nil, nil
			}
			if remote == nil {
				metrics.RecordBackgroundRefresh("load", "absent")
				return nil, nil
			}
			remote.OwnerID, remote.Date = ownerID, date
			remote.Normalize()

			if c.applyRemoteEntry(ctx, *remote) {
				metrics.RecordBackgroundRefresh("load", "applied")
				c.publisher.Publish(notify.Event{Type: notify.EventEntryRefreshed, OwnerID: ownerID, Date: date, At: c.now()})
			} else {
				metrics.RecordBackgroundRefresh("load", "unchanged")
			}
			return nil, nil
		})
	})
}

func (c *EntryCoordinator) applyRemoteEntry(ctx context.Context, remote models.JournalEntry) bool {
	mu := c.ownerLock(remote.OwnerID)
	mu.Lock()
	defer mu.Unlock()

	current, ok := c.cache.Lookup(remote.OwnerID, remote.Date)
	if !ok {
		current, ok = c.readLocalEntry(ctx, remote.OwnerID, remote.Date)
	}
	if ok && !remote.UpdatedAt.After(current.UpdatedAt) {
		return false
	}

	remote.SavedAt = c.now()
	if err := c.writeLocalEntry(ctx, remote); err != nil {
		c.log.Warn("applying remote entry locally failed", zap.String("owner_id", remote.OwnerID), zap.String("date", remote.Date), zap.String("tier", "local"), zap.Error(err))
	}
	if list, ok := c.readLocalList(ctx, remote.OwnerID); ok {
		list = models.UpsertEntry(list, remote)
		if err := c.writeLocalList(ctx, remote.OwnerID, list); err != nil {
			c.log.Warn("applying remote entry to local list failed", zap.String("owner_id", remote.OwnerID), zap.String("tier", "local"), zap.Error(err))
		}
	}
	c.cache.Upsert(remote.OwnerID, remote)
	return true
}

// syncList reconciles the owner's list with the remote store in the background. With
// fullOnly the recent page is skipped because the caller already has it.
func (c *EntryCoordinator) syncList(ownerID string, fullOnly bool) {
	if c.remote == nil {
		return
	}
	c.goBackground(func(ctx context.Context) {
		key := "list:" + ownerID
		if fullOnly {
			key = "list-all:" + ownerID
		}
		_, _, _ = c.refreshes.Do(key, func() (any, error) {
			remote, err := c.fetchRemoteList(ctx, ownerID, fullOnly)
			if err != nil {
				metrics.RecordBackgroundRefresh("list", "error")
				c.log.Warn("background list sync failed", zap.String("owner_id", ownerID), zap.String("tier", "remote"), zap.Error(err))
				return nil, nil
			}
			if c.applyRemoteList(ctx, ownerID, remote) {
				metrics.RecordBackgroundRefresh("list", "applied")
				c.publisher.Publish(notify.Event{Type: notify.EventEntriesRefreshed, OwnerID: ownerID, At: c.now()})
			} else {
				metrics.RecordBackgroundRefresh("list", "unchanged")
			}
			return nil, nil
		})
	})
}

func (c *EntryCoordinator) fetchRemoteList(ctx context.Context, ownerID string, fullOnly bool) ([]models.JournalEntry, error) {
	if !fullOnly {
		rctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
		recent, err := c.remote.GetRecent(rctx, ownerID, c.recentLimit)
		cancel()
		if err != nil {
			return nil, err
		}
		if len(recent) < c.recentLimit {
			return recent, nil
		}
	}
	rctx, cancel := context.WithTimeout(ctx, c.remoteTimeout)
	defer cancel()
	return c.remote.GetAll(rctx, ownerID)
}

// applyRemoteList merges remote into the local list, newest updated_at winning per date.
// Nothing is written when the merge changes nothing.
func (c *EntryCoordinator) applyRemoteList(ctx context.Context, ownerID string, remote []models.JournalEntry) bool {
	mu := c.ownerLock(ownerID)
	mu.Lock()
	defer mu.Unlock()

	base, ok, err := c.localList(ctx, ownerID)
	if err != nil {
		c.log.Warn("local read failed, skipping list sync", zap.String("owner_id", ownerID), zap.String("tier", "local"), zap.Error(err))
		return false
	}
	if !ok {
		base, _ = c.cache.Get(ownerID)
	}
	merged, changed := mergeEntries(base, remote)
	if len(changed) == 0 {
		return false
	}

	now := c.now()
	for _, e := range changed {
		e.SavedAt = now
		if err := c.writeLocalEntry(ctx, e); err != nil {
			c.log.Warn("applying remote entry locally failed", zap.String("owner_id", ownerID), zap.String("date", e.Date), zap.String("tier", "local"), zap.Error(err))
		}
	}
	if err := c.writeLocalList(ctx, ownerID, merged); err != nil {
		c.log.Warn("applying remote list locally failed", zap.String("owner_id", ownerID), zap.String("tier", "local"), zap.Error(err))
	}
	c.cache.Set(ownerID, merged)
	return true
}

// mergeEntries overlays remote onto base per date and returns the merged list, newest day
// first, plus the remote entries that replaced or extended base.
func mergeEntries(base, remote []models.JournalEntry) ([]models.JournalEntry, []models.JournalEntry) {
	merged := models.CloneEntries(base)
	var changed []models.JournalEntry
	for _, r := range remote {
		if r.Date == "" {
			continue
		}
		r.Normalize()
		if cur, ok := models.FindEntry(merged, r.Date); ok && !r.UpdatedAt.After(cur.UpdatedAt) {
			continue
		}
		merged = models.UpsertEntry(merged, r)
		changed = append(changed, r)
	}
	models.SortByDateDesc(merged)
	return merged, changed
}
