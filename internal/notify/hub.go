// Package notify is the owner-scoped "re-read now" signal between the entry coordinator
// and whatever is rendering an owner's entries.
package notify

import (
	"sync"
	"time"
)

const (
	EventEntriesUpdated   = "entries_updated"
	EventEntryRefreshed   = "entry_refreshed"
	EventEntriesRefreshed = "entries_refreshed"
	EventCacheInvalidated = "cache_invalidated"
)

// subscriberBuffer bounds how far a slow subscriber may fall behind before signals are dropped.
const subscriberBuffer = 16

// Event tells subscribers of OwnerID that the entries they render may be stale.
type Event struct {
	Type    string    `json:"type"`
	OwnerID string    `json:"owner_id"`
	Date    string    `json:"date,omitempty"`
	At      time.Time `json:"at"`
}

// Publisher is implemented by Hub and RedisRelay.
type Publisher interface {
	Publish(event Event)
}

type subscriber struct {
	ch chan Event
}

// Hub fans events out to in-process subscribers of the same owner.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[*subscriber]struct{})}
}

// Subscribe registers interest in ownerID. The returned func unsubscribes and closes the channel;
// it is safe to call more than once.
func (h *Hub) Subscribe(ownerID string) (<-chan Event, func()) {
	s := &subscriber{ch: make(chan Event, subscriberBuffer)}

	h.mu.Lock()
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[*subscriber]struct{})
	}
	h.subs[ownerID][s] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return s.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[ownerID], s)
			if len(h.subs[ownerID]) == 0 {
				delete(h.subs, ownerID)
			}
			close(s.ch)
			h.mu.Unlock()
		})
	}
}

// Publish delivers event to every subscriber of event.OwnerID without blocking.
// A subscriber whose buffer is full misses the event; the next one tells it the same thing.
func (h *Hub) Publish(event Event) {
	if event.OwnerID == "" {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[event.OwnerID] {
		select {
		case s.ch <- event:
		default:
		}
	}
}

// Subscribers reports the number of live subscriptions for ownerID.
func (h *Hub) Subscribers(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[ownerID])
}
