package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/notify"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// EntryService is the entry coordinator as the HTTP layer sees it.
type EntryService interface {
	Load(ctx context.Context, ownerID, date string) (models.JournalEntry, string, error)
	Save(ctx context.Context, ownerID, date string, data models.EntryData) (models.JournalEntry, error)
	List(ctx context.Context, ownerID string) ([]models.JournalEntry, string, error)
	ListMonth(ctx context.Context, ownerID string, year, month int) ([]models.JournalEntry, string, error)
	Invalidate(ownerID string)
	Subscribe(ownerID string) (<-chan notify.Event, func())
}

type UserStore interface {
	Create(ctx context.Context, username, password string) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) (*models.User, error)
}

type SessionManager interface {
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	InvalidateSession(ctx context.Context, token string) error
}

type ActivityStore interface {
	Record(ctx context.Context, userID *uuid.UUID, path, eventType string) error
	Insights(ctx context.Context, days int) (*services.Insights, error)
}

type StickerStore interface {
	Upload(ctx context.Context, file io.Reader) (string, error)
}

// Deps are the collaborators a Handler serves requests with. Stickers may be nil when uploads
// are not configured.
type Deps struct {
	Entries        EntryService
	Users          UserStore
	Sessions       SessionManager
	Activity       ActivityStore
	Stickers       StickerStore
	Logger         *zap.Logger
	AllowedOrigins []string
	Now            func() time.Time
}

type Handler struct {
	entries  EntryService
	users    UserStore
	sessions SessionManager
	activity ActivityStore
	stickers StickerStore
	log      *zap.Logger
	now      func() time.Time
	upgrader websocket.Upgrader
}

func New(d Deps) *Handler {
	h := &Handler{
		entries:  d.Entries,
		users:    d.Users,
		sessions: d.Sessions,
		activity: d.Activity,
		stickers: d.Stickers,
		log:      d.Logger,
		now:      d.Now,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.now == nil {
		h.now = func() time.Time { return time.Now().UTC() }
	}
	origins := d.AllowedOrigins
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, o := range origins {
				if strings.EqualFold(strings.TrimSpace(o), origin) {
					return true
				}
			}
			return false
		},
	}
	return h
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}
