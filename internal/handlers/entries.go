package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/diary-backend/internal/middleware"
	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxEntryBody    = 1 << 20
)

// entrySummary is one row of the entries list.
type entrySummary struct {
	models.JournalEntry
	Preview string `json:"preview"`
}

// createEntryRequest is the POST /api/entries body: the entry data plus an optional date.
type createEntryRequest struct {
	Date string `json:"date"`
	models.EntryData
}

// ListEntries serves GET /api/entries?q=&emotion=&month=YYYY-MM&page=&page_size=
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, models.ErrInvalidPage.Error())
		return
	}
	pageSize, err := intParam(q.Get("page_size"), defaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, models.ErrInvalidPage.Error())
		return
	}

	var (
		entries []models.JournalEntry
		source  string
	)
	if month := q.Get("month"); month != "" {
		t, perr := time.Parse("2006-01", month)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
			return
		}
		entries, source, err = h.entries.ListMonth(r.Context(), owner, t.Year(), int(t.Month()))
	} else {
		entries, source, err = h.entries.List(r.Context(), owner)
	}
	if err != nil {
		h.entryError(w, err)
		return
	}

	filtered := models.FilterEntries(entries, q.Get("q"), q.Get("emotion"))
	pageEntries, meta, err := models.Paginate(filtered, page, pageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows := make([]entrySummary, len(pageEntries))
	for i, e := range pageEntries {
		rows[i] = entrySummary{JournalEntry: e, Preview: models.PreviewText(e)}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"source":     source,
		"entries":    rows,
		"pagination": meta,
	})
}

// GetEntry serves GET /api/entries/{date}.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	entry, source, err := h.entries.Load(r.Context(), owner, chi.URLParam(r, "date"))
	if err != nil {
		h.entryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "source": source, "entry": entry})
}

// PutEntry serves PUT /api/entries/{date}.
func (h *Handler) PutEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var data models.EntryData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEntryBody)).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.save(w, r, owner, chi.URLParam(r, "date"), data)
}

// CreateEntry serves POST /api/entries; the date defaults to today (UTC).
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	var req createEntryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEntryBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date := req.Date
	if date == "" {
		date = h.now().UTC().Format(models.DateLayout)
	}
	h.save(w, r, owner, date, req.EntryData)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, owner, date string, data models.EntryData) {
	entry, err := h.entries.Save(r.Context(), owner, date, data)
	if err != nil {
		h.entryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Entry saved", "entry": entry})
}

// RefreshEntries serves POST /api/entries/refresh: the next read goes back to the stores.
func (h *Handler) RefreshEntries(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	h.entries.Invalidate(owner)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Cache cleared"})
}

// entryError maps coordinator errors: bad input is 400, an unconfirmed local write is 503.
func (h *Handler) entryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidDate),
		errors.Is(err, models.ErrInvalidOwner),
		errors.Is(err, models.ErrInvalidEntry),
		errors.Is(err, models.ErrInvalidPage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrLocalWrite):
		h.log.Error("entry save not confirmed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "Entry could not be saved. Please try again.")
	default:
		h.log.Error("entry request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// ownerID is the session user; every entry belongs to whoever is signed in.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return userID.String(), true
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
