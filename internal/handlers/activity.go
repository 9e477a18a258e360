package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AnshRaj112/diary-backend/internal/middleware"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordActivityRequest is the JSON body for POST /api/activity
type RecordActivityRequest struct {
	Path      string `json:"path"`
	EventType string `json:"event_type,omitempty"`
}

// RecordActivity records a page view (or other activity). User ID is optional (from session).
func (h *Handler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	var body RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	path := body.Path
	if path == "" {
		path = r.URL.Path
	}

	var userID *uuid.UUID
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		userID = &id
	}

	err := h.activity.Record(r.Context(), userID, path, body.EventType)
	if errors.Is(err, services.ErrEventTypeTooLong) {
		writeError(w, http.StatusBadRequest, "event_type must be at most 50 characters")
		return
	}
	if err != nil {
		h.log.Error("activity insert failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to record activity")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// GetInsights returns sign-up and activity aggregates for the last ?days= days (default 30).
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	days := services.DefaultInsightDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	insights, err := h.activity.Insights(r.Context(), days)
	if err != nil {
		h.log.Error("insights query failed", zap.Int("days", days), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch insights")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "insights": insights})
}
