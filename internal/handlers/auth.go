package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/diary-backend/internal/middleware"
	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/AnshRaj112/diary-backend/pkg/utils"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates an account and signs it in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, req.Password)
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	case errors.Is(err, services.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username is already taken")
		return
	case err != nil:
		h.log.Error("signup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	h.startSession(w, r, user, http.StatusCreated, "Account created")
}

// Signin exchanges a username and password for a session token.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		h.log.Error("signin failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	h.startSession(w, r, user, http.StatusOK, "Signed in")
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user *models.User, status int, message string) {
	token, err := h.sessions.CreateSession(r.Context(), user.ID)
	if err != nil {
		h.log.Error("session create failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "Session service unavailable")
		return
	}
	writeJSON(w, status, map[string]any{"success": true, "message": message, "user": user, "token": token})
}

// Signout drops the caller's session.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.InvalidateSession(r.Context(), middleware.SessionToken(r)); err != nil {
		h.log.Error("signout failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "Session service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Signed out"})
}

// Me returns the signed-in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.users.GetByID(r.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

type updateProfileRequest struct {
	Username string `json:"username"`
}

// UpdateMe renames the signed-in user.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateUsername(r.Context(), userID, req.Username)
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	case errors.Is(err, services.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username is already taken")
		return
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		h.log.Error("profile update failed", zap.String("user_id", userID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}
