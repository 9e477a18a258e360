package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AnshRaj112/diary-backend/internal/handlers"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSessions map[string]uuid.UUID

func (s staticSessions) ValidateSession(_ context.Context, token string) (uuid.UUID, bool, error) {
	id, ok := s[token]
	return id, ok, nil
}

func newRouter(t *testing.T, production bool) (*chi.Mux, uuid.UUID) {
	t.Helper()
	coordinator := services.NewEntryCoordinator(services.CoordinatorOptions{})
	t.Cleanup(coordinator.Wait)

	userID := uuid.New()
	r := chi.NewRouter()
	SetupRoutes(r, handlers.New(handlers.Deps{Entries: coordinator}), Options{
		Sessions:           staticSessions{"good": userID},
		AllowedOrigins:     []string{"http://localhost:3000"},
		AllowedHost:        "example.com",
		ProductionSecurity: production,
	})
	return r, userID
}

func serve(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newRouter(t, false)

	rec := serve(r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "diary_http_requests_total")
}

func TestEntryRoutesRequireSession(t *testing.T) {
	r, _ := newRouter(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/entries"},
		{http.MethodPost, "/api/entries"},
		{http.MethodPost, "/api/entries/refresh"},
		{http.MethodGet, "/api/entries/2024-03-01"},
		{http.MethodPut, "/api/entries/2024-03-01"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/auth/me"},
		{http.MethodGet, "/api/activity/insights"},
		{http.MethodPost, "/api/auth/signout"},
		{http.MethodPost, "/api/stickers/upload"},
		{http.MethodGet, "/ws/entries"},
	} {
		rec := serve(r, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method+" "+tc.path)
	}
}

func TestEntryRoundTripThroughRouter(t *testing.T) {
	r, userID := newRouter(t, false)

	rec := serve(r, http.MethodPut, "/api/entries/2024-03-01", "good", `{"custom_text":"first day"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), userID.String()+"_2024-03-01")

	rec = serve(r, http.MethodGet, "/api/entries", "good", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"preview":"first day"`)
}

func TestPromptRoutesArePublic(t *testing.T) {
	r, _ := newRouter(t, false)

	rec := serve(r, http.MethodGet, "/api/prompts/emotions/doubt", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = serve(r, http.MethodGet, "/api/prompts/quote/feeling%20overwhelmed", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProductionHostCheck(t *testing.T) {
	r, _ := newRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "http://evil.test/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "http://example.com/health", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}
