package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/diary-backend/internal/middleware"
	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/services"
	"github.com/AnshRaj112/diary-backend/internal/store"
	"github.com/AnshRaj112/diary-backend/pkg/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)

type fakeUsers struct {
	byName  map[string]*models.User
	createE error
}

func (f *fakeUsers) Create(_ context.Context, username, password string) (*models.User, error) {
	if f.createE != nil {
		return nil, f.createE
	}
	if _, ok := f.byName[username]; ok {
		return nil, services.ErrUsernameTaken
	}
	u := &models.User{ID: uuid.New(), Username: username, PasswordHash: password, IsActive: true, CreatedAt: testNow}
	f.byName[username] = u
	return u, nil
}

func (f *fakeUsers) Authenticate(_ context.Context, username, password string) (*models.User, error) {
	u, ok := f.byName[username]
	if !ok || u.PasswordHash != password {
		return nil, services.ErrInvalidCredentials
	}
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, services.ErrUserNotFound
}

func (f *fakeUsers) UpdateUsername(_ context.Context, id uuid.UUID, username string) (*models.User, error) {
	if len(username) < 3 {
		return nil, &utils.ValidationError{Field: "username", Message: "Username must be at least 3 characters"}
	}
	if _, ok := f.byName[username]; ok {
		return nil, services.ErrUsernameTaken
	}
	for name, u := range f.byName {
		if u.ID == id {
			delete(f.byName, name)
			u.Username = username
			f.byName[username] = u
			return u, nil
		}
	}
	return nil, services.ErrUserNotFound
}

type fakeSessions struct {
	created     map[string]uuid.UUID
	invalidated []string
}

func (f *fakeSessions) CreateSession(_ context.Context, userID uuid.UUID) (string, error) {
	token := "tok-" + userID.String()
	f.created[token] = userID
	return token, nil
}

func (f *fakeSessions) InvalidateSession(_ context.Context, token string) error {
	f.invalidated = append(f.invalidated, token)
	return nil
}

type activityCall struct {
	userID    *uuid.UUID
	path      string
	eventType string
}

type fakeActivity struct {
	calls     []activityCall
	err       error
	days      []int
	insights  *services.Insights
	insightsE error
}

func (f *fakeActivity) Insights(_ context.Context, days int) (*services.Insights, error) {
	f.days = append(f.days, days)
	return f.insights, f.insightsE
}

func (f *fakeActivity) Record(_ context.Context, userID *uuid.UUID, path, eventType string) error {
	f.calls = append(f.calls, activityCall{userID, path, eventType})
	return f.err
}

type fakeStickers struct {
	got []byte
	err error
}

func (f *fakeStickers) Upload(_ context.Context, file io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.got = data
	return "https://res.cloudinary.com/demo/image/upload/diary/stickers/x.png", nil
}

// readOnlyLocal accepts reads and rejects every write.
type readOnlyLocal struct{}

func (readOnlyLocal) GetItem(context.Context, string) (string, bool, error) { return "", false, nil }
func (readOnlyLocal) SetItem(context.Context, string, string) error        { return errors.New("disk full") }
func (readOnlyLocal) RemoveItem(context.Context, string) error             { return nil }

type testEnv struct {
	router      *chi.Mux
	handler     *Handler
	coordinator *services.EntryCoordinator
	users       *fakeUsers
	sessions    *fakeSessions
	activity    *fakeActivity
	stickers    *fakeStickers
	userID      uuid.UUID
}

func newTestEnv(t *testing.T, local store.LocalStore, withStickers bool) *testEnv {
	t.Helper()
	coordinator := services.NewEntryCoordinator(services.CoordinatorOptions{
		Local:  local,
		Logger: zaptest.NewLogger(t),
		Now:    func() time.Time { return testNow },
	})
	t.Cleanup(coordinator.Wait)

	env := &testEnv{
		coordinator: coordinator,
		users:       &fakeUsers{byName: map[string]*models.User{}},
		sessions:    &fakeSessions{created: map[string]uuid.UUID{}},
		activity:    &fakeActivity{},
		stickers:    &fakeStickers{},
		userID:      uuid.New(),
	}
	deps := Deps{
		Entries:  coordinator,
		Users:    env.users,
		Sessions: env.sessions,
		Activity: env.activity,
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return testNow },
	}
	if withStickers {
		deps.Stickers = env.stickers
	}
	env.handler = New(deps)

	h := env.handler
	r := chi.NewRouter()
	r.Get("/api/prompts/gratitude", GratitudePrompts)
	r.Get("/api/prompts/emotions", EmotionList)
	r.Get("/api/prompts/emotions/{emotion}", EmotionPrompts)
	r.Get("/api/prompts/quote/{emotion}", EmotionQuote)
	r.Post("/api/auth/signup", h.Signup)
	r.Post("/api/auth/signin", h.Signin)
	r.Post("/api/activity", h.RecordActivity)
	r.Group(func(r chi.Router) {
		r.Use(env.authenticate)
		r.Post("/api/auth/signout", h.Signout)
		r.Get("/api/auth/me", h.Me)
		r.Put("/api/auth/me", h.UpdateMe)
		r.Get("/api/activity/insights", h.GetInsights)
		r.Get("/api/entries", h.ListEntries)
		r.Post("/api/entries", h.CreateEntry)
		r.Post("/api/entries/refresh", h.RefreshEntries)
		r.Get("/api/entries/{date}", h.GetEntry)
		r.Put("/api/entries/{date}", h.PutEntry)
		r.Post("/api/stickers/upload", h.UploadSticker)
		r.Get("/ws/entries", h.EntriesWebSocket)
	})
	env.router = r
	return env
}

// authenticate treats "Bearer user" as the env's user and anything else as anonymous.
func (e *testEnv) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if middleware.SessionToken(r) == "user" {
			r = r.WithContext(middleware.WithUserID(r.Context(), e.userID))
		}
		next.ServeHTTP(w, r)
	})
}

func (e *testEnv) do(t *testing.T, method, path, body string, authed bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if authed {
		req.Header.Set("Authorization", "Bearer user")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestPutThenGetEntry(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, body := env.do(t, http.MethodPut, "/api/entries/2024-03-01",
		`{"gratitude_answers":["sun","tea"],"emotion":"joy","emotion_answers":["a walk"]}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	entry := body["entry"].(map[string]any)
	assert.Equal(t, "2024-03-01", entry["date"])
	assert.Equal(t, "joy", entry["emotion"])
	assert.Equal(t, env.userID.String(), entry["owner_id"])

	rec, body = env.do(t, http.MethodGet, "/api/entries/2024-03-01", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.SourceCache, body["source"])
	entry = body["entry"].(map[string]any)
	assert.Equal(t, []any{"sun", "tea"}, entry["gratitude_answers"])
	assert.Equal(t, "#ffffff", entry["visual_settings"].(map[string]any)["background_color"])

	rec, _ = env.do(t, http.MethodPut, "/api/entries/2024-03-02", `{"emotion":"Joy"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEntryFresh(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, body := env.do(t, http.MethodGet, "/api/entries/2024-03-02", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.SourceFresh, body["source"])
	entry := body["entry"].(map[string]any)
	assert.Len(t, entry["gratitude_answers"], models.GratitudeSlots)
}

func TestCreateEntryDefaultsToToday(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, body := env.do(t, http.MethodPost, "/api/entries", `{"custom_text":"hello"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2024-05-06", body["entry"].(map[string]any)["date"])

	rec, body = env.do(t, http.MethodPost, "/api/entries", `{"date":"2024-01-31","custom_text":"back then"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-01-31", body["entry"].(map[string]any)["date"])
}

func TestEntryValidationErrors(t *testing.T) {
	env := newTestEnv(t, nil, false)

	cases := []struct {
		name, method, path, body string
	}{
		{"impossible date", http.MethodPut, "/api/entries/2024-02-30", `{}`},
		{"unknown emotion", http.MethodPut, "/api/entries/2024-02-01", `{"emotion":"smug"}`},
		{"too many answers", http.MethodPut, "/api/entries/2024-02-01", `{"gratitude_answers":["1","2","3","4","5","6"]}`},
		{"bad json", http.MethodPut, "/api/entries/2024-02-01", `{`},
		{"bad load date", http.MethodGet, "/api/entries/yesterday", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := env.do(t, tc.method, tc.path, tc.body, true)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestEntriesRequireSession(t *testing.T) {
	env := newTestEnv(t, nil, false)

	for _, path := range []string{"/api/entries", "/api/entries/2024-03-01"} {
		rec, _ := env.do(t, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSaveLocalWriteFailure(t *testing.T) {
	env := newTestEnv(t, readOnlyLocal{}, false)

	rec, body := env.do(t, http.MethodPut, "/api/entries/2024-03-01", `{"custom_text":"x"}`, true)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestListEntriesFiltersAndPaginates(t *testing.T) {
	env := newTestEnv(t, nil, false)
	owner := env.userID.String()
	ctx := context.Background()

	_, err := env.coordinator.Save(ctx, owner, "2024-03-01", models.EntryData{Emotion: "joy", CustomText: "picnic in the park"})
	require.NoError(t, err)
	_, err = env.coordinator.Save(ctx, owner, "2024-03-15", models.EntryData{Emotion: "stress", CustomText: "deadline"})
	require.NoError(t, err)
	_, err = env.coordinator.Save(ctx, owner, "2024-04-02", models.EntryData{Emotion: "joy", CustomText: "new job"})
	require.NoError(t, err)

	rec, body := env.do(t, http.MethodGet, "/api/entries", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := body["entries"].([]any)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-04-02", entries[0].(map[string]any)["date"])
	assert.Equal(t, "new job", entries[0].(map[string]any)["preview"])

	_, body = env.do(t, http.MethodGet, "/api/entries?emotion=joy", "", true)
	assert.Len(t, body["entries"], 2)

	_, body = env.do(t, http.MethodGet, "/api/entries?q=PICNIC", "", true)
	require.Len(t, body["entries"], 1)
	assert.Equal(t, "2024-03-01", body["entries"].([]any)[0].(map[string]any)["date"])

	_, body = env.do(t, http.MethodGet, "/api/entries?month=2024-03", "", true)
	assert.Len(t, body["entries"], 2)

	_, body = env.do(t, http.MethodGet, "/api/entries?page=2&page_size=2", "", true)
	assert.Len(t, body["entries"], 1)
	meta := body["pagination"].(map[string]any)
	assert.Equal(t, float64(2), meta["total_pages"])
	assert.Equal(t, float64(3), meta["total_items"])
	assert.Equal(t, true, meta["has_previous"])
	assert.Equal(t, false, meta["has_next"])

	for _, q := range []string{"page=0", "page_size=101", "page=abc", "month=2024-13", "month=march"} {
		rec, _ := env.do(t, http.MethodGet, "/api/entries?"+q, "", true)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestRefreshEntries(t *testing.T) {
	env := newTestEnv(t, nil, false)
	events, unsubscribe := env.coordinator.Subscribe(env.userID.String())
	defer unsubscribe()

	rec, _ := env.do(t, http.MethodPost, "/api/entries/refresh", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case ev := <-events:
		assert.Equal(t, "cache_invalidated", ev.Type)
	case <-time.After(time.Second):
		t.Fatal("no invalidation event")
	}
}

func TestPrompts(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, body := env.do(t, http.MethodGet, "/api/prompts/gratitude", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["questions"], models.GratitudeSlots)

	_, body = env.do(t, http.MethodGet, "/api/prompts/emotions", "", false)
	assert.Len(t, body["emotions"], len(models.Emotions))

	rec, body = env.do(t, http.MethodGet, "/api/prompts/emotions/anxiety", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["questions"])

	rec, body = env.do(t, http.MethodGet, "/api/prompts/quote/joy", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["quote"].(map[string]any)["quote"])

	rec, _ = env.do(t, http.MethodGet, "/api/prompts/emotions/smug", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = env.do(t, http.MethodGet, "/api/prompts/quote/smug", "", false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupSigninFlow(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, body := env.do(t, http.MethodPost, "/api/auth/signup", `{"username":"quiet_owl","password":"correct horse"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "quiet_owl", body["user"].(map[string]any)["username"])
	assert.NotContains(t, rec.Body.String(), "correct horse")

	rec, _ = env.do(t, http.MethodPost, "/api/auth/signup", `{"username":"quiet_owl","password":"other pass"}`, false)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = env.do(t, http.MethodPost, "/api/auth/signin", `{"username":"quiet_owl","password":"correct horse"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, body["token"])

	rec, _ = env.do(t, http.MethodPost, "/api/auth/signin", `{"username":"quiet_owl","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.users.createE = &utils.ValidationError{Field: "username", Message: "Username must be at least 3 characters"}

	rec, body := env.do(t, http.MethodPost, "/api/auth/signup", `{"username":"ab","password":"correct horse"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username must be at least 3 characters", body["message"])
}

func TestMeAndSignout(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, _ := env.do(t, http.MethodGet, "/api/auth/me", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	env.users.byName["me"] = &models.User{ID: env.userID, Username: "me", IsActive: true}
	rec, body := env.do(t, http.MethodGet, "/api/auth/me", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "me", body["user"].(map[string]any)["username"])

	rec, _ = env.do(t, http.MethodPost, "/api/auth/signout", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"user"}, env.sessions.invalidated)
}

func TestRecordActivity(t *testing.T) {
	env := newTestEnv(t, nil, false)

	rec, _ := env.do(t, http.MethodPost, "/api/activity", `{"path":"/journal"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.activity.calls, 1)
	assert.Nil(t, env.activity.calls[0].userID)
	assert.Equal(t, "/journal", env.activity.calls[0].path)

	rec, _ = env.do(t, http.MethodPost, "/api/activity", `nope`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.activity.err = errors.New("db down")
	rec, _ = env.do(t, http.MethodPost, "/api/activity", `{}`, false)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "/api/activity", env.activity.calls[1].path)
}

func TestRecordActivityRejectsLongEventType(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.activity.err = services.ErrEventTypeTooLong

	rec, body := env.do(t, http.MethodPost, "/api/activity", `{"path":"/journal","event_type":"x"}`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestGetInsights(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.activity.insights = &services.Insights{
		From:           "2024-04-07",
		To:             "2024-05-06",
		RecurringUsers: 2,
		TopPaths:       []services.PathCount{{Path: "/journal", Count: 9}},
	}

	rec, body := env.do(t, http.MethodGet, "/api/activity/insights", "", true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	insights := body["insights"].(map[string]any)
	assert.Equal(t, "2024-04-07", insights["from"])
	assert.Equal(t, float64(2), insights["recurring_users_count"])
	assert.Equal(t, "/journal", insights["top_pages"].([]any)[0].(map[string]any)["path"])

	rec, _ = env.do(t, http.MethodGet, "/api/activity/insights?days=7", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{services.DefaultInsightDays, 7}, env.activity.days)

	rec, _ = env.do(t, http.MethodGet, "/api/activity/insights?days=soon", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.activity.insightsE = errors.New("db down")
	rec, _ = env.do(t, http.MethodGet, "/api/activity/insights", "", true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUpdateMe(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.users.byName["me"] = &models.User{ID: env.userID, Username: "me", IsActive: true}
	env.users.byName["taken"] = &models.User{ID: uuid.New(), Username: "taken", IsActive: true}

	rec, body := env.do(t, http.MethodPut, "/api/auth/me", `{"username":"night_owl"}`, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "night_owl", body["user"].(map[string]any)["username"])

	rec, _ = env.do(t, http.MethodPut, "/api/auth/me", `{"username":"taken"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = env.do(t, http.MethodPut, "/api/auth/me", `{"username":"ab"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = env.do(t, http.MethodPut, "/api/auth/me", `{"username":"night_owl"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func multipartBody(t *testing.T, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "sticker.png")
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) upload(t *testing.T, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, content)
	req := httptest.NewRequest(http.MethodPost, "/api/stickers/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer user")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestUploadSticker(t *testing.T) {
	env := newTestEnv(t, nil, true)

	rec := env.upload(t, pngHeader)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "diary/stickers")
	assert.Equal(t, pngHeader, env.stickers.got)

	rec = env.upload(t, []byte("just some text, not an image"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxStickerSize)...)
	rec = env.upload(t, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestUploadStickerDisabled(t *testing.T) {
	env := newTestEnv(t, nil, false)
	rec := env.upload(t, pngHeader)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestEntriesWebSocket(t *testing.T) {
	env := newTestEnv(t, nil, false)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	header := http.Header{"Authorization": []string{"Bearer user"}}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/entries", header)
	require.NoError(t, err)
	defer conn.Close()

	_, err = env.coordinator.Save(context.Background(), env.userID.String(), "2024-03-01", models.EntryData{CustomText: "ping"})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev map[string]any
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "entries_updated", ev["type"])
	assert.Equal(t, "2024-03-01", ev["date"])
	assert.Equal(t, env.userID.String(), ev["owner_id"])
}

func TestEntriesWebSocketRequiresSession(t *testing.T) {
	env := newTestEnv(t, nil, false)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/entries", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
