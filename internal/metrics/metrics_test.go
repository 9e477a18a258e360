package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/entries/{date}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/entries/{date}", "418"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/entries/2024-03-01", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/entries/{date}", "418")))
	assert.Zero(t, testutil.ToFloat64(httpInFlight))
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(backgroundWrites.WithLabelValues("remote", "error"))
	RecordBackgroundWrite("remote", errors.New("offline"))
	RecordBackgroundWrite("remote", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(backgroundWrites.WithLabelValues("remote", "error")))

	before = testutil.ToFloat64(corruptLocalRecords)
	RecordCorruptLocalRecord()
	assert.Equal(t, before+1, testutil.ToFloat64(corruptLocalRecords))

	RecordEntryRead("load", "cache")
	RecordBackgroundRefresh("list", "applied")
}

func TestHandlerExposesCollectors(t *testing.T) {
	RecordEntryRead("list", "local")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "diary_entries_reads_total"))
}
