package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raceprep/raceprep/internal/store"
	"github.com/raceprep/raceprep/internal/testhelpers"
	"github.com/raceprep/raceprep/internal/webhook"
)

func newTestApp(t *testing.T) *application {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	st, err := store.New(t.Context(), ":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, st.Close()) })

	return &application{
		logger:         logger,
		store:          st,
		webhookHandler: webhook.New(logger, st, nil, nil, "", false, nil),
	}
}

func TestRoutes_Healthy(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/healthy", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRoutes_WebhookRefusesUnsignedWithoutSecret(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhook", strings.NewReader(`{}`))
	req.RemoteAddr = "203.0.113.9:9999"
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes_UnknownPath(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
