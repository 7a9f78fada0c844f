package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfynd/navcore/internal/api/middleware"
	"github.com/wayfynd/navcore/internal/config"
	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/internal/metrics"
)

func newTestRouter(t *testing.T) (*engine.Engine, http.Handler, *middleware.Authenticator) {
	t.Helper()
	cfg := config.Default()
	eng, err := engine.New(cfg, nil)
	require.NoError(t, err)

	auth := middleware.NewAuthenticator("test-secret", time.Hour)
	limiter := middleware.NewRateLimiter(100, 100)
	met := metrics.New()
	r := NewRouter(eng, met, auth, limiter)
	return eng, r, auth
}

func TestHealthzReportsUninitialized(t *testing.T) {
	_, r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPostRouteRejectsWithoutToken(t *testing.T) {
	_, r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/route", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostRouteReturnsNotInitializedWhenEngineNotReady(t *testing.T) {
	_, r, auth := newTestRouter(t)
	token, err := auth.Mint("key-1", "viewer")
	require.NoError(t, err)

	body := `{"start_lng":0.001,"start_lat":0.001,"start_floor":"floor0","end_lng":0.002,"end_lat":0.002,"end_floor":"floor0"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/route", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
