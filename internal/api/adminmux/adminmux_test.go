package adminmux

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfynd/navcore/internal/cache"
	"github.com/wayfynd/navcore/internal/config"
	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/internal/metrics"
)

func TestHealthzReflectsEngineState(t *testing.T) {
	eng, err := engine.New(config.Default(), nil)
	require.NoError(t, err)
	mux := New(eng, metrics.New(), cache.NewRouteCache(10))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDebugCacheReportsEntryCount(t *testing.T) {
	eng, err := engine.New(config.Default(), nil)
	require.NoError(t, err)
	rc := cache.NewRouteCache(10)
	rc.Put("k1", "v1")
	mux := New(eng, metrics.New(), rc)

	req := httptest.NewRequest(http.MethodGet, "/debug/cache", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"route_cache_entries":1`)
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	eng, err := engine.New(config.Default(), nil)
	require.NoError(t, err)
	mux := New(eng, metrics.New(), cache.NewRouteCache(10))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
