package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPIncrementsRequestsAndErrors(t *testing.T) {
	c := New()
	c.ObserveHTTP("/v1/route", "POST", 200, 5*time.Millisecond)
	c.ObserveHTTP("/v1/route", "POST", 500, 5*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.HTTPErrors.WithLabelValues("/v1/route", "5xx")))
}

func TestObserveCacheDistinguishesHitAndMiss(t *testing.T) {
	c := New()
	c.ObserveCache("visibility_edges", true)
	c.ObserveCache("visibility_edges", false)
	c.ObserveCache("visibility_edges", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.CacheHits.WithLabelValues("visibility_edges")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.CacheMisses.WithLabelValues("visibility_edges")))
}

func TestHandlerServesPrometheusFormat(t *testing.T) {
	c := New()
	c.ObserveEdgeBuild(10*time.Millisecond, 42)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "navcore_graph_nodes 42")
}
