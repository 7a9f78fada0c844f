// Package metrics exposes navcore's Prometheus collectors, registered
// against a private registry and served over adminmux. The surface mirrors
// the teacher's metrics.Collector (HTTP request/duration/error counters, db
// query counters, cache hit/miss counters) built on the real
// prometheus/client_golang library instead of the teacher's hand-rolled
// text-format emitter.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric navcore records, all registered against a
// private prometheus.Registry so importing this package never pollutes the
// global default registry.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPErrors   *prometheus.CounterVec

	QueryLatency  *prometheus.HistogramVec
	RouteErrors   *prometheus.CounterVec
	FallbackTier  *prometheus.CounterVec

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	EdgeBuildDuration prometheus.Histogram
	EdgeBuildNodes    prometheus.Gauge

	DBQueries  *prometheus.CounterVec
	DBErrors   *prometheus.CounterVec
	DBDuration *prometheus.HistogramVec
}

// New builds and registers every navcore metric.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_http_requests_total",
			Help: "Total HTTP requests handled, by route and status class.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "navcore_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		HTTPErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_http_errors_total",
			Help: "HTTP requests that ended in a 4xx/5xx response, by route.",
		}, []string{"route", "status"}),
		QueryLatency: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "navcore_find_route_duration_seconds",
			Help:    "FindRoute query latency in seconds, by outcome.",
			Buckets: []float64{.001, .002, .005, .01, .02, .05, .1, .2, .5, 1, 2},
		}, []string{"outcome"}),
		RouteErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_route_errors_total",
			Help: "FindRoute failures, by error code.",
		}, []string{"code"}),
		FallbackTier: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_connector_fallback_tier_total",
			Help: "Which of the five endpoint-connector fallback tiers resolved a query endpoint.",
		}, []string{"tier"}),
		CacheHits: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_cache_hits_total",
			Help: "Cache hits, by cache name.",
		}, []string{"cache"}),
		CacheMisses: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_cache_misses_total",
			Help: "Cache misses, by cache name.",
		}, []string{"cache"}),
		EdgeBuildDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "navcore_edge_build_duration_seconds",
			Help:    "Wall-clock time of EdgeBuilder.Build calls, in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		EdgeBuildNodes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "navcore_graph_nodes",
			Help: "Node count of the currently initialized graph.",
		}),
		DBQueries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_db_queries_total",
			Help: "Backing-store queries issued by the visibility edge cache, by store and op.",
		}, []string{"store", "op"}),
		DBErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "navcore_db_errors_total",
			Help: "Backing-store query errors, by store and op.",
		}, []string{"store", "op"}),
		DBDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "navcore_db_query_duration_seconds",
			Help:    "Backing-store query latency in seconds, by store and op.",
			Buckets: prometheus.DefBuckets,
		}, []string{"store", "op"}),
	}
	return c
}

// Handler returns the promhttp handler serving this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one completed HTTP request.
func (c *Collector) ObserveHTTP(route, method string, status int, d time.Duration) {
	statusClass := statusClass(status)
	c.HTTPRequests.WithLabelValues(route, method, statusClass).Inc()
	c.HTTPDuration.WithLabelValues(route, method).Observe(d.Seconds())
	if status >= 400 {
		c.HTTPErrors.WithLabelValues(route, statusClass).Inc()
	}
}

// ObserveQuery records one FindRoute call's outcome and latency.
func (c *Collector) ObserveQuery(outcome string, d time.Duration) {
	c.QueryLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveRouteError increments the counter for a RouteError code.
func (c *Collector) ObserveRouteError(code string) {
	c.RouteErrors.WithLabelValues(code).Inc()
}

// ObserveFallbackTier records which connector fallback tier resolved an
// endpoint ("strict", "relaxed", "in-room-door", "widened", "nearest").
func (c *Collector) ObserveFallbackTier(tier string) {
	c.FallbackTier.WithLabelValues(tier).Inc()
}

// ObserveCache records a cache hit or miss for the named cache.
func (c *Collector) ObserveCache(name string, hit bool) {
	if hit {
		c.CacheHits.WithLabelValues(name).Inc()
		return
	}
	c.CacheMisses.WithLabelValues(name).Inc()
}

// ObserveEdgeBuild records the duration and resulting node count of an
// EdgeBuilder.Build call.
func (c *Collector) ObserveEdgeBuild(d time.Duration, nodeCount int) {
	c.EdgeBuildDuration.Observe(d.Seconds())
	c.EdgeBuildNodes.Set(float64(nodeCount))
}

// ObserveDB records one backing-store round trip.
func (c *Collector) ObserveDB(store, op string, d time.Duration, err error) {
	c.DBQueries.WithLabelValues(store, op).Inc()
	c.DBDuration.WithLabelValues(store, op).Observe(d.Seconds())
	if err != nil {
		c.DBErrors.WithLabelValues(store, op).Inc()
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
