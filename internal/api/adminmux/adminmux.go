// Package adminmux is the low-traffic operational surface navcore serves
// on a separate port from the hot gin API: health, Prometheus metrics, and
// cache statistics. Grounded on the teacher's chi assembly in
// services/construction/cmd/main.go (chi.NewRouter, chi/middleware.Logger
// and Recoverer, r.Route groups).
package adminmux

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wayfynd/navcore/internal/cache"
	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/internal/metrics"
)

// New builds the admin chi.Router.
func New(eng *engine.Engine, met *metrics.Collector, routeCache *cache.RouteCache) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", healthzHandler(eng))
	r.Handle("/metrics", met.Handler())

	r.Route("/debug", func(r chi.Router) {
		r.Get("/cache", cacheStatsHandler(routeCache))
		r.Get("/floors", floorsHandler(eng))
	})

	return r
}

func healthzHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		if !eng.IsInitialized() {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{"initialized": eng.IsInitialized()})
	}
}

func cacheStatsHandler(routeCache *cache.RouteCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"route_cache_entries": routeCache.Len()})
	}
}

func floorsHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		floors := eng.Floors()
		counts := make(map[string]int, len(floors))
		for _, f := range floors {
			counts[f] = eng.FloorNodeCount(f)
		}
		writeJSON(w, http.StatusOK, map[string]any{"floors": counts})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
