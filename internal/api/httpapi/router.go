// Package httpapi is navcore's hot-path gin router: route queries and
// floor-debug reads, fronted by JWT auth and per-key rate limiting. It
// follows the teacher's arx-backend/main.go assembly (gin.Default, grouped
// routes, a handler struct wrapping the domain service) and its
// internal/api/swagger.go swaggo wiring.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/wayfynd/navcore/internal/api/middleware"
	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/internal/logger"
	"github.com/wayfynd/navcore/internal/metrics"
)

// @title navcore routing API
// @version 1.0
// @description Indoor multi-floor pathfinding over a visibility graph.
// @license.name MIT
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// Handler wires the engine into gin route handlers.
type Handler struct {
	engine *engine.Engine
	met    *metrics.Collector
}

// NewRouter builds the gin.Engine serving navcore's public API: auth and
// rate-limit middleware wrap every /v1 route; /healthz and /swagger stay
// unauthenticated.
func NewRouter(eng *engine.Engine, met *metrics.Collector, auth *middleware.Authenticator, limiter *middleware.RateLimiter) *gin.Engine {
	h := &Handler{engine: eng, met: met}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.logAndMeasure())

	r.GET("/healthz", h.healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	v1.Use(auth.RequireAuth(), limiter.Limit())
	{
		v1.POST("/route", h.postRoute)
		v1.GET("/floors/:id", h.getFloor)
	}

	return r
}

func (h *Handler) logAndMeasure() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if h.met != nil {
			h.met.ObserveHTTP(c.FullPath(), c.Request.Method, c.Writer.Status(), time.Since(start))
		}
		logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// healthz reports whether the engine has completed Initialize.
//
//	@Summary	Liveness and readiness probe
//	@Success	200	{object}	map[string]any
//	@Router		/healthz [get]
func (h *Handler) healthz(c *gin.Context) {
	status := http.StatusOK
	if !h.engine.IsInitialized() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"initialized": h.engine.IsInitialized()})
}
