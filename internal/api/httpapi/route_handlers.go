package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/internal/instructions"
	"github.com/wayfynd/navcore/internal/metrics"
	perrors "github.com/wayfynd/navcore/pkg/errors"
	"github.com/wayfynd/navcore/pkg/geo"
)

// routeRequest is the POST /v1/route request body.
type routeRequest struct {
	StartLng          float64 `json:"start_lng" binding:"required"`
	StartLat          float64 `json:"start_lat" binding:"required"`
	StartFloor        string  `json:"start_floor" binding:"required"`
	EndLng            float64 `json:"end_lng" binding:"required"`
	EndLat            float64 `json:"end_lat" binding:"required"`
	EndFloor          string  `json:"end_floor" binding:"required"`
	AccessibleOnly    bool    `json:"accessible_only"`
	AvoidStairs       bool    `json:"avoid_stairs"`
	HeuristicWeight   float64 `json:"heuristic_weight"`
	Bidirectional     bool    `json:"bidirectional"`
	AllowLockedDoors  bool    `json:"allow_locked_doors"`
	RoomTraversalMode string  `json:"room_traversal_mode"`
}

// routeResponse is the POST /v1/route success body.
type routeResponse struct {
	QueryID   string                `json:"query_id"`
	Path      []geo.Coord           `json:"path"`
	Floors    []string              `json:"floors"`
	DistanceM float64               `json:"distance_m"`
	Warnings  []string              `json:"warnings,omitempty"`
	Steps     []instructions.Step   `json:"steps"`
}

// postRoute handles POST /v1/route.
//
//	@Summary	Find a route between two indoor points
//	@Accept		json
//	@Produce	json
//	@Param		body	body		routeRequest	true	"query"
//	@Success	200		{object}	routeResponse
//	@Failure	400		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/route [post]
func (h *Handler) postRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := engine.QueryOptions{
		AccessibleOnly:    req.AccessibleOnly,
		AvoidStairs:       req.AvoidStairs,
		HeuristicWeight:   req.HeuristicWeight,
		Bidirectional:     req.Bidirectional,
		AllowLockedDoors:  req.AllowLockedDoors,
		RoomTraversalMode: req.RoomTraversalMode,
	}
	if opts.HeuristicWeight == 0 {
		opts.HeuristicWeight = 1
	}

	start := time.Now()
	route, err := h.engine.FindRoute(
		c.Request.Context(),
		geo.Coord{Lng: req.StartLng, Lat: req.StartLat}, req.StartFloor,
		geo.Coord{Lng: req.EndLng, Lat: req.EndLat}, req.EndFloor,
		opts,
	)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if h.met != nil {
		h.met.ObserveQuery(outcome, time.Since(start))
	}
	if err != nil {
		writeRouteError(c, err, h.met)
		return
	}

	steps := instructions.Generate(route.Path, route.Floors)
	c.JSON(http.StatusOK, routeResponse{
		QueryID:   route.QueryID,
		Path:      route.Path,
		Floors:    route.Floors,
		DistanceM: route.DistanceM,
		Warnings:  route.Warnings,
		Steps:     steps,
	})
}

func writeRouteError(c *gin.Context, err error, met *metrics.Collector) {
	var rerr *perrors.RouteError
	if !errors.As(err, &rerr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if met != nil {
		met.ObserveRouteError(string(rerr.Code))
	}

	status := http.StatusUnprocessableEntity
	if rerr.Code == perrors.CodeNotInitialized {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": rerr.Error(), "code": rerr.Code})
}

// floorResponse is the GET /v1/floors/:id debug response: the node count,
// useful for the navcore-viz visualizer and for smoke-testing a deployment.
type floorResponse struct {
	FloorID   string `json:"floor_id"`
	NodeCount int    `json:"node_count"`
}

// getFloor handles GET /v1/floors/:id.
//
//	@Summary	Debug summary of one floor's graph
//	@Produce	json
//	@Param		id	path		string	true	"floor id"
//	@Success	200	{object}	floorResponse
//	@Security	BearerAuth
//	@Router		/floors/{id} [get]
func (h *Handler) getFloor(c *gin.Context) {
	floorID := c.Param("id")
	if !h.engine.IsInitialized() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "engine not initialized"})
		return
	}
	c.JSON(http.StatusOK, floorResponse{
		FloorID:   floorID,
		NodeCount: h.engine.FloorNodeCount(floorID),
	})
}
