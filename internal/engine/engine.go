package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/wayfynd/navcore/internal/cache"
	"github.com/wayfynd/navcore/internal/collision"
	"github.com/wayfynd/navcore/internal/config"
	"github.com/wayfynd/navcore/internal/connections"
	"github.com/wayfynd/navcore/internal/edgebuilder"
	"github.com/wayfynd/navcore/internal/graph"
	"github.com/wayfynd/navcore/internal/logger"
	"github.com/wayfynd/navcore/internal/roomdoor"
	perrors "github.com/wayfynd/navcore/pkg/errors"
	"github.com/wayfynd/navcore/pkg/geo"
)

// Engine is the top-level pathfinding orchestrator. The zero value is not
// usable; construct with New.
type Engine struct {
	cfg *config.Config

	mu          sync.RWMutex
	initialized bool
	graph       *graph.Graph
	collision   *collision.Detector
	rooms       *roomdoor.Model

	vec        *cache.VisibilityEdgeCache
	routeCache *cache.RouteCache

	lastErrMu sync.Mutex
	lastErr   *perrors.RouteError
}

// New returns an uninitialized Engine. store may be nil to disable
// persistent visibility-edge caching (hot tier only).
func New(cfg *config.Config, store cache.Store) (*Engine, error) {
	vec, err := cache.NewVisibilityEdgeCache(store, cfg.Cache.HotTierBytes)
	if err != nil {
		return nil, fmt.Errorf("build visibility edge cache: %w", err)
	}
	return &Engine{
		cfg:        cfg,
		vec:        vec,
		routeCache: cache.NewRouteCache(cfg.Cache.PathCacheSize),
	}, nil
}

// IsInitialized reports whether Initialize has completed successfully.
func (e *Engine) IsInitialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// GetLastRouteError returns the most recent FindRoute failure, if any.
func (e *Engine) GetLastRouteError() *perrors.RouteError {
	e.lastErrMu.Lock()
	defer e.lastErrMu.Unlock()
	return e.lastErr
}

func (e *Engine) setLastErr(err *perrors.RouteError) {
	e.lastErrMu.Lock()
	e.lastErr = err
	e.lastErrMu.Unlock()
}

// Initialize runs the full build pipeline: obstacles -> nodes -> spatial
// indexes -> visibility edges -> connectors -> room/door tagging (§5's
// stated ordering). On cancellation or error, partial state is discarded
// and the engine remains uninitialized.
func (e *Engine) Initialize(ctx context.Context, input InitInput) error {
	g := graph.New()
	det := collision.New()
	rooms := roomdoor.New(roomdoor.Config{
		PublicDoorThreshold: e.cfg.Room.PublicDoorThreshold,
		PublicAreaM2:        e.cfg.Room.PublicAreaM2,
		RoomBufferM:         e.cfg.Room.RoomBufferM,
		OrphanDoorLinkM:     e.cfg.Room.OrphanDoorLinkM,
		PublicBit:           input.NavigationFlags.PublicBit,
		HasPublicBit:        input.NavigationFlags.HasPublicBit,
	})

	// 1. Obstacles + room index, from the same geometry pass.
	for _, feat := range input.Geometry {
		_, nonwalkable := input.NonwalkableSet[feat.ID]
		det.AddGeometry(feat.ID, feat.FloorID, feat.Feature, feat.Kind, nonwalkable)
		if feat.Kind == "room" {
			rooms.AddRoom(feat.ID, feat.FloorID, feat.Feature)
		}
	}

	// 2. Nodes: walkable + connector seeds, then door nodes from
	// connections.
	geometryByID := make(map[string]geo.Feature, len(input.Geometry))
	for _, feat := range input.Geometry {
		geometryByID[feat.ID] = feat.Feature
	}
	connectorByFloorGeom := make(map[string]string) // floorID|geometryID -> nodeID

	for _, seed := range input.WalkableNodes {
		addSeed(g, seed)
	}
	for _, seed := range input.ConnectorNodes {
		addSeed(g, seed)
		for _, gid := range seed.GeometryIDs {
			connectorByFloorGeom[seed.FloorID+"|"+gid] = seed.ID
		}
	}
	for _, seed := range input.EntranceNodes {
		addSeed(g, seed)
	}

	rooms.BuildDoorNodes(g, doorEntrances(input, geometryByID), det)

	if err := checkCtx(ctx); err != nil {
		return err
	}

	// 3. Spatial indexes, one per floor.
	for _, floorID := range g.Floors() {
		g.BuildSpatialIndex(floorID)
	}

	if err := checkCtx(ctx); err != nil {
		return err
	}

	// 4. Visibility edges: cache or EdgeBuilder.
	if err := e.populateVisibilityEdges(ctx, g, det, input); err != nil {
		return err
	}

	// 5. ConnectionHandler: stairs/elevator/escalator cross-floor edges.
	connections.Apply(g, crossFloorEntries(input, connectorByFloorGeom))

	// 6. Room/door tagging.
	rooms.IndexRoomsDoors(g)
	rooms.ComputeMeta(g)
	rooms.TagWalkableNodes(g)
	rooms.ConnectOrphanDoors(g, det)

	e.mu.Lock()
	e.graph = g
	e.collision = det
	e.rooms = rooms
	e.initialized = true
	e.mu.Unlock()
	return nil
}

func checkCtx(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func addSeed(g *graph.Graph, seed NodeSeed) {
	meta := graph.NewMetadata()
	for _, gid := range seed.GeometryIDs {
		meta.GeometryIDs[gid] = struct{}{}
	}
	switch seed.NodeType {
	case graph.NodeStairs:
		meta.IsStairs = true
	case graph.NodeElevator:
		meta.IsElevator = true
		meta.Accessible = true
	default:
		meta.Accessible = true
	}
	g.AddNode(graph.Node{
		ID:       seed.ID,
		Coords:   seed.Coords,
		FloorID:  seed.FloorID,
		Type:     seed.NodeType,
		Metadata: meta,
	})
}

func isZeroFeature(f geo.Feature) bool {
	return f.Point == nil && f.LineString == nil && f.MultiLineString == nil && f.Polygon == nil && f.MultiPolygon == nil
}

func doorEntrances(input InitInput, geometryByID map[string]geo.Feature) []roomdoor.Entrance {
	var out []roomdoor.Entrance
	for _, conn := range input.Connections {
		if conn.Type != "door" {
			continue
		}
		for _, ref := range conn.Entrances {
			feat := ref.Feature
			if isZeroFeature(feat) {
				feat = geometryByID[ref.GeometryID]
			}
			out = append(out, roomdoor.Entrance{
				GeometryID: ref.GeometryID,
				FloorID:    ref.FloorID,
				Feature:    feat,
				Flags:      ref.Flags,
			})
		}
	}
	return out
}

func crossFloorEntries(input InitInput, connectorByFloorGeom map[string]string) []connections.Entry {
	var out []connections.Entry
	for _, conn := range input.Connections {
		var kind connections.Kind
		switch conn.Type {
		case "stairs":
			kind = connections.KindStairs
		case "elevator":
			kind = connections.KindElevator
		case "escalator":
			kind = connections.KindEscalator
		default:
			continue
		}
		entry := connections.Entry{Kind: kind}
		for _, ref := range conn.Entrances {
			nodeID, ok := connectorByFloorGeom[ref.FloorID+"|"+ref.GeometryID]
			if !ok {
				logger.Warn("engine: connection %s references unknown connector geometry %s on floor %s", conn.Type, ref.GeometryID, ref.FloorID)
				continue
			}
			entry.Endpoints = append(entry.Endpoints, connections.Endpoint{NodeID: nodeID, FloorID: ref.FloorID})
		}
		if len(entry.Endpoints) >= 2 {
			out = append(out, entry)
		}
	}
	return out
}

func (e *Engine) populateVisibilityEdges(ctx context.Context, g *graph.Graph, det *collision.Detector, input InitInput) error {
	nodeCount := len(g.Nodes())
	opts := edgebuilder.DefaultOptionsFor(nodeCount)
	if e.cfg.EdgeBuild.MaxDistanceM > 0 {
		opts.MaxDistanceM = e.cfg.EdgeBuild.MaxDistanceM
		opts.MaxNeighbors = e.cfg.EdgeBuild.MaxNeighbors
	}

	key := cache.Key(e.cfg.Cache.SchemaVersion, input.MapID, input.MapTimestampNS, opts.MaxDistanceM, opts.MaxNeighbors)

	if !e.cfg.Cache.RebuildOnStart && !e.cfg.Cache.NoGraphCache {
		if entry, ok := e.vec.Get(ctx, key); ok {
			for _, t := range entry.Edges {
				g.AddEdge(graph.Edge{From: t.From, To: t.To, WeightM: t.WeightM, Type: graph.EdgeWalkable, Accessible: true})
			}
			return nil
		}
	}

	builder := edgebuilder.New(det, opts)
	if err := builder.Build(ctx, g, nil); err != nil {
		return err
	}

	if !e.cfg.Cache.NoGraphCache {
		triples := collectWalkableEdges(g)
		e.vec.Set(ctx, key, cache.Entry{Edges: triples})
	}
	return nil
}

func collectWalkableEdges(g *graph.Graph) []cache.EdgeTriple {
	var out []cache.EdgeTriple
	for _, edge := range g.AllEdges() {
		if edge.Type != graph.EdgeWalkable {
			continue
		}
		out = append(out, cache.EdgeTriple{From: edge.From, To: edge.To, WeightM: edge.WeightM})
	}
	return out
}
