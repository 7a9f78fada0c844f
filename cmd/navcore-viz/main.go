// Command navcore-viz is a terminal debug visualizer: it loads a dataset the
// same way "navcore serve" does, rasterizes one floor's obstacles and graph
// nodes onto an ASCII grid, and optionally overlays the route found between
// two coordinates. Grounded on the teacher's cmd/arx/tui entry points
// (config + service setup, then tea.NewProgram(..., tea.WithAltScreen())),
// simplified to a single floorModel instead of a multi-screen dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wayfynd/navcore/internal/cache"
	"github.com/wayfynd/navcore/internal/config"
	"github.com/wayfynd/navcore/internal/datasetio"
	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/pkg/geo"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config.yaml")
		datasetPath = flag.String("dataset", "", "path to dataset.json")
		floorID     = flag.String("floor", "", "floor id to render")
		startLng    = flag.Float64("start-lng", 0, "route start longitude")
		startLat    = flag.Float64("start-lat", 0, "route start latitude")
		endLng      = flag.Float64("end-lng", 0, "route end longitude")
		endLat      = flag.Float64("end-lat", 0, "route end latitude")
		showRoute   = flag.Bool("route", false, "compute and overlay a route between start and end")
	)
	flag.Parse()

	if *datasetPath == "" || *floorID == "" {
		fmt.Fprintln(os.Stderr, "usage: navcore-viz -dataset dataset.json -floor <floor-id> [-route -start-lng .. -start-lat .. -end-lng .. -end-lat ..]")
		os.Exit(2)
	}

	ctx := context.Background()
	eng, err := loadVizEngine(ctx, *configPath, *datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "navcore-viz: %v\n", err)
		os.Exit(1)
	}

	var route []geo.Coord
	if *showRoute {
		r, err := eng.FindRoute(ctx,
			geo.Coord{Lng: *startLng, Lat: *startLat}, *floorID,
			geo.Coord{Lng: *endLng, Lat: *endLat}, *floorID,
			engine.QueryOptions{HeuristicWeight: 1, RoomTraversalMode: "public"},
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "navcore-viz: route: %v\n", err)
		} else {
			route = r.Path
		}
	}

	p := tea.NewProgram(newFloorModel(eng, *floorID, route), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "navcore-viz: %v\n", err)
		os.Exit(1)
	}
}

func loadVizEngine(ctx context.Context, configPath, datasetPath string) (*engine.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var store cache.Store
	switch cfg.Cache.Backend {
	case config.ModeRedis:
		s, err := cache.NewRedisStore(ctx, cfg.Cache.RedisAddr, "", 0)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = s
	case config.ModePostgres:
		s, err := cache.NewPostgresStore(cfg.Cache.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store = s
	}

	eng, err := engine.New(cfg, store)
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	input, err := datasetio.Load(datasetPath)
	if err != nil {
		return nil, err
	}
	if err := eng.Initialize(ctx, input); err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}
	return eng, nil
}
