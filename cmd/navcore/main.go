// Command navcore is the operator CLI: run the routing API server, answer
// one-off route queries from the shell, or benchmark edge-build time
// against a dataset. Structured as a cobra command tree the way the
// teacher's cmd/arx/main.go lays out its root command and subcommands.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wayfynd/navcore/internal/api/adminmux"
	"github.com/wayfynd/navcore/internal/api/httpapi"
	"github.com/wayfynd/navcore/internal/api/middleware"
	"github.com/wayfynd/navcore/internal/cache"
	"github.com/wayfynd/navcore/internal/config"
	"github.com/wayfynd/navcore/internal/datasetio"
	"github.com/wayfynd/navcore/internal/engine"
	"github.com/wayfynd/navcore/internal/instructions"
	"github.com/wayfynd/navcore/internal/logger"
	"github.com/wayfynd/navcore/internal/metrics"
	"github.com/wayfynd/navcore/internal/watcher"
	"github.com/wayfynd/navcore/pkg/geo"
)

var (
	// Version is set at build time via -ldflags.
	Version = "dev"

	configPath  string
	datasetPath string
)

var rootCmd = &cobra.Command{
	Use:           "navcore",
	Short:         "navcore is an indoor multi-floor pathfinding engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to dataset.json")
	rootCmd.AddCommand(serveCmd, routeCmd, benchEdgesCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the navcore version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(Version)
	},
}

func loadEngine(ctx context.Context) (*config.Config, *engine.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	if datasetPath == "" {
		return nil, nil, fmt.Errorf("--dataset is required")
	}

	var store cache.Store
	switch cfg.Cache.Backend {
	case config.ModeRedis:
		s, err := cache.NewRedisStore(ctx, cfg.Cache.RedisAddr, "", 0)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		store = s
	case config.ModePostgres:
		s, err := cache.NewPostgresStore(cfg.Cache.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store = s
	}

	eng, err := engine.New(cfg, store)
	if err != nil {
		return nil, nil, fmt.Errorf("build engine: %w", err)
	}

	input, err := datasetio.Load(datasetPath)
	if err != nil {
		return nil, nil, err
	}
	if err := eng.Initialize(ctx, input); err != nil {
		return nil, nil, fmt.Errorf("initialize engine: %w", err)
	}
	return cfg, eng, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the navcore HTTP API and admin server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		cfg, eng, err := loadEngine(ctx)
		if err != nil {
			return err
		}

		w, err := watcher.New([]string{datasetPath}, 500*time.Millisecond, func(ctx context.Context) error {
			input, err := datasetio.Load(datasetPath)
			if err != nil {
				return err
			}
			return eng.Initialize(ctx, input)
		})
		if err != nil {
			logger.Warn("serve: watcher disabled: %v", err)
		} else {
			w.Start(ctx)
			defer w.Close()
		}

		met := metrics.New()
		auth := middleware.NewAuthenticator(cfg.Server.JWTSecret, 24*time.Hour)
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimitPerSec, cfg.Server.RateLimitBurst)
		routeCache := cache.NewRouteCache(cfg.Cache.PathCacheSize)

		apiSrv := &http.Server{Addr: cfg.Server.Addr, Handler: httpapi.NewRouter(eng, met, auth, limiter)}
		adminSrv := &http.Server{Addr: cfg.Server.AdminAddr, Handler: adminmux.New(eng, met, routeCache)}

		go func() {
			logger.Info("navcore: API listening on %s", cfg.Server.Addr)
			if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("api server: %v", err)
			}
		}()
		go func() {
			logger.Info("navcore: admin listening on %s", cfg.Server.AdminAddr)
			if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("admin server: %v", err)
			}
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = apiSrv.Shutdown(shutdownCtx)
		_ = adminSrv.Shutdown(shutdownCtx)
		return nil
	},
}

var routeOpts struct {
	startLng, startLat, endLng, endLat float64
	startFloor, endFloor               string
	accessibleOnly                     bool
	mode                               string
}

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Find a single route from the command line and print its steps",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, eng, err := loadEngine(ctx)
		if err != nil {
			return err
		}

		route, err := eng.FindRoute(ctx,
			geo.Coord{Lng: routeOpts.startLng, Lat: routeOpts.startLat}, routeOpts.startFloor,
			geo.Coord{Lng: routeOpts.endLng, Lat: routeOpts.endLat}, routeOpts.endFloor,
			engine.QueryOptions{AccessibleOnly: routeOpts.accessibleOnly, HeuristicWeight: 1, RoomTraversalMode: routeOpts.mode},
		)
		if err != nil {
			return err
		}

		fmt.Printf("route %s: %.1fm across %d floor(s)\n", route.QueryID, route.DistanceM, len(distinctFloors(route.Floors)))
		for _, step := range instructions.Generate(route.Path, route.Floors) {
			fmt.Printf("  %-14s %-28s %.1fm\n", step.Type, step.Text, step.DistanceM)
		}
		for _, w := range route.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		return nil
	},
}

func distinctFloors(floors []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, f := range floors {
		if _, ok := seen[f]; !ok {
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}

var benchEdgesCmd = &cobra.Command{
	Use:   "bench-edges",
	Short: "Time graph initialization (dominated by EdgeBuilder) against a dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg.Cache.NoGraphCache = true // force a real edge build, not a cache hit
		if datasetPath == "" {
			return fmt.Errorf("--dataset is required")
		}

		eng, err := engine.New(cfg, nil)
		if err != nil {
			return err
		}
		input, err := datasetio.Load(datasetPath)
		if err != nil {
			return err
		}

		start := time.Now()
		if err := eng.Initialize(ctx, input); err != nil {
			return err
		}
		elapsed := time.Since(start)

		var totalNodes int
		for _, f := range eng.Floors() {
			totalNodes += eng.FloorNodeCount(f)
		}
		fmt.Printf("initialize: %s across %d floor(s), %d node(s) (%.0f nodes/sec)\n",
			elapsed, len(eng.Floors()), totalNodes, float64(totalNodes)/elapsed.Seconds())
		return nil
	},
}

func init() {
	routeCmd.Flags().Float64Var(&routeOpts.startLng, "start-lng", 0, "start longitude")
	routeCmd.Flags().Float64Var(&routeOpts.startLat, "start-lat", 0, "start latitude")
	routeCmd.Flags().StringVar(&routeOpts.startFloor, "start-floor", "", "start floor id")
	routeCmd.Flags().Float64Var(&routeOpts.endLng, "end-lng", 0, "end longitude")
	routeCmd.Flags().Float64Var(&routeOpts.endLat, "end-lat", 0, "end latitude")
	routeCmd.Flags().StringVar(&routeOpts.endFloor, "end-floor", "", "end floor id")
	routeCmd.Flags().BoolVar(&routeOpts.accessibleOnly, "accessible-only", false, "restrict to accessible nodes")
	routeCmd.Flags().StringVar(&routeOpts.mode, "room-traversal-mode", "public", "public|strict|all")
}
