// Package config provides configuration management for the navcore routing
// engine: edge-build tuning, room classification thresholds, cache backend
// selection, and the HTTP server. Settings load from a YAML file with
// environment-variable overrides, following the layering convention used
// throughout the rest of the stack.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Mode selects the cache persistence backend.
type Mode string

const (
	// ModeRedis persists visibility edges to a Redis keyspace.
	ModeRedis Mode = "redis"
	// ModePostgres persists visibility edges to a Postgres table.
	ModePostgres Mode = "postgres"
	// ModeMemory keeps the edge cache in-process only (tests, local dev).
	ModeMemory Mode = "memory"
)

// Config is the complete navcore configuration.
type Config struct {
	EdgeBuild EdgeBuildConfig `yaml:"edge_build"`
	Room      RoomConfig      `yaml:"room"`
	Cache     CacheConfig     `yaml:"cache"`
	Server    ServerConfig    `yaml:"server"`
}

// EdgeBuildConfig tunes EdgeBuilder per §4.4.
type EdgeBuildConfig struct {
	MaxDistanceM       float64 `yaml:"max_distance_m"`
	MaxNeighbors       int     `yaml:"max_neighbors"`
	OversampleFactor   int     `yaml:"oversample_factor"`
	LargeGraphNodes    int     `yaml:"large_graph_nodes"`
	LargeMaxDistanceM  float64 `yaml:"large_max_distance_m"`
	LargeMaxNeighbors  int     `yaml:"large_max_neighbors"`
	YieldEveryNodes    int     `yaml:"yield_every_nodes"`
	YieldAfterMs       int     `yaml:"yield_after_ms"`
	LargeYieldEvery    int     `yaml:"large_yield_every_nodes"`
	LargeYieldAfterMs  int     `yaml:"large_yield_after_ms"`
}

// RoomConfig tunes the public/private room classification per §3.
type RoomConfig struct {
	PublicDoorThreshold int     `yaml:"public_door_threshold"` // P
	PublicAreaM2        float64 `yaml:"public_area_m2"`        // A
	RoomBufferM         float64 `yaml:"room_buffer_m"`
	WallBufferM         float64 `yaml:"wall_buffer_m"`
	DoorToleranceM      float64 `yaml:"door_tolerance_m"`
	OrphanDoorLinkM     float64 `yaml:"orphan_door_link_m"`
}

// CacheConfig selects and tunes the VisibilityEdgeCache persistence layer.
type CacheConfig struct {
	Backend        Mode   `yaml:"backend"`
	SchemaVersion  int    `yaml:"schema_version"`
	RedisAddr      string `yaml:"redis_addr"`
	PostgresDSN    string `yaml:"postgres_dsn"`
	HotTierBytes   int64  `yaml:"hot_tier_bytes"`
	PathCacheSize  int    `yaml:"path_cache_size"`
	RebuildOnStart bool   `yaml:"rebuild_on_start"`
	NoGraphCache   bool   `yaml:"no_graph_cache"`
}

// ServerConfig tunes the HTTP API.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	AdminAddr         string `yaml:"admin_addr"`
	JWTSecret         string `yaml:"-"`
	RateLimitPerSec   float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst    int     `yaml:"rate_limit_burst"`
}

// Default returns the configuration described by the spec's stated defaults.
func Default() *Config {
	return &Config{
		EdgeBuild: EdgeBuildConfig{
			MaxDistanceM:      15,
			MaxNeighbors:      8,
			OversampleFactor:  6,
			LargeGraphNodes:   8000,
			LargeMaxDistanceM: 8,
			LargeMaxNeighbors: 6,
			YieldEveryNodes:   10,
			YieldAfterMs:      12,
			LargeYieldEvery:   10,
			LargeYieldAfterMs: 12,
		},
		Room: RoomConfig{
			PublicDoorThreshold: 2,
			PublicAreaM2:        80,
			RoomBufferM:         0.3,
			WallBufferM:         0.5,
			DoorToleranceM:      0.6,
			OrphanDoorLinkM:     6,
		},
		Cache: CacheConfig{
			Backend:       ModeMemory,
			SchemaVersion: 1,
			RedisAddr:     "localhost:6379",
			HotTierBytes:  64 << 20,
			PathCacheSize: 100,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			AdminAddr:       ":8081",
			RateLimitPerSec: 5,
			RateLimitBurst:  10,
		},
	}
}

// Load reads a YAML config file, falling back to defaults for any field the
// file omits, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NAVCORE_CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = Mode(v)
	}
	if v := os.Getenv("NAVCORE_REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("NAVCORE_POSTGRES_DSN"); v != "" {
		cfg.Cache.PostgresDSN = v
	}
	if v := os.Getenv("NAVCORE_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("NAVCORE_JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("NAVCORE_MAX_NEIGHBORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.EdgeBuild.MaxNeighbors = n
		}
	}
}

// Validate checks the config for internally inconsistent values.
func (c *Config) Validate() error {
	if c.EdgeBuild.MaxNeighbors <= 0 {
		return fmt.Errorf("edge_build.max_neighbors must be positive")
	}
	if c.EdgeBuild.MaxDistanceM <= 0 {
		return fmt.Errorf("edge_build.max_distance_m must be positive")
	}
	switch c.Cache.Backend {
	case ModeRedis, ModePostgres, ModeMemory:
	default:
		return fmt.Errorf("cache.backend %q is not one of redis|postgres|memory", c.Cache.Backend)
	}
	if c.Cache.Backend == ModeRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr required for redis backend")
	}
	if c.Cache.Backend == ModePostgres && c.Cache.PostgresDSN == "" {
		return fmt.Errorf("cache.postgres_dsn required for postgres backend")
	}
	return nil
}
