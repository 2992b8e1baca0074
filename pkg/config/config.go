// Package config holds the settings shared by the engine and preprocessing binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/routingalgorithm"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/kv"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Graph    GraphConfig    `yaml:"graph"`
	Sampling SamplingConfig `yaml:"sampling"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	// RateLimit is requests per second for the whole server; 0 disables limiting.
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GraphConfig struct {
	// Source is a graph.json file or an .osm.pbf / .osm extract.
	Source string `yaml:"source"`

	// StoreEngine is badger, pebble or none.
	StoreEngine string `yaml:"store_engine"`
	StoreDir    string `yaml:"store_dir"`
	Snapshot    string `yaml:"snapshot"`
}

type SamplingConfig struct {
	// RecordEvery 0 derives the cadence from the graph size and TargetSteps.
	RecordEvery        int `yaml:"record_every"`
	TargetSteps        int `yaml:"target_steps"`
	FrontierSampleSize int `yaml:"frontier_sample_size"`
	MaxPathPoints      int `yaml:"max_path_points"`
	MaxSteps           int `yaml:"max_steps"`
	MaxStepNodeIDs     int `yaml:"max_step_node_ids"`
	MaxVisitedOrder    int `yaml:"max_visited_order"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const StoreNone = "none"

func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:     ":5000",
			RateBurst:      20,
			AllowedOrigins: []string{"https://*", "http://*"},
		},
		Graph: GraphConfig{
			Source:      "./data/graph.json",
			StoreEngine: StoreNone,
			StoreDir:    "./pathfinder_db",
			Snapshot:    "default",
		},
		Sampling: SamplingConfig{
			TargetSteps:        2000,
			FrontierSampleSize: 50,
			MaxPathPoints:      20000,
			MaxSteps:           1500,
			MaxStepNodeIDs:     40000,
			MaxVisitedOrder:    20000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over Default. An empty path returns the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Graph.StoreEngine {
	case kv.EngineBadger, kv.EnginePebble, StoreNone, "":
	default:
		return fmt.Errorf("%w: graph.store_engine %q", ErrInvalidConfig, c.Graph.StoreEngine)
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidConfig)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json", "":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// UsesStore reports whether graph snapshots are read from a key value store.
func (g GraphConfig) UsesStore() bool {
	return g.StoreEngine != "" && g.StoreEngine != StoreNone
}

// ForGraph resolves the sampling limits for a graph of nodeCount nodes.
func (s SamplingConfig) ForGraph(nodeCount int) routingalgorithm.SamplingConfig {
	recordEvery := s.RecordEvery
	if recordEvery <= 0 {
		recordEvery = routingalgorithm.RecordEveryFor(nodeCount, s.TargetSteps)
	}
	return routingalgorithm.SamplingConfig{
		RecordEvery:        recordEvery,
		FrontierSampleSize: s.FrontierSampleSize,
		MaxPathPoints:      s.MaxPathPoints,
		MaxSteps:           s.MaxSteps,
		MaxStepNodeIDs:     s.MaxStepNodeIDs,
		MaxVisitedOrder:    s.MaxVisitedOrder,
	}
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, level)
	}
}

// NewLogger builds the process logger described by l.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
