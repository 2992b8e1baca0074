package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/config"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/graphdata"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/kv"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/osmparser"

	"github.com/spf13/cobra"
)

var (
	configPath string
	mapFile    string
	bboxFlag   string
	outFile    string
	engineKind string
	storeDir   string
	snapshot   string
)

const longHelp = `Reads graph.json, .osm or .osm.pbf, optionally clipped to --bbox, and writes
the graph to --out as graph.json and/or into a badger or pebble snapshot store.`

var rootCmd = &cobra.Command{
	Use:          "preprocessing",
	Short:        "build a graph snapshot from graph.json or an openstreetmap extract",
	Long:         longHelp,
	SilenceUsage: true,
	RunE:         runPreprocessing,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "yaml config file, defaults are used when empty")
	rootCmd.Flags().StringVarP(&mapFile, "file", "f", "", "graph.json, .osm or .osm.pbf input, defaults to graph.source")
	rootCmd.Flags().StringVar(&bboxFlag, "bbox", "", "south,west,north,east clip for openstreetmap input")
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the imported graph as graph.json")
	rootCmd.Flags().StringVar(&engineKind, "engine", "", "snapshot store: badger, pebble or none, defaults to graph.store_engine")
	rootCmd.Flags().StringVar(&storeDir, "dir", "", "snapshot store directory, defaults to graph.store_dir")
	rootCmd.Flags().StringVar(&snapshot, "name", "", "snapshot name, defaults to graph.snapshot")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPreprocessing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if mapFile != "" {
		cfg.Graph.Source = mapFile
	}
	if engineKind != "" {
		cfg.Graph.StoreEngine = engineKind
	}
	if storeDir != "" {
		cfg.Graph.StoreDir = storeDir
	}
	if snapshot != "" {
		cfg.Graph.Snapshot = snapshot
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	bbox, err := parseBBox(bboxFlag)
	if err != nil {
		return err
	}

	logger := cfg.Log.NewLogger(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logger.Info("reading graph", "file", cfg.Graph.Source)

	var doc graphdata.Document
	if isOsmFile(cfg.Graph.Source) {
		doc, err = osmparser.NewOSMParser(logger, bbox).ParseFile(ctx, cfg.Graph.Source)
	} else {
		if bbox != nil {
			logger.Warn("--bbox only applies to openstreetmap input, ignoring it")
		}
		doc, err = graphdata.ReadFile(cfg.Graph.Source)
	}
	if err != nil {
		return err
	}

	g, err := doc.Build()
	if err != nil {
		return err
	}
	logger.Info("graph built", "nodes", g.NumNodes(), "edges", g.NumEdges(), "took", time.Since(start))

	if outFile != "" {
		if err := graphdata.WriteFile(outFile, doc); err != nil {
			return err
		}
		logger.Info("graph.json written", "file", outFile)
	}

	if !cfg.Graph.UsesStore() {
		if outFile == "" {
			logger.Warn("neither --out nor a snapshot store is set, nothing was written")
		}
		return nil
	}

	engine, err := kv.OpenEngine(cfg.Graph.StoreEngine, cfg.Graph.StoreDir)
	if err != nil {
		return fmt.Errorf("open %s store at %s: %w", cfg.Graph.StoreEngine, cfg.Graph.StoreDir, err)
	}
	kvDB := kv.NewKVDB(engine, logger)
	defer kvDB.Close()

	if err := kvDB.SaveGraph(ctx, cfg.Graph.Snapshot, g); err != nil {
		return err
	}
	logger.Info("snapshot saved", "engine", cfg.Graph.StoreEngine, "dir", cfg.Graph.StoreDir,
		"name", cfg.Graph.Snapshot, "took", time.Since(start))
	return nil
}

func isOsmFile(path string) bool {
	return strings.HasSuffix(path, ".pbf") || strings.HasSuffix(path, ".osm")
}

// parseBBox reads "south,west,north,east". An empty string means no clip.
func parseBBox(s string) (*datastructure.BoundingBox, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox %q: want south,west,north,east", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox %q: %w", s, err)
		}
		v[i] = f
	}
	if v[0] > v[2] || v[1] > v[3] {
		return nil, fmt.Errorf("bbox %q: south/west must not exceed north/east", s)
	}
	return &datastructure.BoundingBox{MinLat: v[0], MinLon: v[1], MaxLat: v[2], MaxLon: v[3]}, nil
}
