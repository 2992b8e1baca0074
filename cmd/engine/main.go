package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/muradnuriyev/path-finder-visualizer/docs"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/config"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/graphcache"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/kv"
	mymiddleware "github.com/muradnuriyev/path-finder-visualizer/pkg/server/middleware"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/server/rest"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	configPath string
	listenAddr string
	graphFile  string
	rateLimit  float64
	profiling  bool
)

var rootCmd = &cobra.Command{
	Use:          "engine",
	Short:        "path finder visualizer http server",
	SilenceUsage: true,
	RunE:         runEngine,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "yaml config file, defaults are used when empty")
	rootCmd.Flags().StringVar(&listenAddr, "listenaddr", "", "server listen address, overrides server.listen_addr")
	rootCmd.Flags().StringVarP(&graphFile, "graph", "f", "", "graph.json or openstreetmap extract, overrides graph.source")
	rootCmd.Flags().Float64Var(&rateLimit, "ratelimit", -1, "requests per second, 0 disables, overrides server.rate_limit")
	rootCmd.Flags().BoolVar(&profiling, "pprof", false, "mount net/http/pprof under /debug")
}

//	@title			path finder visualizer API
//	@version		1.0
//	@description	graph search visualizer backend. Runs bfs, dijkstra or astar between two coordinates and returns a bounded replay of the search.

//	@contact.name	murad nuriyev

//	@license.name	MIT

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEngine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}
	if graphFile != "" {
		cfg.Graph.Source = graphFile
	}
	if rateLimit >= 0 {
		cfg.Server.RateLimit = rateLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	loader := graphcache.FileLoader(cfg.Graph.Source, logger)
	if cfg.Graph.UsesStore() {
		engine, err := kv.OpenEngine(cfg.Graph.StoreEngine, cfg.Graph.StoreDir)
		if err != nil {
			return fmt.Errorf("open %s store at %s: %w", cfg.Graph.StoreEngine, cfg.Graph.StoreDir, err)
		}
		kvDB := kv.NewKVDB(engine, logger)
		defer kvDB.Close()

		loader = graphcache.StoreLoader(kvDB, cfg.Graph.Snapshot, loader)
	}
	cache := graphcache.New(loader, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a bad source should fail the start, not the first request
	snapshot, err := cache.Get(ctx)
	if err != nil {
		return fmt.Errorf("load graph from %s: %w", cfg.Graph.Source, err)
	}
	logger.Info("graph ready", "nodes", snapshot.Graph.NumNodes(), "edges", snapshot.Graph.NumEdges())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Server.RateLimit > 0 {
		r.Use(mymiddleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst))
	}

	if profiling {
		r.Mount("/debug", middleware.Profiler())
	}

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	navigatorSvc := service.NewNavigationService(cache, cfg.Sampling, m, logger)
	rest.NavigatorRouter(r, navigatorSvc)

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", cfg.Server.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
