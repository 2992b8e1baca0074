package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/config"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/routingalgorithm"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/sampler"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/graphcache"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/server"
)

var ErrNoRoute = errors.New("no path found between selected points")

type GraphCache interface {
	Get(ctx context.Context) (*graphcache.Snapshot, error)
	Reload(ctx context.Context) (*graphcache.Snapshot, error)
}

// SearchObserver receives one call per finished search.
type SearchObserver interface {
	ObserveSearch(algorithm string, fallback, found bool, visited int, elapsed time.Duration)
}

type NavigationService struct {
	cache    GraphCache
	sampling config.SamplingConfig
	observer SearchObserver
	logger   *slog.Logger
}

func NewNavigationService(cache GraphCache, sampling config.SamplingConfig, observer SearchObserver,
	logger *slog.Logger) *NavigationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NavigationService{cache: cache, sampling: sampling, observer: observer, logger: logger}
}

type RouteQuery struct {
	Start     datastructure.Coordinate
	Goal      datastructure.Coordinate
	Algorithm routingalgorithm.Strategy
}

type Route struct {
	RunID     string
	Algorithm string
	Payload   sampler.Payload
	Polyline  string
	Elapsed   time.Duration
	Start     datastructure.Coordinate
	Goal      datastructure.Coordinate
	BBox      *datastructure.BoundingBox
	HeatMap   []HeatCell
}

// Route snaps both coordinates to their nearest nodes, searches between them (retrying
// on the undirected graph when needed) and bounds the result for rendering.
func (uc *NavigationService) Route(ctx context.Context, q RouteQuery) (Route, error) {
	snapshot, err := uc.snapshot(ctx)
	if err != nil {
		return Route{}, err
	}
	g := snapshot.Graph

	startNearest, err := snapshot.Snapper.SnapToNode(q.Start)
	if err != nil {
		return Route{}, server.WrapErrorf(err, server.ErrUnavailable, "graph is empty or coordinates are invalid")
	}
	goalNearest, err := snapshot.Snapper.SnapToNode(q.Goal)
	if err != nil {
		return Route{}, server.WrapErrorf(err, server.ErrUnavailable, "graph is empty or coordinates are invalid")
	}

	cfg := uc.sampling.ForGraph(g.NumNodes())
	runID := uuid.NewString()

	t0 := time.Now()
	res, err := routingalgorithm.SearchWithFallback(g, startNearest.ID, goalNearest.ID, q.Algorithm, cfg)
	elapsed := time.Since(t0)
	if err != nil {
		return Route{}, server.WrapErrorf(err, server.ErrInternalServerError, "internal server error")
	}

	if uc.observer != nil {
		uc.observer.ObserveSearch(q.Algorithm.String(), res.FallbackUsed, res.Found(), len(res.VisitedOrder), elapsed)
	}
	uc.logger.Info("route search finished",
		"run_id", runID,
		"algorithm", q.Algorithm.String(),
		"start_node", startNearest.ID,
		"goal_node", goalNearest.ID,
		"found", res.Found(),
		"fallback", res.FallbackUsed,
		"visited", len(res.VisitedOrder),
		"elapsed", elapsed.String(),
	)

	if !res.Found() {
		return Route{}, server.WrapErrorf(ErrNoRoute, server.ErrNotFound, "no path found between selected points")
	}

	payload := sampler.Sample(res, g, cfg)
	route := Route{
		RunID:     runID,
		Algorithm: q.Algorithm.String(),
		Payload:   payload,
		Polyline:  datastructure.CreatePolyline(RouteGeometry(g, res.Path)),
		Elapsed:   elapsed,
		Start:     q.Start,
		Goal:      q.Goal,
		HeatMap:   VisitedHeatMap(g, payload.VisitedOrder),
	}
	if bbox, ok := g.BoundingBox(); ok {
		route.BBox = &bbox
	}
	return route, nil
}

type NearestNode struct {
	ID       string
	Lat      float64
	Lon      float64
	Distance float64
}

func (uc *NavigationService) Nearest(ctx context.Context, p datastructure.Coordinate) (NearestNode, error) {
	snapshot, err := uc.snapshot(ctx)
	if err != nil {
		return NearestNode{}, err
	}

	nearest, err := snapshot.Snapper.SnapToNode(p)
	if err != nil {
		return NearestNode{}, server.WrapErrorf(err, server.ErrUnavailable, "graph is empty")
	}
	node, _ := snapshot.Graph.GetNodeByID(nearest.ID)
	return NearestNode{ID: node.ID, Lat: node.Lat, Lon: node.Lon, Distance: nearest.Distance}, nil
}

type GraphInfo struct {
	Nodes    int
	Edges    int
	BBox     *datastructure.BoundingBox
	LoadedAt time.Time
}

func (uc *NavigationService) GraphInfo(ctx context.Context) (GraphInfo, error) {
	snapshot, err := uc.snapshot(ctx)
	if err != nil {
		return GraphInfo{}, err
	}
	return graphInfoOf(snapshot), nil
}

func graphInfoOf(snapshot *graphcache.Snapshot) GraphInfo {
	info := GraphInfo{
		Nodes:    snapshot.Graph.NumNodes(),
		Edges:    snapshot.Graph.NumEdges(),
		LoadedAt: snapshot.LoadedAt,
	}
	if bbox, ok := snapshot.Graph.BoundingBox(); ok {
		info.BBox = &bbox
	}
	return info
}

// ReloadGraph loads the graph again. When the load fails the current graph stays in use.
func (uc *NavigationService) ReloadGraph(ctx context.Context) (GraphInfo, error) {
	snapshot, err := uc.cache.Reload(ctx)
	if err != nil {
		uc.logger.Error("graph reload failed, keeping the current graph", "error", err)
		return GraphInfo{}, server.WrapErrorf(err, server.ErrUnavailable, "graph reload failed")
	}
	uc.logger.Info("graph reloaded", "nodes", snapshot.Graph.NumNodes())
	return graphInfoOf(snapshot), nil
}

func (uc *NavigationService) snapshot(ctx context.Context) (*graphcache.Snapshot, error) {
	snapshot, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Error("graph unavailable", "error", err)
		return nil, server.WrapErrorf(err, server.ErrUnavailable, "graph unavailable")
	}
	return snapshot, nil
}
