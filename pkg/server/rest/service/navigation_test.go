package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/config"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/routingalgorithm"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/graphcache"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	algorithm string
	fallback  bool
	found     bool
	visited   int
}

type recordingObserver struct {
	calls []observed
}

func (o *recordingObserver) ObserveSearch(algorithm string, fallback, found bool, visited int, elapsed time.Duration) {
	o.calls = append(o.calls, observed{algorithm, fallback, found, visited})
}

// a -> b -> c is one way; island sits far away with no edges.
func testGraph() (*datastructure.Graph, error) {
	return datastructure.NewGraph([]datastructure.Node{
		{ID: "a", Lat: 40.3700, Lon: 49.8400},
		{ID: "b", Lat: 40.3710, Lon: 49.8400},
		{ID: "c", Lat: 40.3720, Lon: 49.8400},
		{ID: "island", Lat: 40.4000, Lon: 49.9000},
	}, []datastructure.RawEdge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
	}, nil)
}

func newService(t *testing.T, load graphcache.Loader) (*NavigationService, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	cache := graphcache.New(load, nil)
	return NewNavigationService(cache, config.Default().Sampling, obs, nil), obs
}

func TestRoute(t *testing.T) {
	svc, obs := newService(t, func(ctx context.Context) (*datastructure.Graph, error) { return testGraph() })

	route, err := svc.Route(context.Background(), RouteQuery{
		Start:     datastructure.NewCoordinate(40.37001, 49.84001),
		Goal:      datastructure.NewCoordinate(40.37199, 49.84),
		Algorithm: routingalgorithm.AStar,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, route.Payload.NodePath)
	assert.Equal(t, "a", route.Payload.StartNode)
	assert.Equal(t, "c", route.Payload.GoalNode)
	assert.InDelta(t, 222.4, route.Payload.Distance, 0.5)
	assert.False(t, route.Payload.FallbackUsed)
	assert.Equal(t, "astar", route.Algorithm)
	assert.NotEmpty(t, route.RunID)
	assert.Equal(t, datastructure.NewCoordinate(40.37001, 49.84001), route.Start)
	require.NotNil(t, route.BBox)

	// a, b and c are collinear so the encoded geometry keeps only the ends
	decoded, err := datastructure.DecodePolyline(route.Polyline)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.InDelta(t, 40.37, decoded[0].Lat, 1e-5)
	assert.InDelta(t, 40.372, decoded[1].Lat, 1e-5)

	total := 0
	for _, cell := range route.HeatMap {
		total += cell.Count
	}
	assert.Equal(t, len(route.Payload.VisitedOrder), total)

	require.Len(t, obs.calls, 1)
	assert.Equal(t, observed{"astar", false, true, 3}, obs.calls[0])
}

func TestRouteFallback(t *testing.T) {
	svc, obs := newService(t, func(ctx context.Context) (*datastructure.Graph, error) { return testGraph() })

	route, err := svc.Route(context.Background(), RouteQuery{
		Start:     datastructure.NewCoordinate(40.3720, 49.8400),
		Goal:      datastructure.NewCoordinate(40.3700, 49.8400),
		Algorithm: routingalgorithm.Dijkstra,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, route.Payload.NodePath)
	assert.True(t, route.Payload.FallbackUsed)
	assert.True(t, obs.calls[0].fallback)
}

func TestRouteNoPath(t *testing.T) {
	svc, obs := newService(t, func(ctx context.Context) (*datastructure.Graph, error) { return testGraph() })

	_, err := svc.Route(context.Background(), RouteQuery{
		Start:     datastructure.NewCoordinate(40.3700, 49.8400),
		Goal:      datastructure.NewCoordinate(40.4000, 49.9000),
		Algorithm: routingalgorithm.BFS,
	})
	assert.ErrorIs(t, err, ErrNoRoute)
	assert.Equal(t, server.ErrNotFound, server.CodeOf(err))
	require.Len(t, obs.calls, 1)
	assert.False(t, obs.calls[0].found)
}

func TestRouteGraphUnavailable(t *testing.T) {
	boom := errors.New("no graph file")
	svc, _ := newService(t, func(ctx context.Context) (*datastructure.Graph, error) { return nil, boom })

	_, err := svc.Route(context.Background(), RouteQuery{Algorithm: routingalgorithm.BFS})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, server.ErrUnavailable, server.CodeOf(err))

	empty := func(ctx context.Context) (*datastructure.Graph, error) {
		return datastructure.NewGraph(nil, nil, nil)
	}
	svc, _ = newService(t, empty)
	_, err = svc.Route(context.Background(), RouteQuery{Algorithm: routingalgorithm.BFS})
	assert.ErrorIs(t, err, datastructure.ErrEmptyGraph)
	assert.Equal(t, server.ErrUnavailable, server.CodeOf(err))
}

func TestNearestAndGraphInfo(t *testing.T) {
	loads := 0
	svc, _ := newService(t, func(ctx context.Context) (*datastructure.Graph, error) {
		loads++
		return testGraph()
	})

	nearest, err := svc.Nearest(context.Background(), datastructure.NewCoordinate(40.3999, 49.8999))
	require.NoError(t, err)
	assert.Equal(t, "island", nearest.ID)
	assert.Equal(t, 40.4, nearest.Lat)
	assert.InDelta(t, 14, nearest.Distance, 1)

	info, err := svc.GraphInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, info.Nodes)
	assert.Equal(t, 2, info.Edges)
	require.NotNil(t, info.BBox)
	assert.Equal(t, 40.37, info.BBox.MinLat)

	_, err = svc.ReloadGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestReloadGraphFailureKeepsServing(t *testing.T) {
	boom := errors.New("graph.json went missing")
	loads := 0
	svc, _ := newService(t, func(ctx context.Context) (*datastructure.Graph, error) {
		loads++
		if loads > 1 {
			return nil, boom
		}
		return testGraph()
	})

	before, err := svc.GraphInfo(context.Background())
	require.NoError(t, err)

	_, err = svc.ReloadGraph(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, server.ErrUnavailable, server.CodeOf(err))

	route, err := svc.Route(context.Background(), RouteQuery{
		Start:     datastructure.NewCoordinate(40.37001, 49.84001),
		Goal:      datastructure.NewCoordinate(40.37199, 49.84),
		Algorithm: routingalgorithm.Dijkstra,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, route.Payload.NodePath)

	after, err := svc.GraphInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 2, loads)
}

func TestVisitedHeatMap(t *testing.T) {
	g, err := testGraph()
	require.NoError(t, err)

	cells := VisitedHeatMap(g, []string{"a", "b", "c", "island", "ghost"})
	total := 0
	for i, c := range cells {
		total += c.Count
		assert.NotEmpty(t, c.Cell)
		if i > 0 {
			assert.GreaterOrEqual(t, cells[i-1].Count, c.Count)
		}
	}
	assert.Equal(t, 4, total)
	assert.GreaterOrEqual(t, len(cells), 2)
}
