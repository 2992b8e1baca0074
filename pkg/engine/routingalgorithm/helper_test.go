package routingalgorithm

import (
	"fmt"
	"testing"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var strategies = []Strategy{BFS, Dijkstra, AStar}

func w(weight float64) *float64 {
	return &weight
}

// lineNodes places nodes ~0.11 m apart so any weight >= 1 keeps the haversine heuristic admissible.
func lineNodes(ids ...string) []datastructure.Node {
	nodes := make([]datastructure.Node, len(ids))
	for i, id := range ids {
		nodes[i] = datastructure.Node{ID: id, Lat: float64(i) * 1e-6, Lon: 0}
	}
	return nodes
}

func buildGraph(t *testing.T, nodes []datastructure.Node, edges []datastructure.RawEdge) *datastructure.Graph {
	t.Helper()
	g, err := datastructure.NewGraph(nodes, edges, nil)
	require.NoError(t, err)
	return g
}

func everyStep() SamplingConfig {
	return SamplingConfig{RecordEvery: 1}
}

// randomGraph returns a random directed graph whose weights are at least the haversine
// distance between their endpoints.
func randomGraph(t *testing.T, rng *rand.Rand, n, m int) *datastructure.Graph {
	t.Helper()
	nodes := make([]datastructure.Node, n)
	for i := range nodes {
		nodes[i] = datastructure.Node{
			ID:  fmt.Sprintf("n%d", i),
			Lat: 40.36 + rng.Float64()*0.02,
			Lon: 49.83 + rng.Float64()*0.02,
		}
	}

	edges := make([]datastructure.RawEdge, 0, m)
	for i := 0; i < m; i++ {
		a, b := rng.Intn(n), rng.Intn(n)
		if a == b {
			continue
		}
		edge := datastructure.RawEdge{From: nodes[a].ID, To: nodes[b].ID}
		if rng.Intn(3) > 0 {
			straight := geo.CalculateHaversineDistance(nodes[a].Lat, nodes[a].Lon, nodes[b].Lat, nodes[b].Lon)
			edge.Weight = w(straight * (1 + rng.Float64()))
		}
		edges = append(edges, edge)
	}
	return buildGraph(t, nodes, edges)
}
