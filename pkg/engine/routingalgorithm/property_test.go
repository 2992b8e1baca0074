package routingalgorithm

import (
	"math"
	"testing"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// allPairs is Floyd-Warshall over g, used as the reference for weighted searches.
func allPairs(g *datastructure.Graph) [][]float64 {
	n := g.NumNodes()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = math.Inf(1)
		}
		dist[i][i] = 0
		for _, e := range g.GetNodeOutEdges(int32(i)) {
			dist[i][e.ToNodeIDX] = math.Min(dist[i][e.ToNodeIDX], e.Weight)
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if d := dist[i][k] + dist[k][j]; d < dist[i][j] {
					dist[i][j] = d
				}
			}
		}
	}
	return dist
}

// hopCounts is the unweighted distance from start to every node.
func hopCounts(g *datastructure.Graph, start int32) []int {
	hops := make([]int, g.NumNodes())
	for i := range hops {
		hops[i] = -1
	}
	hops[start] = 0
	frontier := []int32{start}
	for len(frontier) > 0 {
		next := []int32{}
		for _, u := range frontier {
			for _, e := range g.GetNodeOutEdges(u) {
				if hops[e.ToNodeIDX] < 0 {
					hops[e.ToNodeIDX] = hops[u] + 1
					next = append(next, e.ToNodeIDX)
				}
			}
		}
		frontier = next
	}
	return hops
}

func assertValidPath(t *testing.T, g *datastructure.Graph, res PathResult) {
	t.Helper()
	require.NotEmpty(t, res.Path)
	assert.Equal(t, res.Start, res.Path[0])
	assert.Equal(t, res.Goal, res.Path[len(res.Path)-1])

	total := 0.0
	for i := 0; i+1 < len(res.Path); i++ {
		from, _ := g.GetNodeIDX(res.Path[i])
		to, _ := g.GetNodeIDX(res.Path[i+1])
		weight, ok := g.EdgeWeight(from, to)
		require.True(t, ok, "%s -> %s is not an edge", res.Path[i], res.Path[i+1])
		total += weight
	}
	assert.InDelta(t, total, res.Distance, 1e-6)
}

func TestWeightedSearchesMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		g := randomGraph(t, rng, 30, 90)
		ref := allPairs(g)

		for q := 0; q < 25; q++ {
			s, e := int32(rng.Intn(30)), int32(rng.Intn(30))
			startID, goalID := g.GetNode(s).ID, g.GetNode(e).ID

			dij, err := Search(g, startID, goalID, Dijkstra, everyStep())
			require.NoError(t, err)
			astar, err := Search(g, startID, goalID, AStar, everyStep())
			require.NoError(t, err)

			if math.IsInf(ref[s][e], 1) {
				assert.False(t, dij.Found())
				assert.False(t, astar.Found())
				assert.True(t, math.IsInf(dij.Distance, 1))
				assert.True(t, math.IsInf(astar.Distance, 1))
				continue
			}

			assertValidPath(t, g, dij)
			assertValidPath(t, g, astar)
			assert.InDelta(t, ref[s][e], dij.Distance, 1e-6)
			assert.InDelta(t, ref[s][e], astar.Distance, 1e-6)
		}
	}
}

func TestBFSFewestEdgesRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		g := randomGraph(t, rng, 40, 80)
		for q := 0; q < 25; q++ {
			s, e := int32(rng.Intn(40)), int32(rng.Intn(40))
			hops := hopCounts(g, s)

			res, err := Search(g, g.GetNode(s).ID, g.GetNode(e).ID, BFS, everyStep())
			require.NoError(t, err)

			if hops[e] < 0 {
				assert.False(t, res.Found())
				continue
			}
			assertValidPath(t, g, res)
			assert.Equal(t, hops[e], len(res.Path)-1)
		}
	}
}

func TestSearchTraceShape(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))

	for round := 0; round < 10; round++ {
		g := randomGraph(t, rng, 50, 150)
		for _, s := range strategies {
			for q := 0; q < 10; q++ {
				start, goal := g.GetNode(int32(rng.Intn(50))).ID, g.GetNode(int32(rng.Intn(50))).ID
				res, err := Search(g, start, goal, s, SamplingConfig{RecordEvery: 1, FrontierSampleSize: 4})
				require.NoError(t, err)

				seen := map[string]bool{}
				for _, id := range res.VisitedOrder {
					assert.False(t, seen[id], "%s visited twice by %s", id, s)
					seen[id] = true
				}
				assert.LessOrEqual(t, len(res.VisitedOrder), g.NumNodes())

				for i, step := range res.Steps {
					assert.LessOrEqual(t, len(step.FrontierSample), 4)
					if i > 0 {
						assert.Greater(t, step.VisitedCount, res.Steps[i-1].VisitedCount)
					}
				}

				if res.Found() {
					require.NotEmpty(t, res.Steps)
					assert.Equal(t, goal, res.Steps[len(res.Steps)-1].Current)
				}
			}
		}
	}
}

func TestSearchConcurrentReaders(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	g := randomGraph(t, rng, 60, 200)
	want, err := Search(g, "n0", "n59", AStar, DefaultSamplingConfig(g.NumNodes()))
	require.NoError(t, err)

	done := make(chan PathResult, 8)
	for i := 0; i < 8; i++ {
		go func() {
			res, _ := SearchWithFallback(g, "n0", "n59", AStar, DefaultSamplingConfig(g.NumNodes()))
			done <- res
		}()
	}
	for i := 0; i < 8; i++ {
		got := <-done
		if want.Found() {
			assert.Equal(t, want.Path, got.Path)
		}
	}
}

func TestRecordEveryFor(t *testing.T) {
	assert.Equal(t, 1, RecordEveryFor(0, 2000))
	assert.Equal(t, 1, RecordEveryFor(2000, 2000))
	assert.Equal(t, 2, RecordEveryFor(2001, 2000))
	assert.Equal(t, 50, RecordEveryFor(100000, 0))
}
