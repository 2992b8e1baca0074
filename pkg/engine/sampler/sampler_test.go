package sampler

import (
	"testing"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/routingalgorithm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainGraph(t *testing.T, ids ...string) *datastructure.Graph {
	t.Helper()
	nodes := make([]datastructure.Node, len(ids))
	edges := make([]datastructure.RawEdge, 0, len(ids))
	for i, id := range ids {
		nodes[i] = datastructure.Node{ID: id, Lat: 40.4 + float64(i)*0.001, Lon: 49.8}
		if i > 0 {
			edges = append(edges, datastructure.RawEdge{From: ids[i-1], To: id})
		}
	}
	g, err := datastructure.NewGraph(nodes, edges, nil)
	require.NoError(t, err)
	return g
}

func TestSamplePathTruncation(t *testing.T) {
	g := chainGraph(t, "a", "b", "c", "d", "e")
	res, err := routingalgorithm.Search(g, "a", "e", routingalgorithm.Dijkstra, routingalgorithm.SamplingConfig{RecordEvery: 1})
	require.NoError(t, err)
	require.Len(t, res.Path, 5)

	payload := Sample(res, g, routingalgorithm.SamplingConfig{MaxPathPoints: 3})

	assert.Equal(t, []string{"a", "b", "c"}, payload.NodePath)
	require.Len(t, payload.Path, 3)
	for i, id := range payload.NodePath {
		n, _ := g.GetNodeByID(id)
		assert.Equal(t, n.Coordinate(), payload.Path[i])
	}
	assert.True(t, payload.Truncated)
	assert.Equal(t, res.Distance, payload.Distance)
	assert.Equal(t, 5, payload.Visited)
	assert.Equal(t, "a", payload.StartNode)
	assert.Equal(t, "e", payload.GoalNode)

	// the full result is left intact
	assert.Len(t, res.Path, 5)
}

func TestSampleUnlimited(t *testing.T) {
	g := chainGraph(t, "a", "b", "c", "d")
	res, err := routingalgorithm.Search(g, "a", "d", routingalgorithm.BFS, routingalgorithm.SamplingConfig{RecordEvery: 1})
	require.NoError(t, err)

	payload := Sample(res, g, routingalgorithm.SamplingConfig{})

	assert.Equal(t, res.Path, payload.NodePath)
	assert.Equal(t, res.VisitedOrder, payload.VisitedOrder)
	assert.Equal(t, res.Steps, payload.Steps)
	assert.False(t, payload.Truncated)
	assert.Len(t, payload.StepNodes, 4)
}

func TestSampleStepsAndFrontier(t *testing.T) {
	g := chainGraph(t, "a", "b", "c", "d", "e", "f")
	res := routingalgorithm.PathResult{
		Start:        "a",
		Goal:         "f",
		Path:         []string{"a", "f"},
		VisitedOrder: []string{"a", "b", "c", "d"},
		Steps: []routingalgorithm.SearchStep{
			{Current: "a", FrontierSample: []string{"b", "c", "d"}, VisitedCount: 1, Expanded: []string{"b", "c", "d"}},
			{Current: "b", FrontierSample: []string{"c", "d"}, VisitedCount: 2, Expanded: []string{}},
			{Current: "f", FrontierSample: []string{}, VisitedCount: 3, Expanded: []string{}},
		},
		Distance: 10,
	}

	payload := Sample(res, g, routingalgorithm.SamplingConfig{MaxSteps: 2, FrontierSampleSize: 1, MaxVisitedOrder: 2})

	assert.Equal(t, []string{"a", "b"}, payload.VisitedOrder)
	require.Len(t, payload.Steps, 2)
	assert.Equal(t, []string{"b"}, payload.Steps[0].FrontierSample)
	assert.Equal(t, []string{"c"}, payload.Steps[1].FrontierSample)
	assert.Equal(t, []string{"b", "c", "d"}, payload.Steps[0].Expanded)
	assert.True(t, payload.Truncated)

	// the original step slices are untouched
	assert.Equal(t, []string{"b", "c", "d"}, res.Steps[0].FrontierSample)
}

func TestSampleStepNodePriority(t *testing.T) {
	g := chainGraph(t, "a", "b", "c", "d", "e", "f", "g")
	res := routingalgorithm.PathResult{
		Start:        "a",
		Goal:         "g",
		Path:         []string{"a", "c", "g"},
		VisitedOrder: []string{"a", "b", "c"},
		Steps: []routingalgorithm.SearchStep{
			{Current: "a", FrontierSample: []string{"e", "d"}, Expanded: []string{"f"}},
		},
	}

	ids := func(nodes []datastructure.Node) []string {
		out := make([]string, len(nodes))
		for i, n := range nodes {
			out[i] = n.ID
		}
		return out
	}

	payload := Sample(res, g, routingalgorithm.SamplingConfig{})
	assert.Equal(t, []string{"a", "c", "g", "b", "e", "d", "f"}, ids(payload.StepNodes))

	payload = Sample(res, g, routingalgorithm.SamplingConfig{MaxStepNodeIDs: 4})
	assert.Equal(t, []string{"a", "c", "g", "b"}, ids(payload.StepNodes))
	assert.True(t, payload.Truncated)

	payload = Sample(res, g, routingalgorithm.SamplingConfig{MaxStepNodeIDs: 7})
	assert.Len(t, payload.StepNodes, 7)
	assert.False(t, payload.Truncated)
}

func TestSampleStartGoalLast(t *testing.T) {
	g := chainGraph(t, "a", "b", "c")
	res := routingalgorithm.PathResult{
		Start:        "a",
		Goal:         "c",
		Path:         []string{},
		VisitedOrder: []string{"b"},
		Steps:        []routingalgorithm.SearchStep{},
	}

	payload := Sample(res, g, routingalgorithm.SamplingConfig{})
	require.Len(t, payload.StepNodes, 3)
	assert.Equal(t, "b", payload.StepNodes[0].ID)
	assert.Equal(t, "a", payload.StepNodes[1].ID)
	assert.Equal(t, "c", payload.StepNodes[2].ID)
	assert.Empty(t, payload.Path)
}
