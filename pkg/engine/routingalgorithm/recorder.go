package routingalgorithm

import (
	"math"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
)

// recorder is the instrumentation shared by all strategies. It counts finalizations,
// keeps the visit order and emits a SearchStep every recordEvery finalizations and
// always for the goal.
type recorder struct {
	g              *datastructure.Graph
	start, goal    int32
	recordEvery    int
	frontierSample int

	processed    int
	steps        []SearchStep
	visitedOrder []string
}

func newRecorder(g *datastructure.Graph, start, goal int32, cfg SamplingConfig) *recorder {
	return &recorder{
		g:              g,
		start:          start,
		goal:           goal,
		recordEvery:    max(1, cfg.RecordEvery),
		frontierSample: cfg.FrontierSampleSize,
		steps:          make([]SearchStep, 0),
		visitedOrder:   make([]string, 0),
	}
}

func (r *recorder) visit(idx int32) {
	r.visitedOrder = append(r.visitedOrder, r.g.GetNode(idx).ID)
}

// finalize counts a finalized node and reports whether its step must be recorded.
func (r *recorder) finalize(idx int32) bool {
	r.processed++
	return r.processed%r.recordEvery == 0 || idx == r.goal
}

// sampleSize is how many frontier entries to take out of available.
func (r *recorder) sampleSize(available int) int {
	if r.frontierSample <= 0 || r.frontierSample > available {
		return available
	}
	return r.frontierSample
}

func (r *recorder) record(current int32, frontier, expanded []int32) {
	r.steps = append(r.steps, SearchStep{
		Current:        r.g.GetNode(current).ID,
		FrontierSample: r.ids(frontier),
		VisitedCount:   r.processed,
		Expanded:       r.ids(expanded),
	})
}

func (r *recorder) ids(idxs []int32) []string {
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = r.g.GetNode(idx).ID
	}
	return out
}

// result assembles the PathResult. The reported distance is summed from the edges of
// the reconstructed path, not taken from the search's cost bookkeeping.
func (r *recorder) result(parent []int32, found bool) PathResult {
	res := noPath(r.g.GetNode(r.start).ID, r.g.GetNode(r.goal).ID)
	res.Steps = r.steps
	res.VisitedOrder = r.visitedOrder
	if !found {
		return res
	}

	path := ReconstructPath(func(idx int32) (int32, bool) {
		p := parent[idx]
		return p, p >= 0
	}, r.start, r.goal, r.g.NumNodes())
	if len(path) == 0 {
		return res
	}

	dist, ok := pathDistance(r.g, path)
	if !ok {
		return res
	}
	res.Path = r.ids(path)
	res.Distance = dist
	return res
}

func newParents(n int) []int32 {
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = -1
	}
	return parent
}

func newCosts(n int) []float64 {
	cost := make([]float64, n)
	for i := range cost {
		cost[i] = math.Inf(1)
	}
	return cost
}
