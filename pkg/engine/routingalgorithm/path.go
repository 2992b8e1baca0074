package routingalgorithm

import (
	"slices"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
)

// ReconstructPath walks predecessor links back from goal to start and returns the path
// in start..goal order. It returns [start] when start == goal, and an empty path when goal
// has no predecessor or the chain breaks (or exceeds maxNodes) before reaching start.
func ReconstructPath[K comparable](predecessor func(K) (K, bool), start, goal K, maxNodes int) []K {
	if start == goal {
		return []K{start}
	}

	path := []K{goal}
	curr := goal
	for curr != start {
		prev, ok := predecessor(curr)
		if !ok || len(path) >= maxNodes {
			return []K{}
		}
		curr = prev
		path = append(path, curr)
	}

	slices.Reverse(path)
	return path
}

// ReconstructPathFromMap is ReconstructPath over an id keyed predecessor map.
func ReconstructPathFromMap(predecessors map[string]string, start, goal string) []string {
	return ReconstructPath(func(id string) (string, bool) {
		prev, ok := predecessors[id]
		return prev, ok
	}, start, goal, len(predecessors)+1)
}

// pathDistance sums the edge weights along path. ok is false if two consecutive
// nodes are not joined by an edge of g.
func pathDistance(g *datastructure.Graph, path []int32) (float64, bool) {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		w, ok := g.EdgeWeight(path[i], path[i+1])
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}
