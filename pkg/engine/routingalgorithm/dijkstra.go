package routingalgorithm

import "github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"

func shortestPathDijkstra(g *datastructure.Graph, start, goal int32, cfg SamplingConfig) PathResult {
	return bestFirstSearch(g, start, goal, cfg, func(int32) float64 { return 0 })
}

// bestFirstSearch is Dijkstra ordered by cost + heuristic(node). Stale heap entries are
// skipped when popped (lazy deletion); a neighbour is relaxed only when the new cost is
// strictly lower, so ties never push again. Finalized nodes are never relaxed.
func bestFirstSearch(g *datastructure.Graph, start, goal int32, cfg SamplingConfig,
	heuristic func(idx int32) float64) PathResult {
	n := g.NumNodes()
	rec := newRecorder(g, start, goal, cfg)
	parent := newParents(n)
	costSoFar := newCosts(n)
	finalized := make([]bool, n)

	pq := datastructure.NewMinHeap[int32]()
	costSoFar[start] = 0
	pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: heuristic(start), Item: start})

	found := false
	var expanded []int32
	for pq.Size() > 0 {
		current, _ := pq.ExtractMin()
		curr := current.Item
		if finalized[curr] {
			continue
		}
		finalized[curr] = true
		rec.visit(curr)
		shouldRecord := rec.finalize(curr)

		if curr == goal {
			rec.record(curr, heapFrontier(pq, rec.sampleSize(pq.Size()), finalized), nil)
			found = true
			break
		}

		expanded = expanded[:0]
		for _, edge := range g.GetNodeOutEdges(curr) {
			next := edge.ToNodeIDX
			if finalized[next] {
				continue
			}

			newCost := costSoFar[curr] + edge.Weight
			if newCost < costSoFar[next] {
				costSoFar[next] = newCost
				parent[next] = curr
				pq.Insert(datastructure.PriorityQueueNode[int32]{Rank: newCost + heuristic(next), Item: next})
				if shouldRecord {
					expanded = append(expanded, next)
				}
			}
		}

		if shouldRecord {
			rec.record(curr, heapFrontier(pq, rec.sampleSize(pq.Size()), finalized), expanded)
		}
	}

	return rec.result(parent, found)
}

// heapFrontier lists up to k distinct, not yet finalized nodes in pop order.
func heapFrontier(pq *datastructure.MinHeap[int32], k int, finalized []bool) []int32 {
	seen := make(map[int32]struct{}, k)
	entries := pq.Smallest(k, func(idx int32) bool {
		if finalized[idx] {
			return false
		}
		if _, ok := seen[idx]; ok {
			return false
		}
		seen[idx] = struct{}{}
		return true
	})

	frontier := make([]int32, len(entries))
	for i, e := range entries {
		frontier[i] = e.Item
	}
	return frontier
}
