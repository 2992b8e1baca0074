package routingalgorithm

import "github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"

// breadthFirstSearch expands nodes in FIFO order, ignoring weights, and stops the first
// time goal is dequeued. The path has the fewest edges; its reported distance is still
// the sum of its edge weights. A node counts as visited as soon as it is discovered.
func breadthFirstSearch(g *datastructure.Graph, start, goal int32, cfg SamplingConfig) PathResult {
	rec := newRecorder(g, start, goal, cfg)
	parent := newParents(g.NumNodes())
	discovered := make([]bool, g.NumNodes())

	queue := datastructure.NewQueue[int32]()
	queue.Push(start)
	discovered[start] = true
	rec.visit(start)

	found := false
	var expanded []int32
	for queue.Size() > 0 {
		curr, _ := queue.Pop()
		shouldRecord := rec.finalize(curr)

		if curr == goal {
			rec.record(curr, queue.Front(rec.sampleSize(queue.Size())), nil)
			found = true
			break
		}

		expanded = expanded[:0]
		for _, edge := range g.GetNodeOutEdges(curr) {
			next := edge.ToNodeIDX
			if discovered[next] {
				continue
			}
			discovered[next] = true
			parent[next] = curr
			queue.Push(next)
			if shouldRecord {
				expanded = append(expanded, next)
			}
			rec.visit(next)
		}

		if shouldRecord {
			rec.record(curr, queue.Front(rec.sampleSize(queue.Size())), expanded)
		}
	}

	return rec.result(parent, found)
}
