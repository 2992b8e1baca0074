package routingalgorithm

import (
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
)

// shortestPathAStar orders the frontier by cost + straight line distance to goal.
// The haversine distance never exceeds a road distance, so the first time goal is popped
// its cost is optimal.
func shortestPathAStar(g *datastructure.Graph, start, goal int32, cfg SamplingConfig) PathResult {
	goalNode := g.GetNode(goal)
	return bestFirstSearch(g, start, goal, cfg, func(idx int32) float64 {
		n := g.GetNode(idx)
		return geo.CalculateHaversineDistance(n.Lat, n.Lon, goalNode.Lat, goalNode.Lon)
	})
}
