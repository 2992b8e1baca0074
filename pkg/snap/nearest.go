package snap

import (
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
)

// Nearest is a snapped node and its great-circle distance (meters) from the query point.
type Nearest struct {
	ID       string  `json:"id"`
	Distance float64 `json:"distance"`
	idx      int32
}

// NearestNode scans every node and returns the closest one to p. Ties keep the node that
// comes first in the graph's node order. It fails only for a graph without nodes.
func NearestNode(g *datastructure.Graph, p datastructure.Coordinate) (Nearest, error) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return Nearest{}, datastructure.ErrEmptyGraph
	}

	best := Nearest{idx: -1}
	for i, n := range nodes {
		d := geo.CalculateHaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon)
		if best.idx == -1 || d < best.Distance {
			best = Nearest{ID: n.ID, Distance: d, idx: int32(i)}
		}
	}
	return best, nil
}
