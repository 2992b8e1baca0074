package service

import (
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
)

// RouteGeometry returns the coordinates of the full node path with Douglas-Peucker
// simplification applied, so long routes stay cheap to encode even when the replay path
// is truncated.
func RouteGeometry(g *datastructure.Graph, nodePath []string) []datastructure.Coordinate {
	lats := make([]float64, 0, len(nodePath))
	lons := make([]float64, 0, len(nodePath))
	for _, id := range nodePath {
		n, ok := g.GetNodeByID(id)
		if !ok {
			continue
		}
		lats = append(lats, n.Lat)
		lons = append(lons, n.Lon)
	}

	keep := geo.SimplifyLine(lats, lons, geo.DouglasPeuckerToleranceM)
	coords := make([]datastructure.Coordinate, len(keep))
	for i, k := range keep {
		coords[i] = datastructure.NewCoordinate(lats[k], lons[k])
	}
	return coords
}
