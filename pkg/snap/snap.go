package snap

import (
	"github.com/dhconnelly/rtreego"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	leafTolerance    = 1e-10
)

type nodeLeaf struct {
	idx   int32
	bound rtreego.Rect
}

func (l *nodeLeaf) Bounds() rtreego.Rect {
	return l.bound
}

// NodeSnapper answers nearest node queries through an r-tree over node coordinates.
// Answers are identical to NearestNode, including tie breaking.
type NodeSnapper struct {
	g     *datastructure.Graph
	rtree *rtreego.Rtree
}

func NewNodeSnapper(g *datastructure.Graph) *NodeSnapper {
	nodes := g.Nodes()
	leaves := make([]rtreego.Spatial, len(nodes))
	for i, n := range nodes {
		leaves[i] = &nodeLeaf{
			idx:   int32(i),
			bound: rtreego.Point{n.Lat, n.Lon}.ToRect(leafTolerance),
		}
	}

	return &NodeSnapper{
		g:     g,
		rtree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, leaves...),
	}
}

func (ns *NodeSnapper) Graph() *datastructure.Graph {
	return ns.g
}

// SnapToNode returns the graph node closest to p.
//
// The r-tree nearest neighbour is planar in degrees, so it only yields an upper bound d.
// Every node within great-circle distance d lies inside SnapSearchWindow(p, d); those
// candidates are compared exactly.
func (ns *NodeSnapper) SnapToNode(p datastructure.Coordinate) (Nearest, error) {
	if ns.g.NumNodes() == 0 {
		return Nearest{}, datastructure.ErrEmptyGraph
	}

	guess, ok := ns.rtree.NearestNeighbor(rtreego.Point{p.Lat, p.Lon}).(*nodeLeaf)
	if !ok {
		return NearestNode(ns.g, p)
	}
	guessNode := ns.g.GetNode(guess.idx)
	upper := geo.CalculateHaversineDistance(p.Lat, p.Lon, guessNode.Lat, guessNode.Lon)

	window, ok := geo.SnapSearchWindow(p.Lat, p.Lon, upper)
	if !ok {
		return NearestNode(ns.g, p)
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{window.MinLat, window.MinLon},
		[]float64{window.MaxLat - window.MinLat, window.MaxLon - window.MinLon},
	)
	if err != nil {
		return NearestNode(ns.g, p)
	}

	best := Nearest{ID: guessNode.ID, Distance: upper, idx: guess.idx}
	for _, obj := range ns.rtree.SearchIntersect(rect) {
		leaf := obj.(*nodeLeaf)
		n := ns.g.GetNode(leaf.idx)
		d := geo.CalculateHaversineDistance(p.Lat, p.Lon, n.Lat, n.Lon)
		if d < best.Distance || (d == best.Distance && leaf.idx < best.idx) {
			best = Nearest{ID: n.ID, Distance: d, idx: leaf.idx}
		}
	}
	return best, nil
}
