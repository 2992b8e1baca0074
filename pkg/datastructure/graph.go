package datastructure

import (
	"fmt"
	"math"
	"sync"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{Lat: lat, Lon: lon}
}

type Node struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (n Node) Coordinate() Coordinate {
	return Coordinate{Lat: n.Lat, Lon: n.Lon}
}

type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// RawEdge is a directed edge as supplied by a graph source. A nil Weight is
// replaced by the haversine distance between the endpoints.
type RawEdge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Weight *float64 `json:"weight,omitempty"`
}

// EdgePair is one outgoing edge of a node in the arena.
type EdgePair struct {
	ToNodeIDX int32
	Weight    float64
}

// Neighbor is the id based view of an EdgePair.
type Neighbor struct {
	ID     string
	Weight float64
}

// Graph is an immutable directed graph. Node ids are interned into dense indices;
// out edges are stored in compressed sparse row form (firstOut[i]..firstOut[i+1]).
// A Graph is safe for concurrent readers.
type Graph struct {
	nodes    []Node
	nodeIDX  map[string]int32
	firstOut []int32
	edges    []EdgePair
	bbox     *BoundingBox

	undirectedOnce sync.Once
	undirected     *Graph
}

// NewGraph builds a graph from node and edge lists. Edges with an unknown endpoint are
// skipped, repeated (from, to) pairs keep the first edge. bbox may be nil, in which case
// it is derived from the node coordinates.
func NewGraph(nodes []Node, edges []RawEdge, bbox *BoundingBox) (*Graph, error) {
	g := &Graph{
		nodes:   make([]Node, len(nodes)),
		nodeIDX: make(map[string]int32, len(nodes)),
	}

	for i, n := range nodes {
		if _, ok := g.nodeIDX[n.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		g.nodes[i] = n
		g.nodeIDX[n.ID] = int32(i)
	}

	adj := make([][]EdgePair, len(nodes))
	seen := make(map[uint64]struct{}, len(edges))

	for _, e := range edges {
		from, okFrom := g.nodeIDX[e.From]
		to, okTo := g.nodeIDX[e.To]
		if !okFrom || !okTo {
			continue
		}

		var weight float64
		if e.Weight != nil {
			weight = *e.Weight
		} else {
			a, b := g.nodes[from], g.nodes[to]
			weight = geo.CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
		}
		if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
			return nil, fmt.Errorf("%w: %s -> %s weight=%v", ErrInvalidEdgeWeight, e.From, e.To, weight)
		}

		key := pairKey(from, to)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		adj[from] = append(adj[from], EdgePair{ToNodeIDX: to, Weight: weight})
	}

	g.firstOut, g.edges = flatten(adj)

	if bbox != nil {
		b := *bbox
		g.bbox = &b
	} else if len(nodes) > 0 {
		g.bbox = boundOfNodes(nodes)
	}

	return g, nil
}

func pairKey(from, to int32) uint64 {
	return uint64(uint32(from))<<32 | uint64(uint32(to))
}

func flatten(adj [][]EdgePair) ([]int32, []EdgePair) {
	firstOut := make([]int32, len(adj)+1)
	total := 0
	for i, out := range adj {
		firstOut[i] = int32(total)
		total += len(out)
	}
	firstOut[len(adj)] = int32(total)

	edges := make([]EdgePair, 0, total)
	for _, out := range adj {
		edges = append(edges, out...)
	}
	return firstOut, edges
}

func boundOfNodes(nodes []Node) *BoundingBox {
	lats := make([]float64, len(nodes))
	lons := make([]float64, len(nodes))
	for i, n := range nodes {
		lats[i] = n.Lat
		lons[i] = n.Lon
	}
	b, ok := geo.BoundOf(lats, lons)
	if !ok {
		return nil
	}
	return &BoundingBox{MinLat: b.MinLat, MaxLat: b.MaxLat, MinLon: b.MinLon, MaxLon: b.MaxLon}
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return len(g.edges)
}

func (g *Graph) GetNode(idx int32) Node {
	return g.nodes[idx]
}

// Nodes returns the node arena in construction order. Callers must not modify it.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

func (g *Graph) GetNodeIDX(id string) (int32, bool) {
	idx, ok := g.nodeIDX[id]
	return idx, ok
}

func (g *Graph) GetNodeByID(id string) (Node, bool) {
	idx, ok := g.nodeIDX[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[idx], true
}

// GetNodeOutEdges returns the out edges of a node index. The slice aliases graph storage.
func (g *Graph) GetNodeOutEdges(idx int32) []EdgePair {
	return g.edges[g.firstOut[idx]:g.firstOut[idx+1]]
}

// Neighbors returns the out edges of id in insertion order. Unknown ids and leaves
// both yield an empty list.
func (g *Graph) Neighbors(id string) []Neighbor {
	idx, ok := g.nodeIDX[id]
	if !ok {
		return []Neighbor{}
	}
	out := g.GetNodeOutEdges(idx)
	neighbors := make([]Neighbor, len(out))
	for i, e := range out {
		neighbors[i] = Neighbor{ID: g.nodes[e.ToNodeIDX].ID, Weight: e.Weight}
	}
	return neighbors
}

// EdgeWeight returns the weight of the edge from -> to.
func (g *Graph) EdgeWeight(from, to int32) (float64, bool) {
	for _, e := range g.GetNodeOutEdges(from) {
		if e.ToNodeIDX == to {
			return e.Weight, true
		}
	}
	return 0, false
}

func (g *Graph) BoundingBox() (BoundingBox, bool) {
	if g.bbox == nil {
		return BoundingBox{}, false
	}
	return *g.bbox, true
}

// Undirected returns a view of g where every edge u->v also exists as v->u with the same
// weight, unless g already has v->u. The node arena is shared with g. The view is
// built once and reused.
func (g *Graph) Undirected() *Graph {
	g.undirectedOnce.Do(func() {
		adj := make([][]EdgePair, len(g.nodes))
		seen := make(map[uint64]struct{}, 2*len(g.edges))

		addEdge := func(from, to int32, weight float64) {
			key := pairKey(from, to)
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}
			adj[from] = append(adj[from], EdgePair{ToNodeIDX: to, Weight: weight})
		}

		// original edges first so a reverse never shadows an existing directed weight
		for from := int32(0); from < int32(len(g.nodes)); from++ {
			for _, e := range g.GetNodeOutEdges(from) {
				addEdge(from, e.ToNodeIDX, e.Weight)
			}
		}
		for from := int32(0); from < int32(len(g.nodes)); from++ {
			for _, e := range g.GetNodeOutEdges(from) {
				addEdge(e.ToNodeIDX, from, e.Weight)
			}
		}

		u := &Graph{
			nodes:   g.nodes,
			nodeIDX: g.nodeIDX,
			bbox:    g.bbox,
		}
		u.firstOut, u.edges = flatten(adj)
		// a symmetric graph is its own undirected view
		u.undirectedOnce.Do(func() { u.undirected = u })
		g.undirected = u
	})
	return g.undirected
}
