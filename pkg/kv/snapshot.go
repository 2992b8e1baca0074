package kv

import (
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
)

const snapshotVersion = 2

// graphSnapshot is the columnar form of a Graph: node columns plus out edges in
// compressed sparse row order.
type graphSnapshot struct {
	IDs      []string
	Lats     []float64
	Lons     []float64
	FirstOut []int32
	Heads    []int32
	Weights  []float64
	HasBBox  bool
	MinLat   float64
	MaxLat   float64
	MinLon   float64
	MaxLon   float64
}

type snapshotMeta struct {
	Version    uint32
	Chunks     uint32
	Nodes      uint32
	Edges      uint32
	Size       uint64
	Generation uint64
}

// consistent reports whether Chunks is exactly the number of chunkSize pieces Size splits into.
func (m snapshotMeta) consistent() bool {
	want := m.Size / chunkSize
	if m.Size%chunkSize != 0 {
		want++
	}
	return m.Size > 0 && uint64(m.Chunks) == want
}

func newGraphSnapshot(g *datastructure.Graph) graphSnapshot {
	n := g.NumNodes()
	s := graphSnapshot{
		IDs:      make([]string, n),
		Lats:     make([]float64, n),
		Lons:     make([]float64, n),
		FirstOut: make([]int32, n+1),
		Heads:    make([]int32, 0, g.NumEdges()),
		Weights:  make([]float64, 0, g.NumEdges()),
	}
	for i, node := range g.Nodes() {
		s.IDs[i] = node.ID
		s.Lats[i] = node.Lat
		s.Lons[i] = node.Lon
		s.FirstOut[i] = int32(len(s.Heads))
		for _, e := range g.GetNodeOutEdges(int32(i)) {
			s.Heads = append(s.Heads, e.ToNodeIDX)
			s.Weights = append(s.Weights, e.Weight)
		}
	}
	s.FirstOut[n] = int32(len(s.Heads))

	if bbox, ok := g.BoundingBox(); ok {
		s.HasBBox = true
		s.MinLat, s.MaxLat, s.MinLon, s.MaxLon = bbox.MinLat, bbox.MaxLat, bbox.MinLon, bbox.MaxLon
	}
	return s
}

func (s graphSnapshot) toGraph() (*datastructure.Graph, error) {
	n := len(s.IDs)
	if len(s.Lats) != n || len(s.Lons) != n || len(s.FirstOut) != n+1 || len(s.Heads) != len(s.Weights) {
		return nil, fmt.Errorf("%w: column lengths differ", ErrCorruptSnapshot)
	}

	nodes := make([]datastructure.Node, n)
	for i := range nodes {
		nodes[i] = datastructure.Node{ID: s.IDs[i], Lat: s.Lats[i], Lon: s.Lons[i]}
	}

	edges := make([]datastructure.RawEdge, 0, len(s.Heads))
	for from := 0; from < n; from++ {
		lo, hi := s.FirstOut[from], s.FirstOut[from+1]
		if lo < 0 || hi < lo || int(hi) > len(s.Heads) {
			return nil, fmt.Errorf("%w: bad offsets for node %d", ErrCorruptSnapshot, from)
		}
		for e := lo; e < hi; e++ {
			head := s.Heads[e]
			if head < 0 || int(head) >= n {
				return nil, fmt.Errorf("%w: edge head %d out of range", ErrCorruptSnapshot, head)
			}
			edges = append(edges, datastructure.RawEdge{From: s.IDs[from], To: s.IDs[head], Weight: &s.Weights[e]})
		}
	}

	var bbox *datastructure.BoundingBox
	if s.HasBBox {
		bbox = &datastructure.BoundingBox{MinLat: s.MinLat, MaxLat: s.MaxLat, MinLon: s.MinLon, MaxLon: s.MaxLon}
	}
	return datastructure.NewGraph(nodes, edges, bbox)
}

func encode[T any](v T) ([]byte, error) {
	return binary.Marshal(v)
}

func decode[T any](bb []byte) (T, error) {
	var v T
	err := binary.Unmarshal(bb, &v)
	return v, err
}

func compress(bb []byte) ([]byte, error) {
	var bbCompressed []byte
	bbCompressed, err := zstd.Compress(bbCompressed, bb)
	if err != nil {
		return []byte{}, err
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	var bb []byte
	bb, err := zstd.Decompress(bb, bbCompressed)
	if err != nil {
		return []byte{}, err
	}

	return bb, nil
}
