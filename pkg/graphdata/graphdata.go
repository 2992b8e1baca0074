// Package graphdata reads and writes the graph.json source format:
//
//	{"nodes":[{"id","lat","lon"}], "edges":[{"from","to","weight"?}], "bbox"?:{...}}
package graphdata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
)

var ErrInvalidDocument = errors.New("invalid graph document")

type Document struct {
	Nodes []datastructure.Node       `json:"nodes"`
	Edges []datastructure.RawEdge    `json:"edges"`
	BBox  *datastructure.BoundingBox `json:"bbox,omitempty"`
}

func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	return doc, nil
}

func Encode(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph document: %w", err)
	}
	return nil
}

// Build turns the document into a Graph. Edges with unknown endpoints are dropped and a
// missing weight becomes the haversine length of the edge.
func (d Document) Build() (*datastructure.Graph, error) {
	return datastructure.NewGraph(d.Nodes, d.Edges, d.BBox)
}

// FromGraph is the inverse of Build. Every edge carries its resolved weight.
func FromGraph(g *datastructure.Graph) Document {
	doc := Document{
		Nodes: append([]datastructure.Node(nil), g.Nodes()...),
		Edges: make([]datastructure.RawEdge, 0, g.NumEdges()),
	}
	for from := int32(0); from < int32(g.NumNodes()); from++ {
		fromID := g.GetNode(from).ID
		for _, e := range g.GetNodeOutEdges(from) {
			weight := e.Weight
			doc.Edges = append(doc.Edges, datastructure.RawEdge{
				From:   fromID,
				To:     g.GetNode(e.ToNodeIDX).ID,
				Weight: &weight,
			})
		}
	}
	if bbox, ok := g.BoundingBox(); ok {
		doc.BBox = &bbox
	}
	return doc
}

func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

func WriteFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create graph file: %w", err)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads path and builds the graph it describes.
func LoadFile(path string) (*datastructure.Graph, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("build graph from %s: %w", path, err)
	}
	return g, nil
}
