// Package osmparser builds a drivable road graph from OpenStreetMap extracts.
package osmparser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/geo"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/graphdata"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
)

var (
	drivableHighway = map[string]struct{}{
		"motorway":       {},
		"motorway_link":  {},
		"trunk":          {},
		"trunk_link":     {},
		"primary":        {},
		"primary_link":   {},
		"secondary":      {},
		"secondary_link": {},
		"tertiary":       {},
		"tertiary_link":  {},
		"unclassified":   {},
		"residential":    {},
		"living_street":  {},
		"service":        {},
	}

	bannedAccess = map[string]struct{}{
		"no":      {},
		"private": {},
	}
)

// ScannerFunc opens a fresh scanner over the same extract. Parse reads the extract twice.
type ScannerFunc func(ctx context.Context) (osm.Scanner, func() error, error)

type nodeCoord struct {
	lat float64
	lon float64
}

type drivableWay struct {
	nodes    []osm.NodeID
	forward  bool
	backward bool
}

type OsmParser struct {
	logger *slog.Logger
	bbox   *datastructure.BoundingBox

	wayNodeMap map[osm.NodeID]struct{}
	ways       []drivableWay
	coords     map[osm.NodeID]nodeCoord
	nodeOrder  []osm.NodeID
}

// NewOSMParser returns a parser. A non nil bbox keeps only ways with at least one node
// inside it.
func NewOSMParser(logger *slog.Logger, bbox *datastructure.BoundingBox) *OsmParser {
	if logger == nil {
		logger = slog.Default()
	}
	return &OsmParser{
		logger:     logger,
		bbox:       bbox,
		wayNodeMap: make(map[osm.NodeID]struct{}),
		coords:     make(map[osm.NodeID]nodeCoord),
	}
}

// ParseFile reads a .osm.pbf or .osm (xml) extract.
func (p *OsmParser) ParseFile(ctx context.Context, mapFile string) (graphdata.Document, error) {
	open := func(ctx context.Context) (osm.Scanner, func() error, error) {
		f, err := os.Open(mapFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open osm file: %w", err)
		}
		if strings.HasSuffix(mapFile, ".pbf") {
			return osmpbf.New(ctx, f, 1), f.Close, nil
		}
		return osmxml.New(ctx, f), f.Close, nil
	}
	return p.Parse(ctx, open)
}

// Parse collects drivable ways in a first pass and the coordinates of their nodes in a
// second one, then emits one edge per consecutive node pair and allowed direction.
func (p *OsmParser) Parse(ctx context.Context, open ScannerFunc) (graphdata.Document, error) {
	countWays := 0
	err := p.scan(ctx, open, func(o osm.Object) {
		way, ok := o.(*osm.Way)
		if !ok {
			return
		}
		if p.addWay(way) {
			countWays++
			if countWays%50000 == 0 {
				p.logger.Info("reading openstreetmap ways", "count", countWays)
			}
		}
	})
	if err != nil {
		return graphdata.Document{}, err
	}

	err = p.scan(ctx, open, func(o osm.Object) {
		if node, ok := o.(*osm.Node); ok {
			p.addNode(node)
		}
	})
	if err != nil {
		return graphdata.Document{}, err
	}

	doc := p.build()
	p.logger.Info("openstreetmap graph built",
		"ways", countWays, "nodes", len(doc.Nodes), "edges", len(doc.Edges))
	return doc, nil
}

func (p *OsmParser) scan(ctx context.Context, open ScannerFunc, fn func(osm.Object)) error {
	scanner, closeSource, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeSource()
	// must not be parallel
	defer scanner.Close()

	for scanner.Scan() {
		fn(scanner.Object())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan osm: %w", err)
	}
	return nil
}

// addWay keeps way when it is drivable and reports whether it did.
func (p *OsmParser) addWay(way *osm.Way) bool {
	if len(way.Nodes) < 2 {
		return false
	}
	forward, backward, ok := acceptOsmWay(way.Tags)
	if !ok {
		return false
	}

	ids := way.Nodes.NodeIDs()
	for _, id := range ids {
		p.wayNodeMap[id] = struct{}{}
	}
	p.ways = append(p.ways, drivableWay{nodes: ids, forward: forward, backward: backward})
	return true
}

func (p *OsmParser) addNode(node *osm.Node) {
	if _, ok := p.wayNodeMap[node.ID]; !ok {
		return
	}
	if _, ok := p.coords[node.ID]; ok {
		return
	}
	p.coords[node.ID] = nodeCoord{lat: node.Lat, lon: node.Lon}
	p.nodeOrder = append(p.nodeOrder, node.ID)
}

// acceptOsmWay reports whether a way is drivable and in which directions.
// oneway=yes allows only the way direction, oneway=-1 only the reverse.
func acceptOsmWay(tags osm.Tags) (forward, backward, ok bool) {
	if _, drivable := drivableHighway[tags.Find("highway")]; !drivable {
		return false, false, false
	}
	if _, banned := bannedAccess[tags.Find("access")]; banned {
		return false, false, false
	}

	oneway := tags.Find("oneway")
	return oneway != "-1", oneway != "yes", true
}

func (p *OsmParser) insideBBox(id osm.NodeID) bool {
	c, ok := p.coords[id]
	if !ok {
		return false
	}
	b := p.bbox
	return c.lat >= b.MinLat && c.lat <= b.MaxLat && c.lon >= b.MinLon && c.lon <= b.MaxLon
}

func (p *OsmParser) build() graphdata.Document {
	used := make(map[osm.NodeID]struct{})
	seen := make(map[[2]osm.NodeID]struct{})
	edges := make([]datastructure.RawEdge, 0)

	addEdge := func(a, b osm.NodeID, weight float64) {
		key := [2]osm.NodeID{a, b}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		w := weight
		edges = append(edges, datastructure.RawEdge{From: nodeID(a), To: nodeID(b), Weight: &w})
	}

	for _, way := range p.ways {
		if p.bbox != nil && !p.wayInBBox(way) {
			continue
		}
		for i := 0; i+1 < len(way.nodes); i++ {
			a, b := way.nodes[i], way.nodes[i+1]
			ca, okA := p.coords[a]
			cb, okB := p.coords[b]
			if !okA || !okB || a == b {
				continue
			}
			weight := geo.CalculateHaversineDistance(ca.lat, ca.lon, cb.lat, cb.lon)
			if way.forward {
				addEdge(a, b, weight)
			}
			if way.backward {
				addEdge(b, a, weight)
			}
			used[a] = struct{}{}
			used[b] = struct{}{}
		}
	}

	nodes := make([]datastructure.Node, 0, len(used))
	lats := make([]float64, 0, len(used))
	lons := make([]float64, 0, len(used))
	for _, id := range p.nodeOrder {
		if _, ok := used[id]; !ok {
			continue
		}
		c := p.coords[id]
		nodes = append(nodes, datastructure.Node{ID: nodeID(id), Lat: c.lat, Lon: c.lon})
		lats = append(lats, c.lat)
		lons = append(lons, c.lon)
	}

	doc := graphdata.Document{Nodes: nodes, Edges: edges}
	if b, ok := geo.BoundOf(lats, lons); ok {
		doc.BBox = &datastructure.BoundingBox{MinLat: b.MinLat, MaxLat: b.MaxLat, MinLon: b.MinLon, MaxLon: b.MaxLon}
	}
	return doc
}

func (p *OsmParser) wayInBBox(way drivableWay) bool {
	for _, id := range way.nodes {
		if p.insideBBox(id) {
			return true
		}
	}
	return false
}

func nodeID(id osm.NodeID) string {
	return fmt.Sprintf("n%d", id)
}
