package service

import (
	"sort"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/uber/h3-go/v4"
)

// HeatMapResolution is the H3 resolution of visited heat map cells (~0.1 km2).
const HeatMapResolution = 9

type HeatCell struct {
	Cell  string `json:"cell"`
	Count int    `json:"count"`
}

// VisitedHeatMap counts visited nodes per H3 cell, busiest cells first.
func VisitedHeatMap(g *datastructure.Graph, visited []string) []HeatCell {
	counts := make(map[h3.Cell]int)
	for _, id := range visited {
		node, ok := g.GetNodeByID(id)
		if !ok {
			continue
		}
		cell := h3.LatLngToCell(h3.NewLatLng(node.Lat, node.Lon), HeatMapResolution)
		counts[cell]++
	}

	cells := make([]HeatCell, 0, len(counts))
	for cell, count := range counts {
		cells = append(cells, HeatCell{Cell: cell.String(), Count: count})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		return cells[i].Cell < cells[j].Cell
	})
	return cells
}
