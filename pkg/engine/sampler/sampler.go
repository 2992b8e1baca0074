// Package sampler bounds a search result for a visualizer. It truncates the path, the
// visit order and the step trace, and resolves coordinates for only the node ids that
// survive truncation.
package sampler

import (
	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
	"github.com/muradnuriyev/path-finder-visualizer/pkg/engine/routingalgorithm"
)

type Payload struct {
	Path         []datastructure.Coordinate    `json:"path"`
	NodePath     []string                      `json:"nodePath"`
	Steps        []routingalgorithm.SearchStep `json:"steps"`
	VisitedOrder []string                      `json:"visitedOrder"`
	StepNodes    []datastructure.Node          `json:"stepNodes"`
	StartNode    string                        `json:"startNode"`
	GoalNode     string                        `json:"goalNode"`
	Distance     float64                       `json:"distance"`
	Visited      int                           `json:"visited"`
	FallbackUsed bool                          `json:"fallbackUsed"`
	Truncated    bool                          `json:"truncated"`
}

// Sample applies the limits of cfg to res. Limits at or below zero are treated as
// unlimited. Truncated reports whether anything was cut.
func Sample(res routingalgorithm.PathResult, g *datastructure.Graph, cfg routingalgorithm.SamplingConfig) Payload {
	nodePath, cutPath := head(res.Path, cfg.MaxPathPoints)
	visitedOrder, cutVisited := head(res.VisitedOrder, cfg.MaxVisitedOrder)
	steps, cutSteps := truncateSteps(res.Steps, cfg.MaxSteps, cfg.FrontierSampleSize)

	ids, cutIDs := prioritizedIDs(nodePath, visitedOrder, steps, res.Start, res.Goal, cfg.MaxStepNodeIDs)

	stepNodes := make([]datastructure.Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.GetNodeByID(id); ok {
			stepNodes = append(stepNodes, n)
		}
	}

	path := make([]datastructure.Coordinate, 0, len(nodePath))
	for _, id := range nodePath {
		if n, ok := g.GetNodeByID(id); ok {
			path = append(path, n.Coordinate())
		}
	}

	return Payload{
		Path:         path,
		NodePath:     nodePath,
		Steps:        steps,
		VisitedOrder: visitedOrder,
		StepNodes:    stepNodes,
		StartNode:    res.Start,
		GoalNode:     res.Goal,
		Distance:     res.Distance,
		Visited:      len(res.VisitedOrder),
		FallbackUsed: res.FallbackUsed,
		Truncated:    cutPath || cutVisited || cutSteps || cutIDs,
	}
}

// head returns the first limit entries of s as a fresh slice.
func head[T any](s []T, limit int) ([]T, bool) {
	n := len(s)
	cut := false
	if limit > 0 && limit < n {
		n = limit
		cut = true
	}
	out := make([]T, n)
	copy(out, s[:n])
	return out, cut
}

func truncateSteps(steps []routingalgorithm.SearchStep, maxSteps, frontierSize int) ([]routingalgorithm.SearchStep, bool) {
	kept, cut := head(steps, maxSteps)
	for i, step := range kept {
		frontier, cutFrontier := head(step.FrontierSample, frontierSize)
		expanded, _ := head(step.Expanded, 0)
		kept[i].FrontierSample = frontier
		kept[i].Expanded = expanded
		cut = cut || cutFrontier
	}
	return kept, cut
}

// prioritizedIDs unions path, visit order, step ids, start and goal in that order,
// keeping the first occurrence of each id, and stops once limit ids are collected.
func prioritizedIDs(path, visited []string, steps []routingalgorithm.SearchStep, start, goal string, limit int) ([]string, bool) {
	u := newUnion(limit)
	u.add(path...)
	u.add(visited...)
	for _, step := range steps {
		u.add(step.Current)
		u.add(step.FrontierSample...)
		u.add(step.Expanded...)
	}
	u.add(start, goal)
	return u.ids, u.full
}

type union struct {
	limit int
	seen  map[string]struct{}
	ids   []string
	full  bool
}

func newUnion(limit int) *union {
	return &union{limit: limit, seen: make(map[string]struct{}), ids: make([]string, 0)}
}

func (u *union) add(ids ...string) {
	for _, id := range ids {
		if _, ok := u.seen[id]; ok {
			continue
		}
		if u.limit > 0 && len(u.ids) >= u.limit {
			u.full = true
			return
		}
		u.seen[id] = struct{}{}
		u.ids = append(u.ids, id)
	}
}
