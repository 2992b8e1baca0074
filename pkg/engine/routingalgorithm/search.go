package routingalgorithm

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/muradnuriyev/path-finder-visualizer/pkg/datastructure"
)

type Strategy int

const (
	BFS Strategy = iota
	Dijkstra
	AStar
)

var ErrUnknownStrategy = errors.New("unknown search strategy")

func (s Strategy) String() string {
	switch s {
	case BFS:
		return "bfs"
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "bfs":
		return BFS, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a_star":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// SamplingConfig bounds the replay trace. RecordEvery below 1 records every
// finalization; any other field at or below zero means no limit.
type SamplingConfig struct {
	RecordEvery        int
	FrontierSampleSize int
	MaxPathPoints      int
	MaxSteps           int
	MaxStepNodeIDs     int
	MaxVisitedOrder    int
}

const (
	defaultTargetSteps        = 2000
	defaultFrontierSampleSize = 50
	defaultMaxPathPoints      = 20000
	defaultMaxSteps           = 1500
	defaultMaxStepNodeIDs     = 40000
	defaultMaxVisitedOrder    = 20000
)

// RecordEveryFor spreads roughly targetSteps recorded steps over a graph of nodeCount nodes.
func RecordEveryFor(nodeCount, targetSteps int) int {
	if targetSteps <= 0 {
		targetSteps = defaultTargetSteps
	}
	every := (nodeCount + targetSteps - 1) / targetSteps
	return max(1, every)
}

func DefaultSamplingConfig(nodeCount int) SamplingConfig {
	return SamplingConfig{
		RecordEvery:        RecordEveryFor(nodeCount, defaultTargetSteps),
		FrontierSampleSize: defaultFrontierSampleSize,
		MaxPathPoints:      defaultMaxPathPoints,
		MaxSteps:           defaultMaxSteps,
		MaxStepNodeIDs:     defaultMaxStepNodeIDs,
		MaxVisitedOrder:    defaultMaxVisitedOrder,
	}
}

// SearchStep is one recorded finalization. Expanded holds the neighbours whose best known
// cost improved while Current was expanded, in discovery order.
type SearchStep struct {
	Current        string   `json:"current"`
	FrontierSample []string `json:"frontier"`
	VisitedCount   int      `json:"visitedCount"`
	Expanded       []string `json:"expanded"`
}

// PathResult is the outcome of one search. An unreachable goal is reported with an
// empty Path and Distance = +Inf, never as an error.
type PathResult struct {
	Start        string       `json:"startNode"`
	Goal         string       `json:"goalNode"`
	Path         []string     `json:"nodePath"`
	Steps        []SearchStep `json:"steps"`
	VisitedOrder []string     `json:"visitedOrder"`
	Distance     float64      `json:"distance"`
	FallbackUsed bool         `json:"fallbackUsed"`
}

func (r PathResult) Found() bool {
	return len(r.Path) > 0
}

// Search runs strategy from startID to goalID on g. g is only read, so concurrent
// searches on the same graph are safe.
func Search(g *datastructure.Graph, startID, goalID string, strategy Strategy, cfg SamplingConfig) (PathResult, error) {
	if g.NumNodes() == 0 {
		return PathResult{}, datastructure.ErrEmptyGraph
	}
	start, ok := g.GetNodeIDX(startID)
	if !ok {
		return PathResult{}, fmt.Errorf("%w: start %s", datastructure.ErrNodeNotFound, startID)
	}
	goal, ok := g.GetNodeIDX(goalID)
	if !ok {
		return PathResult{}, fmt.Errorf("%w: goal %s", datastructure.ErrNodeNotFound, goalID)
	}

	switch strategy {
	case BFS:
		return breadthFirstSearch(g, start, goal, cfg), nil
	case Dijkstra:
		return shortestPathDijkstra(g, start, goal, cfg), nil
	case AStar:
		return shortestPathAStar(g, start, goal, cfg), nil
	default:
		return PathResult{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

// SearchWithFallback runs Search and, when the directed graph has no path, retries the
// same strategy on g.Undirected(). FallbackUsed reports whether the retry produced the path.
func SearchWithFallback(g *datastructure.Graph, startID, goalID string, strategy Strategy, cfg SamplingConfig) (PathResult, error) {
	result, err := Search(g, startID, goalID, strategy, cfg)
	if err != nil || result.Found() {
		return result, err
	}

	retry, err := Search(g.Undirected(), startID, goalID, strategy, cfg)
	if err != nil {
		return PathResult{}, err
	}
	if !retry.Found() {
		return result, nil
	}
	retry.FallbackUsed = true
	return retry, nil
}

func noPath(start, goal string) PathResult {
	return PathResult{
		Start:        start,
		Goal:         goal,
		Path:         []string{},
		Steps:        []SearchStep{},
		VisitedOrder: []string{},
		Distance:     math.Inf(1),
	}
}
