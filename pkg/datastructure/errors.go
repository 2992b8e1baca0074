package datastructure

import "errors"

var (
	// ErrEmptyGraph is returned when a graph without nodes is used for snapping or searching.
	ErrEmptyGraph = errors.New("graph has no nodes")

	// ErrNodeNotFound is returned when a start or goal id is not part of the graph.
	ErrNodeNotFound = errors.New("node not found in graph")

	// ErrInvalidEdgeWeight is returned by NewGraph for negative or non-finite weights.
	ErrInvalidEdgeWeight = errors.New("edge weight must be finite and non-negative")

	// ErrDuplicateNodeID is returned by NewGraph when two nodes share an id.
	ErrDuplicateNodeID = errors.New("duplicate node id")
)
