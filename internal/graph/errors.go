package graph

import "errors"

var (
	// ErrComponentNotFound is returned when an operation names a component
	// that is not in the graph.
	ErrComponentNotFound = errors.New("component not found")
	// ErrInvalidName is returned for empty names and names containing the
	// path key delimiter.
	ErrInvalidName = errors.New("invalid component name")
	// ErrNoFactory is returned when a task is requested from a graph built
	// without a TaskFactory.
	ErrNoFactory = errors.New("graph has no task factory")
)
