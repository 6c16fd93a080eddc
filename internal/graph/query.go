package graph

import (
	"slices"

	"github.com/specialistvlad/killweb/internal/component"
)

// Edge is one distinct directed edge.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Has reports whether name is a vertex.
func (g *Graph) Has(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[name]
	return ok
}

// Len returns the number of components.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.order)
}

// Component returns the component stored under name. Callers must not
// mutate it directly; use the graph's mutation methods.
func (g *Graph) Component(name string) (*component.Component, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.nodes[name]
	if !ok {
		return nil, false
	}
	return e.component, true
}

// Names returns every component name in insertion order.
func (g *Graph) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.order)
}

// Edges returns every distinct edge, grouped by source in insertion order
// and then by adjacency order.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Edge
	for _, from := range g.order {
		for _, to := range distinctLinks(g.nodes[from].component) {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// Multiplicity returns how many times from→to was added and not removed.
func (g *Graph) Multiplicity(from, to string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges[from][to]
}

// Successors returns the distinct successors of name in adjacency order.
func (g *Graph) Successors(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.nodes[name]
	if !ok {
		return nil
	}
	return distinctLinks(e.component)
}

// Predecessors returns the distinct predecessors of name in insertion order.
func (g *Graph) Predecessors(name string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.orderedSubset(g.preds[name])
}

// InDegree returns the number of distinct predecessors of name.
func (g *Graph) InDegree(name string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.preds[name])
}

// OutDegree returns the number of distinct successors of name.
func (g *Graph) OutDegree(name string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges[name])
}

// Sources returns the components with in-degree zero, in insertion order.
func (g *Graph) Sources() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, name := range g.order {
		if len(g.preds[name]) == 0 {
			out = append(out, name)
		}
	}
	return out
}

// Sinks returns the components with out-degree zero, in insertion order.
func (g *Graph) Sinks() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, name := range g.order {
		if len(g.edges[name]) == 0 {
			out = append(out, name)
		}
	}
	return out
}

// Attributes returns a copy of the free-form node attributes of name.
func (g *Graph) Attributes(name string) (map[string]any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.nodes[name]
	if !ok {
		return nil, false
	}
	return copyAttrs(e.attrs), true
}

// Invalid returns the components that have no task, in insertion order. A
// graph is ready for simulation when the result is empty.
func (g *Graph) Invalid() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, name := range g.order {
		if !g.nodes[name].component.HasTask() {
			out = append(out, name)
		}
	}
	return out
}
