package graph

import (
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/killweb/internal/component"
	"github.com/specialistvlad/killweb/internal/task"
)

// TaskFactory instantiates tasks by name. *registry.Registry implements it.
type TaskFactory interface {
	CreateTask(name string, args task.Arguments) (task.Task, error)
}

// entry is a vertex: the component plus its free-form node attributes.
type entry struct {
	component *component.Component
	attrs     map[string]any
}

// Graph is the directed graph of components.
type Graph struct {
	mu      sync.RWMutex
	name    string
	factory TaskFactory

	// order holds component names in insertion order.
	order []string
	nodes map[string]*entry
	// edges maps from → to → number of occurrences of to in from's adjacency.
	edges map[string]map[string]int
	// preds maps to → set of from.
	preds map[string]map[string]struct{}
}

// New creates an empty graph. factory may be nil when no task attributes are
// ever applied.
func New(factory TaskFactory) *Graph {
	return &Graph{
		factory: factory,
		nodes:   make(map[string]*entry),
		edges:   make(map[string]map[string]int),
		preds:   make(map[string]map[string]struct{}),
	}
}

// Name returns the killweb name used when serializing.
func (g *Graph) Name() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.name
}

// SetName sets the killweb name used when serializing.
func (g *Graph) SetName(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.name = name
}

// ensure returns the entry for name, creating an empty component if absent.
// The caller must hold the write lock.
func (g *Graph) ensure(name string) *entry {
	if e, ok := g.nodes[name]; ok {
		return e
	}
	e := &entry{
		component: component.New(name),
		attrs:     make(map[string]any),
	}
	g.nodes[name] = e
	g.order = append(g.order, name)
	return e
}

// link adds one occurrence of from→to. The caller must hold the write lock
// and both vertices must exist.
func (g *Graph) link(from, to string) {
	g.nodes[from].component.AppendLink(to)
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]int)
	}
	g.edges[from][to]++
	if g.preds[to] == nil {
		g.preds[to] = make(map[string]struct{})
	}
	g.preds[to][from] = struct{}{}
}

// dropOutgoing deletes every outgoing edge of name and clears its adjacency.
// The caller must hold the write lock.
func (g *Graph) dropOutgoing(name string) {
	for to := range g.edges[name] {
		delete(g.preds[to], name)
	}
	delete(g.edges, name)
	g.nodes[name].component.OutgoingLinks = nil
}

// distinctLinks returns the adjacency of c without repeats, first occurrence
// order.
func distinctLinks(c *component.Component) []string {
	seen := make(map[string]struct{}, len(c.OutgoingLinks))
	out := make([]string, 0, len(c.OutgoingLinks))
	for _, l := range c.OutgoingLinks {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

func copyAttrs(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	maps.Copy(out, m)
	return out
}

func (g *Graph) orderedSubset(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for _, name := range g.order {
		if _, ok := set[name]; ok {
			out = append(out, name)
		}
	}
	return slices.Clip(out)
}
