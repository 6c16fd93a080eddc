package graph

// NodeView is the read-only projection of one component for presentation.
type NodeView struct {
	Name          string         `json:"name"`
	Task          string         `json:"task,omitempty"`
	TaskArguments map[string]any `json:"task_arguments,omitempty"`
	Group         string         `json:"group,omitempty"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	Links         []string       `json:"links"`
	InDegree      int            `json:"in_degree"`
	OutDegree     int            `json:"out_degree"`
}

// View is a snapshot of the whole graph for an external renderer.
type View struct {
	Name  string     `json:"name,omitempty"`
	Nodes []NodeView `json:"nodes"`
	Edges []Edge     `json:"edges"`
}

// Node returns the view of a single component.
func (v *View) Node(name string) (NodeView, bool) {
	for _, n := range v.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return NodeView{}, false
}

// View returns a consistent snapshot of the node set, edge set and per-node
// attributes.
func (g *Graph) View() *View {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v := &View{
		Name:  g.name,
		Nodes: make([]NodeView, 0, len(g.order)),
		Edges: []Edge{},
	}
	for _, name := range g.order {
		e := g.nodes[name]
		c := e.component
		nv := NodeView{
			Name:      name,
			Group:     c.GroupLabel,
			Links:     c.Links(),
			InDegree:  len(g.preds[name]),
			OutDegree: len(g.edges[name]),
		}
		if nv.Links == nil {
			nv.Links = []string{}
		}
		if c.HasTask() {
			nv.Task = c.Task.Name()
			nv.TaskArguments = c.Task.Arguments()
		}
		if len(e.attrs) > 0 {
			nv.Attributes = copyAttrs(e.attrs)
		}
		v.Nodes = append(v.Nodes, nv)

		for _, to := range distinctLinks(c) {
			v.Edges = append(v.Edges, Edge{From: name, To: to})
		}
	}
	return v
}
