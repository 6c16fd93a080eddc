package config

import "maps"

// Attribute keys recognised on a component specification.
const (
	AttrTask          = "task"
	AttrTaskArguments = "task_arguments"
	AttrSystemName    = "system_name"
)

// Model is the unified, format-agnostic representation of a killweb file.
type Model struct {
	Graphs []*Graph
}

// First returns the first graph of the model. Sibling graphs are ignored when
// a killweb is loaded.
func (m *Model) First() (*Graph, bool) {
	if m == nil || len(m.Graphs) == 0 {
		return nil, false
	}
	return m.Graphs[0], true
}

// Graph is one named killweb: its components in declaration order.
type Graph struct {
	Name       string
	Components []*ComponentSpec
}

// Component returns the specification declared under name.
func (g *Graph) Component(name string) (*ComponentSpec, bool) {
	for _, c := range g.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ComponentSpec is the declaration of a single component.
type ComponentSpec struct {
	Name                string
	Attributes          Attributes
	ConnectedComponents []string
}

// Attributes are the optional settings of a component.
type Attributes struct {
	Task          string
	TaskArguments map[string]any
	SystemName    string
	// Extra holds any other key. It is stored as a free-form node attribute.
	Extra map[string]any
}

// HasTask reports whether a task is declared.
func (a Attributes) HasTask() bool {
	return a.Task != ""
}

// ToMap flattens the attributes into the key/value form accepted by the
// graph's AddComponent.
func (a Attributes) ToMap() map[string]any {
	out := make(map[string]any, len(a.Extra)+3)
	maps.Copy(out, a.Extra)
	if a.HasTask() {
		out[AttrTask] = a.Task
		args := make(map[string]any, len(a.TaskArguments))
		maps.Copy(args, a.TaskArguments)
		out[AttrTaskArguments] = args
	}
	if a.SystemName != "" {
		out[AttrSystemName] = a.SystemName
	}
	return out
}

// AttributesFromMap splits a decoded attribute object into its known fields
// and Extra. A task_arguments value that is not an object is kept in Extra.
func AttributesFromMap(m map[string]any) Attributes {
	var a Attributes
	for k, v := range m {
		switch k {
		case AttrTask:
			if s, ok := v.(string); ok {
				a.Task = s
				continue
			}
		case AttrTaskArguments:
			if args, ok := v.(map[string]any); ok {
				a.TaskArguments = args
				continue
			}
		case AttrSystemName:
			if s, ok := v.(string); ok {
				a.SystemName = s
				continue
			}
		}
		if a.Extra == nil {
			a.Extra = make(map[string]any)
		}
		a.Extra[k] = v
	}
	return a
}
