package component

import (
	"slices"

	"github.com/specialistvlad/killweb/internal/task"
)

// Component is a single vertex in a killweb, representing one capability or
// stage in a kill chain.
type Component struct {
	// Name is the unique, whitespace-trimmed identifier of the component.
	Name string
	// OutgoingLinks lists the components this one points to, in insertion
	// order. The same name may appear more than once.
	OutgoingLinks []string
	// Task is the probabilistic model evaluated once per trial. A component
	// without a task makes its graph invalid for simulation.
	Task task.Task
	// GroupLabel is the optional system the component belongs to.
	GroupLabel string
}

// New creates a component with no links, task or group.
func New(name string) *Component {
	return &Component{Name: name}
}

// AssignTask replaces the component's task.
func (c *Component) AssignTask(t task.Task) {
	c.Task = t
}

// SetGroupLabel sets the system label.
func (c *Component) SetGroupLabel(label string) {
	c.GroupLabel = label
}

// HasTask reports whether a task has been assigned.
func (c *Component) HasTask() bool {
	return c.Task != nil
}

// Links returns a copy of the outgoing adjacency.
func (c *Component) Links() []string {
	return slices.Clone(c.OutgoingLinks)
}

// AppendLink adds to to the end of the adjacency. Duplicates are kept.
func (c *Component) AppendLink(to string) {
	c.OutgoingLinks = append(c.OutgoingLinks, to)
}

// RemoveLink drops the first occurrence of to and reports whether one was found.
func (c *Component) RemoveLink(to string) bool {
	i := slices.Index(c.OutgoingLinks, to)
	if i < 0 {
		return false
	}
	c.OutgoingLinks = slices.Delete(c.OutgoingLinks, i, i+1)
	return true
}

// CountLink returns how many times to appears in the adjacency.
func (c *Component) CountLink(to string) int {
	n := 0
	for _, l := range c.OutgoingLinks {
		if l == to {
			n++
		}
	}
	return n
}
