package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
)

// Serialize emits one ComponentSpec per component in insertion order. Task
// fields are set only when a task is assigned and the system name only when
// a group label is set.
func (g *Graph) Serialize() *config.Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := &config.Graph{
		Name:       g.name,
		Components: make([]*config.ComponentSpec, 0, len(g.order)),
	}
	for _, name := range g.order {
		c := g.nodes[name].component
		spec := &config.ComponentSpec{
			Name:                name,
			ConnectedComponents: c.Links(),
		}
		if spec.ConnectedComponents == nil {
			spec.ConnectedComponents = []string{}
		}
		if c.HasTask() {
			spec.Attributes.Task = c.Task.Name()
			spec.Attributes.TaskArguments = c.Task.Arguments()
		}
		spec.Attributes.SystemName = c.GroupLabel
		out.Components = append(out.Components, spec)
	}
	return out
}

// Deserialize adds every component of cg through AddComponent, using only its
// own connected components as successors. The resulting edge set does not
// depend on declaration order.
func (g *Graph) Deserialize(ctx context.Context, cg *config.Graph) error {
	if cg == nil {
		return nil
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Deserializing killweb.", "name", cg.Name, "components", len(cg.Components))

	g.SetName(cg.Name)
	for _, spec := range cg.Components {
		if err := g.AddComponent(ctx, spec.Name, spec.ConnectedComponents, nil, spec.Attributes.ToMap()); err != nil {
			return fmt.Errorf("failed to load component %q: %w", spec.Name, err)
		}
	}
	return nil
}
