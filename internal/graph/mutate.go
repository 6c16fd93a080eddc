package graph

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/pathid"
	"github.com/specialistvlad/killweb/internal/task"
)

func normalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if pathid.ContainsDelimiter(name) {
		return "", fmt.Errorf("%w: %q contains the path separator %q", ErrInvalidName, name, pathid.Separator)
	}
	return name, nil
}

func normalizeNames(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		name, err := normalizeName(r)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, nil
}

// AddComponent creates the component name, or reuses it when it already
// exists, and wires it between from and to. Missing peers are created empty.
//
// An existing component's outgoing adjacency is replaced by to; its incoming
// edges are kept. Attributes are applied as described in the package
// documentation; a "task" without "task_arguments", or the reverse, is kept
// as a free-form attribute. Task construction happens before the graph is
// touched, so a factory error leaves the graph unchanged.
func (g *Graph) AddComponent(ctx context.Context, name string, to, from []string, attrs map[string]any) error {
	logger := ctxlog.FromContext(ctx)

	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	if to, err = normalizeNames(to); err != nil {
		return fmt.Errorf("component %q: successor: %w", name, err)
	}
	if from, err = normalizeNames(from); err != nil {
		return fmt.Errorf("component %q: predecessor: %w", name, err)
	}

	_, hasTask := attrs[config.AttrTask]
	_, hasArgs := attrs[config.AttrTaskArguments]
	delegate := hasTask && hasArgs

	var t task.Task
	if delegate {
		t, err = g.buildTask(ctx, name, attrs[config.AttrTask], attrs[config.AttrTaskArguments])
		if err != nil {
			return err
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[name]; exists {
		logger.Debug("Component already exists; replacing its outgoing links.", "component", name, "links", to)
		g.dropOutgoing(name)
	} else {
		logger.Debug("Adding component.", "component", name)
	}
	e := g.ensure(name)

	for _, succ := range to {
		g.ensure(succ)
		g.link(name, succ)
	}
	for _, pred := range from {
		g.ensure(pred)
		g.link(pred, name)
	}

	for k, v := range attrs {
		switch {
		case k == config.AttrTask && delegate:
			e.component.AssignTask(t)
		case k == config.AttrTaskArguments && delegate:
			// consumed by the factory
		case k == config.AttrSystemName:
			e.component.SetGroupLabel(fmt.Sprint(v))
		default:
			e.attrs[k] = v
		}
	}
	return nil
}

// buildTask resolves the task attribute pair through the factory.
func (g *Graph) buildTask(ctx context.Context, component string, rawName, rawArgs any) (task.Task, error) {
	taskName, ok := rawName.(string)
	if !ok {
		return nil, &task.ConfigError{Task: fmt.Sprint(rawName), Key: config.AttrTask, Reason: fmt.Sprintf("task name must be a string, got %T", rawName)}
	}
	args, err := toArguments(taskName, rawArgs)
	if err != nil {
		return nil, err
	}
	if g.factory == nil {
		return nil, ErrNoFactory
	}
	t, err := g.factory.CreateTask(taskName, args)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", component, err)
	}
	if ls, ok := t.(task.LoggerSetter); ok {
		ls.SetLogger(ctxlog.FromContext(ctx))
	}
	return t, nil
}

func toArguments(taskName string, raw any) (task.Arguments, error) {
	switch a := raw.(type) {
	case nil:
		return task.Arguments{}, nil
	case task.Arguments:
		return a.Clone(), nil
	case map[string]any:
		return task.Arguments(a).Clone(), nil
	default:
		return nil, &task.ConfigError{Task: taskName, Key: config.AttrTaskArguments, Reason: fmt.Sprintf("expected an object, got %T", raw)}
	}
}

// AddTask constructs a task through the factory and assigns it to the
// existing component name.
func (g *Graph) AddTask(ctx context.Context, name, taskName string, args task.Arguments) error {
	name = strings.TrimSpace(name)
	if !g.Has(name) {
		return fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}

	t, err := g.buildTask(ctx, name, taskName, args)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.nodes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	e.component.AssignTask(t)
	ctxlog.FromContext(ctx).Debug("Assigned task.", "component", name, "task", taskName)
	return nil
}

// AddEdge appends to to from's adjacency. Repeated calls add repeated links.
func (g *Graph) AddEdge(ctx context.Context, from, to string) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)

	g.mu.Lock()
	defer g.mu.Unlock()
	for _, n := range []string{from, to} {
		if _, ok := g.nodes[n]; !ok {
			return fmt.Errorf("%w: %q", ErrComponentNotFound, n)
		}
	}
	g.link(from, to)
	ctxlog.FromContext(ctx).Debug("Added edge.", "from", from, "to", to, "multiplicity", g.edges[from][to])
	return nil
}

// RemoveComponent deletes name with every incident edge and strips it from
// each predecessor's adjacency. Removing an unknown component does nothing.
func (g *Graph) RemoveComponent(ctx context.Context, name string) {
	logger := ctxlog.FromContext(ctx)
	name = strings.TrimSpace(name)

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.nodes[name]; !ok {
		logger.Debug("Component to remove does not exist.", "component", name)
		return
	}

	for pred := range g.preds[name] {
		c := g.nodes[pred].component
		for range g.edges[pred][name] {
			if !c.RemoveLink(name) {
				panic(fmt.Sprintf("graph: adjacency of %q does not list successor %q", pred, name))
			}
		}
		delete(g.edges[pred], name)
	}
	delete(g.preds, name)
	for to := range g.edges[name] {
		delete(g.preds[to], name)
	}
	delete(g.edges, name)
	delete(g.nodes, name)
	g.order = slices.DeleteFunc(g.order, func(n string) bool { return n == name })

	logger.Debug("Removed component.", "component", name)
}

// RemoveEdge removes one occurrence of from→to if the edge exists.
func (g *Graph) RemoveEdge(ctx context.Context, from, to string) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)

	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.edges[from][to]
	if n == 0 {
		ctxlog.FromContext(ctx).Debug("Edge to remove does not exist.", "from", from, "to", to)
		return
	}
	if !g.nodes[from].component.RemoveLink(to) {
		panic(fmt.Sprintf("graph: adjacency of %q does not list successor %q", from, to))
	}
	if n == 1 {
		delete(g.edges[from], to)
		delete(g.preds[to], from)
	} else {
		g.edges[from][to] = n - 1
	}
	ctxlog.FromContext(ctx).Debug("Removed edge.", "from", from, "to", to, "remaining", n-1)
}
