package registry

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/specialistvlad/killweb/internal/task"
)

// StaticHandler is the handler name of the built-in static probability task.
// Manifests that omit "handler" bind to it.
const StaticHandler = "Static"

// Module is the interface that all compiled task modules implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the task constructors and discovered task definitions for a
// single killweb instance.
type Registry struct {
	handlers    map[string]task.Constructor
	definitions map[string]*Definition
}

// New creates a Registry with the static handler pre-registered.
func New() *Registry {
	r := &Registry{
		handlers:    make(map[string]task.Constructor),
		definitions: make(map[string]*Definition),
	}
	r.handlers[StaticHandler] = newStatic
	return r
}

// newStatic backs manifests bound to the static handler. Only "Other" may
// omit the probability.
func newStatic(name string, args task.Arguments) (task.Task, error) {
	if !args.Has(task.StaticProbabilityKey) && name != task.OtherTaskName {
		return nil, &task.ConfigError{Task: name, Key: task.StaticProbabilityKey, Reason: "required argument is missing"}
	}
	return task.NewStatic(name, args)
}

// Register binds a Go constructor to name. Registering an existing name
// replaces the previous constructor.
func (r *Registry) Register(name string, ctor task.Constructor) {
	if _, exists := r.handlers[name]; exists {
		slog.Debug("Replacing task handler.", "name", name)
	} else {
		slog.Debug("Registering task handler.", "name", name)
	}
	r.handlers[name] = ctor
}

// RegisterModules registers every module in order.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// Define adds or replaces a task definition.
func (r *Registry) Define(def *Definition) {
	if prev, exists := r.definitions[def.Name]; exists {
		slog.Debug("Replacing task definition.", "name", def.Name, "previous_source", prev.Source, "source", def.Source)
	}
	r.definitions[def.Name] = def
}

// Definition returns the discovered definition for name.
func (r *Registry) Definition(name string) (*Definition, bool) {
	def, ok := r.definitions[name]
	return def, ok
}

// HasHandler reports whether a Go constructor is registered under name.
func (r *Registry) HasHandler(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns every resolvable task name, sorted.
func (r *Registry) Names() []string {
	names := make(map[string]struct{}, len(r.handlers)+len(r.definitions))
	for name := range r.handlers {
		names[name] = struct{}{}
	}
	for name := range r.definitions {
		names[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}
