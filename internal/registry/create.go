package registry

import (
	"github.com/specialistvlad/killweb/internal/ctyconv"
	"github.com/specialistvlad/killweb/internal/task"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// CreateTask instantiates the task registered under name.
//
// Resolution order: a discovered definition, then a handler registered under
// the same name, then the static probability task when args carries a
// "probability" key or the name is "Other". Anything else is a *LookupError.
// The built-in static handler is only reachable through a definition or the
// probability rule, never by its own name.
// Construction failures from definitions or handlers are returned unchanged.
func (r *Registry) CreateTask(name string, args task.Arguments) (task.Task, error) {
	if def, ok := r.definitions[name]; ok {
		return r.createFromDefinition(def, args)
	}
	if ctor, ok := r.handlers[name]; ok && name != StaticHandler {
		return ctor(name, args.Clone())
	}
	if args.Has(task.StaticProbabilityKey) || name == task.OtherTaskName {
		return task.NewStatic(name, args)
	}
	return nil, &LookupError{Name: name}
}

func (r *Registry) createFromDefinition(def *Definition, args task.Arguments) (task.Task, error) {
	ctor, ok := r.handlers[def.Handler]
	if !ok {
		return nil, &task.ConfigError{
			Task:   def.Name,
			Key:    "handler",
			Reason: "handler " + def.Handler + " is not registered",
		}
	}

	resolved, err := resolveInputs(def, args)
	if err != nil {
		return nil, err
	}
	return ctor(def.Name, resolved)
}

// resolveInputs applies defaults and converts declared inputs to their
// declared types. Arguments the definition does not declare pass through.
func resolveInputs(def *Definition, args task.Arguments) (task.Arguments, error) {
	resolved := args.Clone()
	for _, in := range def.Inputs {
		raw, present := resolved[in.Name]
		if !present {
			if in.Default == nil {
				return nil, &task.ConfigError{Task: def.Name, Key: in.Name, Reason: "required argument is missing"}
			}
			gv, err := ctyconv.ToNative(*in.Default)
			if err != nil {
				return nil, &task.ConfigError{Task: def.Name, Key: in.Name, Reason: "invalid default: " + err.Error()}
			}
			resolved[in.Name] = gv
			continue
		}

		if in.Type == cty.DynamicPseudoType {
			continue
		}

		cv, err := ctyconv.ToValue(raw)
		if err != nil {
			return nil, &task.ConfigError{Task: def.Name, Key: in.Name, Reason: err.Error()}
		}
		converted, err := convert.Convert(cv, in.Type)
		if err != nil {
			return nil, &task.ConfigError{
				Task:   def.Name,
				Key:    in.Name,
				Reason: "expected " + in.Type.FriendlyName() + ": " + err.Error(),
			}
		}
		gv, err := ctyconv.ToNative(converted)
		if err != nil {
			return nil, &task.ConfigError{Task: def.Name, Key: in.Name, Reason: err.Error()}
		}
		resolved[in.Name] = gv
	}
	return resolved, nil
}
