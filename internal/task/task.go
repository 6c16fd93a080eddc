// Package task defines the probabilistic unit of work attached to a killweb
// component. A Task is evaluated once per component per Monte Carlo trial and
// yields a success probability in [0, 1].
package task

import "log/slog"

// Task represents a configured success-probability generator.
type Task interface {
	// Name is the task name the implementation was created under. It is the
	// value written back as "task" when a graph is serialized.
	Name() string
	// Arguments returns the argument bundle the task was constructed with.
	Arguments() Arguments
	// Evaluate returns either a fixed probability or a freshly sampled value.
	Evaluate() float64
}

// Constructor builds a Task from its name and argument bundle. A constructor
// returns a *ConfigError when a required argument is missing.
type Constructor func(name string, args Arguments) (Task, error)

// LoggerSetter is implemented by tasks that log while evaluating. The graph
// hands them the logger of the context the task was created under.
type LoggerSetter interface {
	SetLogger(logger *slog.Logger)
}

// Base carries the identity shared by every task implementation. It is meant
// to be embedded.
type Base struct {
	name string
	args Arguments
}

// NewBase creates the embeddable identity for a task.
func NewBase(name string, args Arguments) Base {
	return Base{name: name, args: args.Clone()}
}

// Name returns the task name.
func (b Base) Name() string { return b.name }

// Arguments returns a copy of the construction arguments.
func (b Base) Arguments() Arguments { return b.args.Clone() }

// Static is the default task variant. It returns its configured probability
// unchanged on every evaluation.
type Static struct {
	Base
	Probability float64
}

// StaticProbabilityKey is the argument key read by the static task.
const StaticProbabilityKey = "probability"

// OtherTaskName is the task name that always resolves to a static task, even
// without a probability argument.
const OtherTaskName = "Other"

// NewStatic creates a static task. A missing probability is treated as zero so
// that "Other" tasks can be declared without arguments.
func NewStatic(name string, args Arguments) (*Static, error) {
	s := &Static{Base: NewBase(name, args)}
	if _, ok := args[StaticProbabilityKey]; ok {
		p, err := args.RequireFloat(name, StaticProbabilityKey)
		if err != nil {
			return nil, err
		}
		s.Probability = p
	}
	return s, nil
}

// Evaluate returns the configured probability.
func (s *Static) Evaluate() float64 {
	return s.Probability
}
