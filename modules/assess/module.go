package assess

import (
	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// TaskName is the name the assessment task registers under.
const TaskName = "Assess"

// Task returns an assessed, fixed success probability.
type Task struct {
	task.Base
	p float64
}

// New builds an Assess task from the required "p" argument.
func New(name string, args task.Arguments) (task.Task, error) {
	p, err := args.RequireFloat(name, "p")
	if err != nil {
		return nil, err
	}
	return &Task{Base: task.NewBase(name, args), p: p}, nil
}

// Evaluate returns the assessed probability.
func (t *Task) Evaluate() float64 {
	return t.p
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(TaskName, New)
}
