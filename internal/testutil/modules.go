package testutil

import (
	"sync/atomic"

	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/task"
)

// CountingModule registers a "Counting" task that returns its required
// "p" argument and counts how often any Counting task was evaluated.
type CountingModule struct {
	Evaluations atomic.Int64
}

type countingTask struct {
	task.Base
	p     float64
	count *atomic.Int64
}

func (c *countingTask) Evaluate() float64 {
	c.count.Add(1)
	return c.p
}

// Register registers the "Counting" handler.
func (m *CountingModule) Register(r *registry.Registry) {
	r.Register("Counting", func(name string, args task.Arguments) (task.Task, error) {
		p, err := args.RequireFloat(name, "p")
		if err != nil {
			return nil, err
		}
		return &countingTask{Base: task.NewBase(name, args), p: p, count: &m.Evaluations}, nil
	})
}
