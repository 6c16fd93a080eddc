// Package betabernoulli provides a task whose success probability is drawn
// from a Beta(alpha, beta) distribution on every evaluation.
package betabernoulli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// TaskName is the name the task registers under.
const TaskName = "BetaBernoulli"

// Task samples its probability from Beta(alpha, beta).
type Task struct {
	task.Base
	alpha, beta float64

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a BetaBernoulli task. Both shape parameters are required and
// must be positive. An optional "seed" argument fixes the sample stream.
func New(name string, args task.Arguments) (task.Task, error) {
	alpha, err := args.RequireFloat(name, "alpha")
	if err != nil {
		return nil, err
	}
	beta, err := args.RequireFloat(name, "beta")
	if err != nil {
		return nil, err
	}
	for key, v := range map[string]float64{"alpha": alpha, "beta": beta} {
		if !(v > 0) || math.IsInf(v, 0) {
			return nil, &task.ConfigError{Task: name, Key: key, Reason: fmt.Sprintf("must be a positive number, got %v", v)}
		}
	}

	var src rand.Source
	if seed, ok := args.Float("seed"); ok {
		src = rand.NewPCG(uint64(seed), 0)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Task{
		Base:  task.NewBase(name, args),
		alpha: alpha,
		beta:  beta,
		rng:   rand.New(src),
	}, nil
}

// Evaluate draws a fresh sample.
func (t *Task) Evaluate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	x := gamma(t.rng, t.alpha)
	y := gamma(t.rng, t.beta)
	if x+y == 0 {
		return 0
	}
	return x / (x + y)
}

// Mean returns alpha / (alpha + beta).
func (t *Task) Mean() float64 {
	return t.alpha / (t.alpha + t.beta)
}

// gamma samples Gamma(shape, 1) with the Marsaglia-Tsang method. Shapes below
// one are boosted and corrected with a uniform power.
func gamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		return gamma(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(TaskName, New)
}
