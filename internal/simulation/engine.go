package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/pathid"
	"github.com/specialistvlad/killweb/internal/resultstore"
	"github.com/specialistvlad/killweb/internal/task"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Run describes one completed Monte Carlo run.
type Run struct {
	ID         uuid.UUID
	Paths      [][]string
	Keys       []string
	Iterations int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is the wall time the run took.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Engine samples the kill chains of a graph and writes trials to a store.
type Engine struct {
	graph  *graph.Graph
	store  resultstore.Store
	rng    *rand.Rand
	tracer trace.Tracer
	meter  metric.Meter
	inst   *instruments

	// mu serializes runs and guards last.
	mu   sync.Mutex
	last *Run
}

// NewEngine creates an engine for g writing to store.
func NewEngine(g *graph.Graph, store resultstore.Store, opts ...Option) (*Engine, error) {
	e := &Engine{graph: g, store: store}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.tracer == nil {
		e.tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}
	if e.meter == nil {
		e.meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}

	inst, err := newInstruments(e.meter)
	if err != nil {
		return nil, err
	}
	e.inst = inst
	return e, nil
}

// Store returns the result store the engine writes to.
func (e *Engine) Store() resultstore.Store {
	return e.store
}

// LastRun returns the most recent completed run.
func (e *Engine) LastRun() (*Run, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last, e.last != nil
}

// Paths returns the chains sampled by the most recent run.
func (e *Engine) Paths() [][]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return nil
	}
	return slices.Clone(e.last.Paths)
}

// Run performs iterations trials on every kill chain. Previous results are
// replaced. The run is refused, with a warning and the store untouched, when
// any component lacks a task or iterations is negative.
func (e *Engine) Run(ctx context.Context, iterations int) (*Run, bool) {
	logger := ctxlog.FromContext(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if iterations < 0 {
		logger.Warn("Monte Carlo iterations must not be negative; run refused.", "iterations", iterations)
		return nil, false
	}
	if invalid := e.graph.Invalid(); len(invalid) > 0 {
		logger.Warn("Killweb is invalid: every component needs a task before simulating. Run refused.", "components_without_task", invalid)
		return nil, false
	}

	paths := EnumeratePaths(e.graph)
	chains, err := e.resolveTasks(paths)
	if err != nil {
		logger.Warn("Killweb changed while preparing the run; run refused.", "error", err)
		return nil, false
	}

	run := &Run{
		ID:         uuid.New(),
		Paths:      paths,
		Keys:       make([]string, len(paths)),
		Iterations: iterations,
		StartedAt:  time.Now(),
	}
	for i, p := range paths {
		run.Keys[i] = pathid.Key(p)
	}

	ctx, span := e.tracer.Start(ctx, "killweb.monte_carlo", trace.WithAttributes(
		attribute.String("killweb.run_id", run.ID.String()),
		attribute.Int("killweb.iterations", iterations),
		attribute.Int("killweb.paths", len(paths)),
	))
	defer span.End()

	logger = logger.With("run_id", run.ID.String())
	logger.Info("Starting Monte Carlo run.", "paths", len(paths), "iterations", iterations)
	if len(paths) == 0 {
		logger.Warn("Killweb has no kill chains from a source to a sink.")
	}

	e.store.Reset(ctx, run.Keys)
	attrs := metric.WithAttributes(attribute.String("killweb.run_id", run.ID.String()))

	for i, chain := range chains {
		key := run.Keys[i]
		successes := 0
		for range iterations {
			outcome, probs := e.trial(chain)
			if outcome[len(outcome)-1] == 1 {
				successes++
			}
			if err := e.store.Append(ctx, key, outcome, probs); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "append failed")
				logger.Error("Failed to record trial.", "path", key, "error", err)
				return nil, false
			}
		}
		e.inst.trials.Add(ctx, int64(iterations), attrs)
		e.inst.successes.Add(ctx, int64(successes), attrs)
		logger.Debug("Sampled kill chain.", "path", key, "successes", successes)
	}
	e.inst.paths.Add(ctx, int64(len(paths)), attrs)

	run.FinishedAt = time.Now()
	e.inst.duration.Record(ctx, float64(run.Duration().Milliseconds()), attrs)
	span.SetStatus(codes.Ok, "")
	e.last = run

	logger.Info("Monte Carlo run complete.", "paths", len(paths), "iterations", iterations, "duration", run.Duration())
	return run, true
}

// resolveTasks maps every path to the tasks of its components.
func (e *Engine) resolveTasks(paths [][]string) ([][]task.Task, error) {
	chains := make([][]task.Task, len(paths))
	for i, p := range paths {
		chain := make([]task.Task, len(p))
		for j, name := range p {
			c, ok := e.graph.Component(name)
			if !ok || !c.HasTask() {
				return nil, fmt.Errorf("component %q has no task", name)
			}
			chain[j] = c.Task
		}
		chains[i] = chain
	}
	return chains, nil
}

// trial walks one chain, stopping at the first failed draw.
func (e *Engine) trial(chain []task.Task) ([]int, []float64) {
	outcome := make([]int, len(chain))
	probs := make([]float64, len(chain))
	for i, t := range chain {
		p := t.Evaluate()
		probs[i] = p
		if !e.bernoulli(p) {
			break
		}
		outcome[i] = 1
	}
	return outcome, probs
}

// bernoulli draws one trial with success probability p clamped to [0, 1].
func (e *Engine) bernoulli(p float64) bool {
	return e.rng.Float64() < task.Clamp(p)
}
