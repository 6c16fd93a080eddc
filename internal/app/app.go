package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/hcl_adapter"
	"github.com/specialistvlad/killweb/internal/inmemoryresults"
	"github.com/specialistvlad/killweb/internal/jsonconfig"
	"github.com/specialistvlad/killweb/internal/metrics"
	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/resultstore"
	"github.com/specialistvlad/killweb/internal/simulation"
	"github.com/specialistvlad/killweb/internal/task"
	"github.com/specialistvlad/killweb/internal/viewserver"
	"github.com/specialistvlad/killweb/internal/yamlconfig"
	"go.opentelemetry.io/otel"
)

const instrumentationName = "github.com/specialistvlad/killweb"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	ctx      context.Context
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	formats  []config.Format

	graph   *graph.Graph
	store   resultstore.Store
	engine  *simulation.Engine
	metrics *metrics.Aggregator
	view    *viewserver.Server
}

// NewApp is the constructor for the main application. It registers the task
// modules, discovers task manifests and, when a config path is set, loads
// the killweb. Each App owns an isolated logger and registry.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cfg.Silent, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.RegisterModules(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules))

	if cfg.TasksPath != "" {
		if err := reg.Discover(ctx, cfg.TasksPath); err != nil {
			return nil, fmt.Errorf("failed to discover tasks: %w", err)
		}
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.", "tasks", reg.Names())

	a := &App{
		ctx:      ctx,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		formats:  []config.Format{jsonconfig.New(), yamlconfig.New(), hcl_adapter.New()},
		graph:    graph.New(reg),
	}
	if err := a.refresh(); err != nil {
		return nil, err
	}

	if cfg.ConfigPath != "" {
		if err := a.Load(cfg.ConfigPath); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// refresh rebuilds the engine and aggregator after the graph changed.
// Results of earlier runs are discarded.
func (a *App) refresh() error {
	a.store = inmemoryresults.New()

	opts := []simulation.Option{
		simulation.WithTracer(otel.Tracer(instrumentationName)),
		simulation.WithMeter(otel.Meter(instrumentationName)),
	}
	if a.config.Seed != 0 {
		opts = append(opts, simulation.WithSeed(a.config.Seed))
	}
	engine, err := simulation.NewEngine(a.graph, a.store, opts...)
	if err != nil {
		return fmt.Errorf("failed to create simulation engine: %w", err)
	}
	a.engine = engine
	a.metrics = metrics.New(a.store, a.graph)
	a.publish()
	return nil
}

// Context returns the context carrying the app logger.
func (a *App) Context() context.Context { return a.ctx }

// Registry returns the application's registry.
func (a *App) Registry() *registry.Registry { return a.registry }

// Graph returns the current killweb.
func (a *App) Graph() *graph.Graph { return a.graph }

// Metrics returns the aggregator over the latest results.
func (a *App) Metrics() *metrics.Aggregator { return a.metrics }

// Engine returns the current simulation engine.
func (a *App) Engine() *simulation.Engine { return a.engine }

// AddComponent adds or updates a component. See graph.Graph.AddComponent.
func (a *App) AddComponent(name string, to, from []string, attrs map[string]any) error {
	if err := a.graph.AddComponent(a.ctx, name, to, from, attrs); err != nil {
		return err
	}
	return a.refresh()
}

// AddTask builds a task and assigns it to an existing component.
func (a *App) AddTask(name, taskName string, args task.Arguments) error {
	if err := a.graph.AddTask(a.ctx, name, taskName, args); err != nil {
		return err
	}
	return a.refresh()
}

// AddEdge links two existing components.
func (a *App) AddEdge(from, to string) error {
	if err := a.graph.AddEdge(a.ctx, from, to); err != nil {
		return err
	}
	return a.refresh()
}

// RemoveComponent deletes a component and its incident edges.
func (a *App) RemoveComponent(name string) error {
	a.graph.RemoveComponent(a.ctx, name)
	return a.refresh()
}

// RemoveEdge removes one occurrence of an edge.
func (a *App) RemoveEdge(from, to string) error {
	a.graph.RemoveEdge(a.ctx, from, to)
	return a.refresh()
}

// Simulate runs the Monte Carlo simulation and publishes the results to
// connected view clients.
func (a *App) Simulate(iterations int) (*simulation.Run, bool) {
	run, ok := a.engine.Run(a.ctx, iterations)
	if ok {
		a.logger.Info("Monte Carlo simulation finished.", "run_id", run.ID, "iterations", run.Iterations, "paths", len(run.Paths), "duration", run.Duration())
		a.publish()
	}
	return run, ok
}
