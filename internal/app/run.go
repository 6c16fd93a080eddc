package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/viewclient"
)

// ErrSimulationRefused is returned by Run when the engine refuses to
// simulate, typically because a component has no task.
var ErrSimulationRefused = errors.New("simulation refused")

// Run executes the main application logic based on the configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer a.logger.Debug("App.Run method finished.")

	if a.config.InspectURL != "" {
		return a.inspect(ctx)
	}

	var serveDone <-chan error
	if a.config.ServeAddr != "" {
		serveDone = a.startViewServer(ctx, a.config.ServeAddr)
	}

	a.PrintPaths()

	if a.config.Iterations > 0 {
		a.logger.Info("🚀 Starting Monte Carlo simulation...", "iterations", a.config.Iterations)
		if _, ok := a.Simulate(a.config.Iterations); !ok {
			return ErrSimulationRefused
		}
		a.PrintLeaderboard(a.config.TopN, a.config.SelectedComponent)
		if a.config.ReportPath != "" {
			a.PrintPathReport(a.config.ReportPath)
		}
		a.logger.Info("🏁 Simulation finished.")
	} else {
		a.logger.Warn("No iterations requested, simulation not required.")
	}
	a.PrintCentrality()

	if a.config.SavePath != "" {
		if err := a.Save(a.config.SavePath, a.config.SaveName); err != nil {
			return fmt.Errorf("failed to save killweb: %w", err)
		}
	}

	if serveDone != nil {
		a.logger.Info("View server running; interrupt to stop.", "address", a.config.ServeAddr)
		if err := <-serveDone; err != nil {
			return err
		}
	}
	return nil
}

// inspect asks a running view server for one component and prints it.
func (a *App) inspect(ctx context.Context) error {
	node, err := viewclient.Inspect(ctx, a.config.InspectURL, a.config.InspectComponent)
	if err != nil {
		return fmt.Errorf("failed to inspect component: %w", err)
	}
	out, err := json.MarshalIndent(node, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to render component: %w", err)
	}
	fmt.Fprintln(a.outW, string(out))
	return nil
}
