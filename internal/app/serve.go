package app

import (
	"context"

	"github.com/specialistvlad/killweb/internal/viewserver"
)

// snapshot renders the killweb and, after a run, its results for view
// clients.
func (a *App) snapshot() viewserver.Snapshot {
	snap := viewserver.Snapshot{Graph: a.graph.View()}
	run, ok := a.engine.LastRun()
	if !ok {
		return snap
	}
	board, _ := a.metrics.Leaderboard(a.ctx, a.config.TopN, a.config.SelectedComponent)
	snap.Results = &viewserver.Results{
		RunID:       run.ID.String(),
		Iterations:  run.Iterations,
		Leaderboard: board,
		Centrality:  a.metrics.NodeCentrality(),
	}
	return snap
}

// publish pushes the current snapshot when the view server is running.
func (a *App) publish() {
	if a.view == nil {
		return
	}
	a.view.Publish(a.snapshot())
}

// startViewServer serves the view and /health on addr until ctx is done.
// The returned channel yields the server's exit error.
func (a *App) startViewServer(ctx context.Context, addr string) <-chan error {
	a.view = viewserver.New(a.ctx)
	a.publish()

	done := make(chan error, 1)
	go func() {
		done <- a.view.ListenAndServe(ctx, addr)
	}()
	return done
}
