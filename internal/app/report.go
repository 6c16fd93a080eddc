package app

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/killweb/internal/pathid"
	"github.com/specialistvlad/killweb/internal/simulation"
)

// PrintNodes writes every component with its task and group.
func (a *App) PrintNodes() {
	view := a.graph.View()
	fmt.Fprintf(a.outW, "Components (%d):\n", len(view.Nodes))
	for _, n := range view.Nodes {
		line := "\t" + n.Name
		if n.Task != "" {
			line += fmt.Sprintf(" [task=%s]", n.Task)
		}
		if n.Group != "" {
			line += fmt.Sprintf(" [system=%s]", n.Group)
		}
		fmt.Fprintln(a.outW, line)
	}
}

// PrintEdges writes every distinct edge.
func (a *App) PrintEdges() {
	edges := a.graph.Edges()
	fmt.Fprintf(a.outW, "Edges (%d):\n", len(edges))
	for _, e := range edges {
		fmt.Fprintf(a.outW, "\t%s -> %s\n", e.From, e.To)
	}
}

// PrintPaths writes every kill chain of the killweb.
func (a *App) PrintPaths() {
	paths := simulation.EnumeratePaths(a.graph)
	fmt.Fprintf(a.outW, "Kill chains (%d):\n", len(paths))
	for i, p := range paths {
		fmt.Fprintf(a.outW, "\t%d: %s\n", i+1, strings.Join(p, " -> "))
	}
}

// PrintLeaderboard writes the topN most successful chains, optionally only
// those containing selected.
func (a *App) PrintLeaderboard(topN int, selected string) {
	board, ok := a.metrics.Leaderboard(a.ctx, topN, selected)
	if !ok {
		return
	}
	if selected != "" && len(board) == 0 {
		fmt.Fprintf(a.outW, "No ranked chain contains %q.\n", selected)
		return
	}
	for _, s := range board {
		fmt.Fprintf(a.outW, "Path: %s\n\tProbability of Success: %g\n\tAverage Number of Successful Events: %g\n",
			s.Key, s.Probability, s.AverageSuccesses)
	}
}

// PrintPathReport writes every statistic of a single chain.
func (a *App) PrintPathReport(path any) {
	key, err := pathid.Normalize(path)
	if err != nil {
		a.logger.Warn("Unrecognised path.", "error", err)
		return
	}
	proportion, ok := a.metrics.ProportionComplete(a.ctx, key)
	if !ok {
		return
	}
	average, _ := a.metrics.AverageNumSuccess(a.ctx, key)
	variance, _ := a.metrics.Variance(a.ctx, key)
	dist, _ := a.metrics.Distribution(a.ctx, key)
	means, _ := a.metrics.MeanProbabilities(a.ctx, key)

	fmt.Fprintf(a.outW, "Path: %s\n", key)
	fmt.Fprintf(a.outW, "\tProportion Complete: %g\n", proportion)
	fmt.Fprintf(a.outW, "\tAverage Number of Successes: %g\n", average)
	fmt.Fprintf(a.outW, "\tVariance: %g\n", variance)
	fmt.Fprintln(a.outW, "\tPer-component success rate:")
	for i, name := range pathid.Parse(key) {
		if i >= len(dist) {
			break
		}
		line := fmt.Sprintf("\t\t%s: %g", name, dist[i])
		if i < len(means) {
			line += fmt.Sprintf(" (mean sampled probability %g)", means[i])
		}
		fmt.Fprintln(a.outW, line)
	}
}

// PrintCentrality writes the in- and out-degree centrality of every
// connected component.
func (a *App) PrintCentrality() {
	c := a.metrics.NodeCentrality()
	fmt.Fprintln(a.outW, "In Degree Centrality")
	for _, d := range c.In {
		fmt.Fprintf(a.outW, "\t%s has an in centrality of %d\n", d.Name, d.Degree)
	}
	fmt.Fprintln(a.outW, "\nOut Degree Centrality")
	for _, d := range c.Out {
		fmt.Fprintf(a.outW, "\t%s has an out centrality of %d\n", d.Name, d.Degree)
	}
}
