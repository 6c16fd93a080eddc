package metrics

import (
	"context"
	"slices"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/pathid"
)

// PathScore is the full-chain success rate of one chain.
type PathScore struct {
	Key         string  `json:"path"`
	Probability float64 `json:"probability"`
}

// Components returns the chain's component names.
func (s PathScore) Components() []string {
	return pathid.Parse(s.Key)
}

// PathStats combines the success rate and mean successful links of a chain.
type PathStats struct {
	PathScore
	AverageSuccesses float64 `json:"average_successes"`
	Variance         float64 `json:"variance"`
	Trials           int     `json:"trials"`
}

// Stats returns statistics for every chain with trials, ordered ascending by
// probability. Ties keep the order in which chains were enumerated.
func (a *Aggregator) Stats(ctx context.Context) ([]PathStats, bool) {
	keys := a.store.Keys(ctx)
	stats := make([]PathStats, 0, len(keys))
	for _, key := range keys {
		out, ok := a.store.Outcomes(ctx, key)
		if !ok || len(out) == 0 {
			continue
		}
		p := proportionComplete(out)
		stats = append(stats, PathStats{
			PathScore:        PathScore{Key: key, Probability: p},
			AverageSuccesses: averageNumSuccess(out),
			Variance:         p - p*p,
			Trials:           len(out),
		})
	}
	if len(stats) == 0 {
		ctxlog.FromContext(ctx).Warn(noResultsMessage)
		return nil, false
	}
	slices.SortStableFunc(stats, func(x, y PathStats) int {
		switch {
		case x.Probability < y.Probability:
			return -1
		case x.Probability > y.Probability:
			return 1
		default:
			return 0
		}
	})
	return stats, true
}

// RankPaths returns the success rate of every chain, ascending. Callers walk
// it in reverse for a leaderboard.
func (a *Aggregator) RankPaths(ctx context.Context) ([]PathScore, bool) {
	stats, ok := a.Stats(ctx)
	if !ok {
		return nil, false
	}
	scores := make([]PathScore, len(stats))
	for i, s := range stats {
		scores[i] = s.PathScore
	}
	return scores, true
}

// Leaderboard returns chain statistics in descending order of probability.
// topN limits the number of ranking positions considered (zero or negative
// means all); when selected is non-empty only chains containing that
// component are returned from those positions.
func (a *Aggregator) Leaderboard(ctx context.Context, topN int, selected string) ([]PathStats, bool) {
	stats, ok := a.Stats(ctx)
	if !ok {
		return nil, false
	}
	slices.Reverse(stats)
	if topN > 0 && topN < len(stats) {
		stats = stats[:topN]
	}
	if selected == "" {
		return stats, true
	}
	filtered := stats[:0:0]
	for _, s := range stats {
		if slices.Contains(s.Components(), selected) {
			filtered = append(filtered, s)
		}
	}
	return filtered, true
}
