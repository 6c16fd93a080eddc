package metrics

import (
	"context"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/pathid"
	"github.com/specialistvlad/killweb/internal/resultstore"
)

const noResultsMessage = "No Monte Carlo results are available; run the simulation before computing metrics."

// Aggregator reads trial data from a result store and structure from a graph.
type Aggregator struct {
	store resultstore.Store
	graph *graph.Graph
}

// New creates an aggregator.
func New(store resultstore.Store, g *graph.Graph) *Aggregator {
	return &Aggregator{store: store, graph: g}
}

// outcomes resolves path to its key and returns its outcome vectors. A path
// with zero recorded trials counts as having no results.
func (a *Aggregator) outcomes(ctx context.Context, path any) (string, [][]int, bool) {
	logger := ctxlog.FromContext(ctx)
	key, err := pathid.Normalize(path)
	if err != nil {
		logger.Warn("Unrecognised path.", "error", err)
		return "", nil, false
	}
	out, ok := a.store.Outcomes(ctx, key)
	if !ok || len(out) == 0 {
		logger.Warn(noResultsMessage, "path", key)
		return key, nil, false
	}
	return key, out, true
}

// ProportionComplete is the fraction of trials whose last position
// succeeded.
func (a *Aggregator) ProportionComplete(ctx context.Context, path any) (float64, bool) {
	_, out, ok := a.outcomes(ctx, path)
	if !ok {
		return 0, false
	}
	return proportionComplete(out), true
}

// AverageNumSuccess is the mean number of successful positions per trial.
func (a *Aggregator) AverageNumSuccess(ctx context.Context, path any) (float64, bool) {
	_, out, ok := a.outcomes(ctx, path)
	if !ok {
		return 0, false
	}
	return averageNumSuccess(out), true
}

// Variance is the population variance of the last position across trials.
func (a *Aggregator) Variance(ctx context.Context, path any) (float64, bool) {
	_, out, ok := a.outcomes(ctx, path)
	if !ok {
		return 0, false
	}
	p := proportionComplete(out)
	// Outcomes are 0/1, so the mean of squares equals the mean.
	return p - p*p, true
}

// Distribution is the per-position success proportion of a chain.
func (a *Aggregator) Distribution(ctx context.Context, path any) ([]float64, bool) {
	_, out, ok := a.outcomes(ctx, path)
	if !ok {
		return nil, false
	}
	dist := make([]float64, len(out[0]))
	for _, trial := range out {
		for i, v := range trial {
			dist[i] += float64(v)
		}
	}
	for i := range dist {
		dist[i] /= float64(len(out))
	}
	return dist, true
}

// MeanProbabilities is the per-position mean of the sampled probabilities.
// Positions a trial never reached contribute zero.
func (a *Aggregator) MeanProbabilities(ctx context.Context, path any) ([]float64, bool) {
	key, _, ok := a.outcomes(ctx, path)
	if !ok {
		return nil, false
	}
	probs, ok := a.store.Probabilities(ctx, key)
	if !ok || len(probs) == 0 {
		return nil, false
	}
	mean := make([]float64, len(probs[0]))
	for _, trial := range probs {
		for i, v := range trial {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= float64(len(probs))
	}
	return mean, true
}

func proportionComplete(out [][]int) float64 {
	sum := 0
	for _, trial := range out {
		sum += trial[len(trial)-1]
	}
	return float64(sum) / float64(len(out))
}

func averageNumSuccess(out [][]int) float64 {
	sum := 0
	for _, trial := range out {
		for _, v := range trial {
			sum += v
		}
	}
	return float64(sum) / float64(len(out))
}
