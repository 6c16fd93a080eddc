// Package resultstore defines the interface for storing the per-trial outcome
// and probability vectors produced by a Monte Carlo run.
//
// # Why Result Store Exists
//
// The engine produces trial data; the metrics aggregator and the presentation
// adapter consume it. Keeping the data behind an interface separates the
// sampling loop from how trials are held, so the engine never needs to know
// whether results live in a slice, a ring buffer or elsewhere.
//
// # Lifecycle
//
//  1. **Reset** at the start of every run with the run's path keys. All prior
//     trial data is discarded; a re-run replaces results, never appends.
//  2. **Appended** once per trial per path by the engine.
//  3. **Queried** by metrics and presentation until the next Reset.
//
// Results are never persisted beyond the process.
package resultstore

import "context"

// Store holds trial vectors keyed by canonical path key.
//
// Thread-safety: implementations MUST serialize appends per key and allow
// reads concurrently with appends.
type Store interface {
	// Reset discards every stored trial and registers keys, in order, with
	// no trials.
	Reset(ctx context.Context, keys []string)

	// Append records one trial for key. outcome holds 0/1 per path position,
	// probs the sampled probability per position; both have the path length.
	// Appending to a key that was not registered by Reset is an error.
	Append(ctx context.Context, key string, outcome []int, probs []float64) error

	// Outcomes returns a copy of every outcome vector recorded for key.
	// The boolean is false when key is unknown.
	Outcomes(ctx context.Context, key string) ([][]int, bool)

	// Probabilities returns a copy of every probability vector recorded for key.
	Probabilities(ctx context.Context, key string) ([][]float64, bool)

	// Keys returns the registered keys in registration order.
	Keys(ctx context.Context) []string

	// Trials returns the number of trials recorded for key.
	Trials(ctx context.Context, key string) int
}
