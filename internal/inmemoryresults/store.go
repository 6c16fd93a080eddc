package inmemoryresults

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/killweb/internal/resultstore"
)

type series struct {
	outcomes [][]int
	probs    [][]float64
}

// Store is an in-memory implementation of resultstore.Store.
type Store struct {
	mu     sync.RWMutex
	keys   []string
	series map[string]*series
}

// New creates a new, empty in-memory result store.
func New() resultstore.Store {
	return &Store{series: make(map[string]*series)}
}

// Reset discards all trials and registers keys.
func (s *Store) Reset(ctx context.Context, keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keys = s.keys[:0]
	s.series = make(map[string]*series, len(keys))
	for _, k := range keys {
		if _, dup := s.series[k]; dup {
			continue
		}
		s.keys = append(s.keys, k)
		s.series[k] = &series{}
	}
}

// Append records one trial for key.
func (s *Store) Append(ctx context.Context, key string, outcome []int, probs []float64) error {
	if len(outcome) != len(probs) {
		return fmt.Errorf("trial for %q has %d outcomes but %d probabilities", key, len(outcome), len(probs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sr, ok := s.series[key]
	if !ok {
		return fmt.Errorf("path %q is not registered in the result store", key)
	}
	sr.outcomes = append(sr.outcomes, slices.Clone(outcome))
	sr.probs = append(sr.probs, slices.Clone(probs))
	return nil
}

// Outcomes returns a deep copy of the outcome vectors for key.
func (s *Store) Outcomes(ctx context.Context, key string) ([][]int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sr, ok := s.series[key]
	if !ok {
		return nil, false
	}
	out := make([][]int, len(sr.outcomes))
	for i, o := range sr.outcomes {
		out[i] = slices.Clone(o)
	}
	return out, true
}

// Probabilities returns a deep copy of the probability vectors for key.
func (s *Store) Probabilities(ctx context.Context, key string) ([][]float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sr, ok := s.series[key]
	if !ok {
		return nil, false
	}
	out := make([][]float64, len(sr.probs))
	for i, p := range sr.probs {
		out[i] = slices.Clone(p)
	}
	return out, true
}

// Keys returns the registered keys in registration order.
func (s *Store) Keys(ctx context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.keys)
}

// Trials returns the number of trials recorded for key.
func (s *Store) Trials(ctx context.Context, key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sr, ok := s.series[key]; ok {
		return len(sr.outcomes)
	}
	return 0
}
