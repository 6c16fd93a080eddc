package inmemoryresults

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Reset(ctx, []string{"A, B", "A, C"})

	require.NoError(t, s.Append(ctx, "A, B", []int{1, 0}, []float64{0.9, 0.2}))
	require.NoError(t, s.Append(ctx, "A, B", []int{1, 1}, []float64{0.9, 0.8}))

	outcomes, ok := s.Outcomes(ctx, "A, B")
	require.True(t, ok)
	assert.Equal(t, [][]int{{1, 0}, {1, 1}}, outcomes)

	probs, ok := s.Probabilities(ctx, "A, B")
	require.True(t, ok)
	assert.Equal(t, [][]float64{{0.9, 0.2}, {0.9, 0.8}}, probs)

	assert.Equal(t, 2, s.Trials(ctx, "A, B"))
	assert.Zero(t, s.Trials(ctx, "A, C"))
	assert.Equal(t, []string{"A, B", "A, C"}, s.Keys(ctx))

	outcomes[0][0] = 7
	again, _ := s.Outcomes(ctx, "A, B")
	assert.Equal(t, 1, again[0][0], "returned vectors must be copies")
}

func TestAppendErrors(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Reset(ctx, []string{"A"})

	assert.Error(t, s.Append(ctx, "B", []int{1}, []float64{0.5}))
	assert.Error(t, s.Append(ctx, "A", []int{1}, []float64{}))

	_, ok := s.Outcomes(ctx, "B")
	assert.False(t, ok)
}

func TestResetReplaces(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Reset(ctx, []string{"A", "A", "B"})
	require.NoError(t, s.Append(ctx, "A", []int{1}, []float64{1}))
	assert.Equal(t, []string{"A", "B"}, s.Keys(ctx))

	s.Reset(ctx, []string{"B"})
	assert.Equal(t, []string{"B"}, s.Keys(ctx))
	_, ok := s.Outcomes(ctx, "A")
	assert.False(t, ok)
}

func TestConcurrentAppends(t *testing.T) {
	s := New()
	ctx := context.Background()
	keys := []string{"P0", "P1", "P2", "P3"}
	s.Reset(ctx, keys)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := keys[i%len(keys)]
			assert.NoError(t, s.Append(ctx, key, []int{1}, []float64{0.5}))
			_, _ = s.Outcomes(ctx, key)
		}(i)
	}
	wg.Wait()

	for _, k := range keys {
		assert.Equal(t, 25, s.Trials(ctx, k), fmt.Sprintf("key %s", k))
	}
}
