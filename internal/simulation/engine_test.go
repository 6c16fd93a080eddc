package simulation

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/inmemoryresults"
	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/resultstore"
	"github.com/specialistvlad/killweb/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func static(p float64) map[string]any {
	return map[string]any{
		"task":           "Static",
		"task_arguments": map[string]any{"probability": p},
	}
}

func newChain(t *testing.T, probs ...float64) *graph.Graph {
	t.Helper()
	ctx := context.Background()
	g := graph.New(registry.New())
	names := []string{"A", "B", "C", "D", "E"}[:len(probs)]
	for i, name := range names {
		var to []string
		if i+1 < len(names) {
			to = []string{names[i+1]}
		}
		require.NoError(t, g.AddComponent(ctx, name, to, nil, static(probs[i])))
	}
	return g
}

func newEngine(t *testing.T, g *graph.Graph, seed uint64) (*Engine, resultstore.Store) {
	t.Helper()
	store := inmemoryresults.New()
	e, err := NewEngine(g, store, WithSeed(seed))
	require.NoError(t, err)
	return e, store
}

func lastColumnMean(outcomes [][]int) float64 {
	sum := 0
	for _, o := range outcomes {
		sum += o[len(o)-1]
	}
	return float64(sum) / float64(len(outcomes))
}

func TestRunEstimatesChainProbability(t *testing.T) {
	ctx := context.Background()
	g := newChain(t, 0.9, 0.8, 0.7)
	e, store := newEngine(t, g, 42)

	run, ok := e.Run(ctx, 10000)
	require.True(t, ok)
	assert.Equal(t, []string{"A, B, C"}, run.Keys)

	outcomes, ok := store.Outcomes(ctx, "A, B, C")
	require.True(t, ok)
	assert.InDelta(t, 0.504, lastColumnMean(outcomes), 0.03)
}

func TestRunRecordsFullVectors(t *testing.T) {
	ctx := context.Background()
	g := newChain(t, 0.9, 0.5, 0.7, 0.3)
	e, store := newEngine(t, g, 7)

	const n = 250
	run, ok := e.Run(ctx, n)
	require.True(t, ok)
	assert.Equal(t, n, run.Iterations)
	assert.NotEqual(t, [16]byte{}, [16]byte(run.ID))

	for _, key := range store.Keys(ctx) {
		outcomes, _ := store.Outcomes(ctx, key)
		probs, _ := store.Probabilities(ctx, key)
		require.Len(t, outcomes, n)
		require.Len(t, probs, n)
		for i := range outcomes {
			assert.Len(t, outcomes[i], 4)
			assert.Len(t, probs[i], 4)
			failed := false
			for j, o := range outcomes[i] {
				if failed {
					assert.Zero(t, o, "no success after the first failure")
					assert.Zero(t, probs[i][j], "no evaluation after the first failure")
				}
				if o == 0 {
					failed = true
				}
			}
		}
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	g := newChain(t, 1, 0, 0.5)
	e, store := newEngine(t, g, 1)

	_, ok := e.Run(ctx, 20)
	require.True(t, ok)

	outcomes, _ := store.Outcomes(ctx, "A, B, C")
	probs, _ := store.Probabilities(ctx, "A, B, C")
	for i := range outcomes {
		assert.Equal(t, []int{1, 0, 0}, outcomes[i])
		assert.Equal(t, []float64{1, 0, 0}, probs[i])
	}
}

func TestRunReplacesPreviousResults(t *testing.T) {
	ctx := context.Background()
	g := newChain(t, 0.5, 0.5)
	e, store := newEngine(t, g, 3)

	first, ok := e.Run(ctx, 100)
	require.True(t, ok)
	second, ok := e.Run(ctx, 40)
	require.True(t, ok)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 40, store.Trials(ctx, "A, B"))

	last, ok := e.LastRun()
	require.True(t, ok)
	assert.Equal(t, second.ID, last.ID)
}

func TestRunRefusesInvalidGraph(t *testing.T) {
	ctx := context.Background()
	g := newChain(t, 0.5, 0.5)
	e, store := newEngine(t, g, 3)

	_, ok := e.Run(ctx, 10)
	require.True(t, ok)

	require.NoError(t, g.AddComponent(ctx, "Z", nil, []string{"B"}, nil))
	run, ok := e.Run(ctx, 10)
	assert.False(t, ok)
	assert.Nil(t, run)
	assert.Equal(t, []string{"A, B"}, store.Keys(ctx), "refused run leaves prior results untouched")

	_, ok = e.Run(ctx, -1)
	assert.False(t, ok)
}

func TestRemovingEdgeLeavesNoPaths(t *testing.T) {
	ctx := context.Background()
	g := newChain(t, 0.9, 0.8, 0.7)
	g.RemoveEdge(ctx, "B", "C")

	paths := EnumeratePaths(g)
	for _, p := range paths {
		assert.False(t, p[0] == "A" && p[len(p)-1] == "C", "unexpected path %v", p)
	}
	assert.Equal(t, [][]string{{"A", "B"}}, paths)

	e, store := newEngine(t, g, 5)
	run, ok := e.Run(ctx, 10)
	require.True(t, ok)
	assert.Equal(t, []string{"A, B"}, run.Keys)
	assert.Equal(t, []string{"A, B"}, store.Keys(ctx))
	assert.Equal(t, [][]string{{"A", "B"}}, e.Paths())
}

func TestRunWithoutChains(t *testing.T) {
	ctx := context.Background()
	g := graph.New(registry.New())
	require.NoError(t, g.AddComponent(ctx, "A", []string{"B"}, nil, static(0.5)))
	require.NoError(t, g.AddComponent(ctx, "B", []string{"A"}, nil, static(0.5)))

	e, store := newEngine(t, g, 5)
	run, ok := e.Run(ctx, 10)
	require.True(t, ok)
	assert.Empty(t, run.Paths)
	assert.Empty(t, store.Keys(ctx))
}

type countingTask struct {
	task.Base
	calls *int
}

func (c countingTask) Evaluate() float64 {
	*c.calls++
	return 1
}

func TestRunEvaluatesEachPositionOncePerTrial(t *testing.T) {
	ctx := context.Background()
	calls := 0
	r := registry.New()
	r.Register("Count", func(name string, args task.Arguments) (task.Task, error) {
		return countingTask{Base: task.NewBase(name, args), calls: &calls}, nil
	})

	g := graph.New(r)
	require.NoError(t, g.AddComponent(ctx, "A", []string{"B"}, nil, map[string]any{"task": "Count", "task_arguments": nil}))
	require.NoError(t, g.AddComponent(ctx, "B", nil, nil, map[string]any{"task": "Count", "task_arguments": nil}))

	store := inmemoryresults.New()
	e, err := NewEngine(g, store, WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)

	_, ok := e.Run(ctx, 30)
	require.True(t, ok)
	assert.Equal(t, 60, calls)
}

func TestBernoulliClampsProbability(t *testing.T) {
	g := graph.New(nil)
	e, _ := newEngine(t, g, 9)
	for range 100 {
		assert.True(t, e.bernoulli(1.5))
		assert.False(t, e.bernoulli(-0.2))
		assert.False(t, e.bernoulli(0))
	}
}
