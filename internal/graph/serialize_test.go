package graph

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	ctx := context.Background()
	g := newChain(t)
	g.SetName("chain")
	require.NoError(t, g.AddComponent(ctx, "C", nil, nil, map[string]any{"system_name": "Strike"}))
	require.NoError(t, g.AddComponent(ctx, "E", nil, []string{"C"}, nil))

	want := &config.Graph{
		Name: "chain",
		Components: []*config.ComponentSpec{
			{Name: "A", Attributes: config.Attributes{Task: "Static", TaskArguments: map[string]any{"probability": 0.9}}, ConnectedComponents: []string{"B"}},
			{Name: "B", Attributes: config.Attributes{Task: "Static", TaskArguments: map[string]any{"probability": 0.8}}, ConnectedComponents: []string{"C"}},
			{Name: "C", Attributes: config.Attributes{Task: "Static", TaskArguments: map[string]any{"probability": 0.7}, SystemName: "Strike"}, ConnectedComponents: []string{"E"}},
			{Name: "E", ConnectedComponents: []string{}},
		},
	}

	if diff := cmp.Diff(want, g.Serialize()); diff != "" {
		t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	ctx := context.Background()
	g := newChain(t)
	require.NoError(t, g.AddComponent(ctx, "D", []string{"C"}, []string{"A"}, map[string]any{
		"task":           "Other",
		"task_arguments": map[string]any{},
		"system_name":    "Cyber",
	}))
	require.NoError(t, g.AddEdge(ctx, "A", "B"))

	restored := New(registry.New())
	require.NoError(t, restored.Deserialize(ctx, g.Serialize()))

	assert.ElementsMatch(t, g.Names(), restored.Names())
	assert.ElementsMatch(t, g.Edges(), restored.Edges())
	for _, name := range g.Names() {
		orig, _ := g.Component(name)
		got, ok := restored.Component(name)
		require.True(t, ok, name)
		assert.Equal(t, orig.OutgoingLinks, got.OutgoingLinks, name)
		assert.Equal(t, orig.GroupLabel, got.GroupLabel, name)
		assert.Equal(t, orig.Task.Name(), got.Task.Name(), name)
		assert.Equal(t, orig.Task.Arguments(), got.Task.Arguments(), name)
	}
}

func TestDeserializeOrderIndependent(t *testing.T) {
	ctx := context.Background()
	specs := []*config.ComponentSpec{
		{Name: "A", ConnectedComponents: []string{"B", "D"}},
		{Name: "B", ConnectedComponents: []string{"C"}},
		{Name: "C", ConnectedComponents: []string{}},
		{Name: "D", ConnectedComponents: []string{"C"}},
	}
	reversed := make([]*config.ComponentSpec, len(specs))
	for i, s := range specs {
		reversed[len(specs)-1-i] = s
	}

	forward := New(nil)
	require.NoError(t, forward.Deserialize(ctx, &config.Graph{Components: specs}))
	backward := New(nil)
	require.NoError(t, backward.Deserialize(ctx, &config.Graph{Components: reversed}))

	assert.ElementsMatch(t, forward.Edges(), backward.Edges())
	assert.Len(t, forward.Edges(), 4)
}
