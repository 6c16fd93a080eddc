package yamlconfig

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/killweb/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const killwebYAML = `
strike:
  Satellite:
    attributes:
      task: Find
      task_arguments:
        probability: 0.9
      system_name: ISR
    connected_components: [Fusion]
  Fusion:
    attributes:
      task: Assess
      task_arguments: {p: 1}
    connected_components: [Bomber]
  Bomber:
    connected_components: []
ignored:
`

func TestDecode(t *testing.T) {
	model, err := Decode([]byte(killwebYAML))
	require.NoError(t, err)

	want := &config.Model{Graphs: []*config.Graph{
		{
			Name: "strike",
			Components: []*config.ComponentSpec{
				{
					Name: "Satellite",
					Attributes: config.Attributes{
						Task:          "Find",
						TaskArguments: map[string]any{"probability": 0.9},
						SystemName:    "ISR",
					},
					ConnectedComponents: []string{"Fusion"},
				},
				{
					Name:                "Fusion",
					Attributes:          config.Attributes{Task: "Assess", TaskArguments: map[string]any{"p": 1.0}},
					ConnectedComponents: []string{"Bomber"},
				},
				{Name: "Bomber", ConnectedComponents: []string{}},
			},
		},
		{Name: "ignored"},
	}}
	if diff := cmp.Diff(want, model); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsSequences(t *testing.T) {
	_, err := Decode([]byte("- a\n- b\n"))
	assert.ErrorContains(t, err, "expected a mapping")

	model, err := Decode([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, model.Graphs)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	model, err := Decode([]byte(killwebYAML))
	require.NoError(t, err)
	model.Graphs[0].Components[2].Attributes.Extra = map[string]any{"note": "bomber wing"}

	path := filepath.Join(t.TempDir(), "out.yaml")
	f := New()
	require.NoError(t, f.Save(ctx, path, model))

	loaded, err := f.Load(ctx, path)
	require.NoError(t, err)
	if diff := cmp.Diff(model, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
