package config_formats

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/killweb/internal/app"
	"github.com/specialistvlad/killweb/internal/graph"
	"github.com/specialistvlad/killweb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sources = map[string]string{
	"web.json": `{
    "strike": {
        "Radar": {
            "attributes": {"task": "Assess", "task_arguments": {"p": 1}, "system_name": "Air defence", "color": "red"},
            "connected_components": ["Missile"]
        },
        "Missile": {
            "attributes": {"task": "Engage", "task_arguments": {"probability": 1}},
            "connected_components": []
        }
    }
}`,
	"web.yaml": `
strike:
  Radar:
    attributes:
      task: Assess
      task_arguments: {p: 1}
      system_name: Air defence
      color: red
    connected_components: [Missile]
  Missile:
    attributes:
      task: Engage
      task_arguments: {probability: 1}
    connected_components: []
`,
	"web.hcl": `
killweb "strike" {
  component "Radar" {
    task                 = "Assess"
    task_arguments       = { p = 1 }
    system_name          = "Air defence"
    connected_components = ["Missile"]
    attributes           = { color = "red" }
  }

  component "Missile" {
    task                 = "Engage"
    task_arguments       = { probability = 1 }
    connected_components = []
  }
}
`,
}

func TestEveryFormatLoadsTheSameKillweb(t *testing.T) {
	var views []*graph.View
	for name := range sources {
		t.Run(name, func(t *testing.T) {
			result := testutil.RunIntegrationTest(t, sources, app.Config{ConfigPath: name, Iterations: 5})
			require.NoError(t, result.Err)
			testutil.AssertLeaderboardEntry(t, result, "Radar, Missile", "1")

			view := result.App.Graph().View()
			assert.Equal(t, "strike", view.Name)
			views = append(views, view)
		})
	}

	require.Len(t, views, len(sources))
	for _, v := range views[1:] {
		if diff := cmp.Diff(views[0], v); diff != "" {
			t.Errorf("formats disagree (-first +other):\n%s", diff)
		}
	}
}

func TestSaveConvertsBetweenFormats(t *testing.T) {
	for _, target := range []string{"saved.json", "saved.yaml", "saved.hcl"} {
		t.Run(target, func(t *testing.T) {
			result := testutil.RunIntegrationTest(t, sources, app.Config{
				ConfigPath: "web.json",
				SavePath:   target,
				SaveName:   "better",
			})
			require.NoError(t, result.Err)

			cfg, err := app.NewConfig(app.Config{ConfigPath: filepath.Join(result.Dir, target), LogLevel: "error"})
			require.NoError(t, err)
			reloaded, err := app.NewApp(&testutil.SafeBuffer{}, cfg)
			require.NoError(t, err)

			want := result.App.Graph().View()
			want.Name = "better"
			if diff := cmp.Diff(want, reloaded.Graph().View()); diff != "" {
				t.Errorf("saved killweb differs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnsupportedExtension(t *testing.T) {
	result := testutil.RunIntegrationTest(t,
		map[string]string{"web.toml": ""},
		app.Config{ConfigPath: "web.toml"},
	)
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, app.ErrUnsupportedFormat)
}
