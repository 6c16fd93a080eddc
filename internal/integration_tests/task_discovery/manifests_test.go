package task_discovery

import (
	"testing"

	"github.com/specialistvlad/killweb/internal/app"
	"github.com/specialistvlad/killweb/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strikeManifest = `
task "Strike" {
  description = "Assessed strike success."
  handler     = "Assess"

  input "p" {
    type    = number
    default = 1
  }
}
`

const killweb = `{
    "strike": {
        "Scout": {"attributes": {"task": "Strike", "task_arguments": {}}, "connected_components": ["Bomber"]},
        "Bomber": {"attributes": {"task": "Strike", "task_arguments": {"p": 0}}, "connected_components": []}
    }
}`

func TestManifestDefaultsApply(t *testing.T) {
	result := testutil.RunIntegrationTest(t,
		map[string]string{
			"tasks/strike.hcl": strikeManifest,
			"web.json":         killweb,
		},
		app.Config{ConfigPath: "web.json", TasksPath: "tasks", Iterations: 10},
	)
	require.NoError(t, result.Err)

	c, ok := result.App.Graph().Component("Scout")
	require.True(t, ok)
	assert.Equal(t, 1.0, c.Task.Evaluate())

	testutil.AssertLeaderboardEntry(t, result, "Scout, Bomber", "0")
}

func TestLaterManifestWins(t *testing.T) {
	result := testutil.RunIntegrationTest(t,
		map[string]string{
			"tasks/a/strike.hcl": strikeManifest,
			"tasks/b/strike.hcl": `task "Strike" { handler = "Assess" }`,
			"web.json":           killweb,
		},
		app.Config{ConfigPath: "web.json", TasksPath: "tasks"},
	)
	require.Error(t, result.Err, "the later manifest declares no default for p")
	assert.Contains(t, result.Err.Error(), "Scout")
}

func TestMissingTasksDirectoryWarns(t *testing.T) {
	result := testutil.RunIntegrationTest(t,
		map[string]string{"web.json": `{"w": {"A": {"attributes": {"task": "Other"}, "connected_components": []}}}`},
		app.Config{ConfigPath: "web.json", TasksPath: "tasks"},
	)
	require.NoError(t, result.Err)
	assert.Contains(t, result.Output, "No tasks directory was found")
}

func TestSilentModeSuppressesDiagnostics(t *testing.T) {
	result := testutil.RunIntegrationTest(t,
		map[string]string{"web.json": `{"w": {"A": {"attributes": {"task": "Other"}, "connected_components": []}}}`},
		app.Config{ConfigPath: "web.json", TasksPath: "tasks", Silent: true},
	)
	require.NoError(t, result.Err)
	assert.NotContains(t, result.Output, "No tasks directory was found")
	assert.NotContains(t, result.Output, "level=")
}
