package assess

import (
	"errors"
	"testing"

	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssess(t *testing.T) {
	r := registry.New()
	r.RegisterModules(&Module{})

	tk, err := r.CreateTask(TaskName, task.Arguments{"p": 0.42})
	require.NoError(t, err)
	assert.Equal(t, 0.42, tk.Evaluate())
	assert.Equal(t, 0.42, tk.Evaluate())
	assert.Equal(t, task.Arguments{"p": 0.42}, tk.Arguments())
}

func TestAssessRequiresP(t *testing.T) {
	_, err := New(TaskName, task.Arguments{"probability": 0.42})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrConfiguration))

	var cfgErr *task.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "p", cfgErr.Key)
}
