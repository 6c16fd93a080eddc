package registry

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fooTask struct {
	task.Base
	x float64
}

func (f *fooTask) Evaluate() float64 { return f.x }

func newFoo(name string, args task.Arguments) (task.Task, error) {
	x, err := args.RequireFloat(name, "x")
	if err != nil {
		return nil, err
	}
	return &fooTask{Base: task.NewBase(name, args), x: x}, nil
}

func writeManifest(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func testContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestCreateTaskResolution(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "foo.hcl", `
task "Foo" {
  handler = "FooHandler"
  input "x" {
    type = number
  }
}
`)

	r := New()
	r.Register("FooHandler", newFoo)
	var logs bytes.Buffer
	require.NoError(t, r.Discover(testContext(&logs), dir))
	require.NoError(t, r.Validate(testContext(&logs)))

	t.Run("discovered implementation", func(t *testing.T) {
		tk, err := r.CreateTask("Foo", task.Arguments{"x": 0.3})
		require.NoError(t, err)
		foo, ok := tk.(*fooTask)
		require.True(t, ok, "expected *fooTask, got %T", tk)
		assert.Equal(t, "Foo", foo.Name())
		assert.Equal(t, 0.3, foo.Evaluate())
	})

	t.Run("static fallback with probability", func(t *testing.T) {
		tk, err := r.CreateTask("Bar", task.Arguments{"probability": 0.5})
		require.NoError(t, err)
		assert.IsType(t, &task.Static{}, tk)
		assert.Equal(t, 0.5, tk.Evaluate())
		assert.Equal(t, "Bar", tk.Name())
	})

	t.Run("other always falls back", func(t *testing.T) {
		tk, err := r.CreateTask(task.OtherTaskName, task.Arguments{})
		require.NoError(t, err)
		assert.IsType(t, &task.Static{}, tk)
	})

	t.Run("lookup failure", func(t *testing.T) {
		_, err := r.CreateTask("Bar", task.Arguments{"x": 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTaskNotFound))
		var lookupErr *LookupError
		require.ErrorAs(t, err, &lookupErr)
		assert.Equal(t, "Bar", lookupErr.Name)
	})

	t.Run("static handler name needs a probability", func(t *testing.T) {
		_, err := r.CreateTask(StaticHandler, task.Arguments{"x": 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrTaskNotFound))

		tk, err := r.CreateTask(StaticHandler, task.Arguments{"probability": 0.4})
		require.NoError(t, err)
		assert.Equal(t, 0.4, tk.Evaluate())
	})

	t.Run("configuration error propagates", func(t *testing.T) {
		_, err := r.CreateTask("Foo", task.Arguments{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, task.ErrConfiguration))
		assert.False(t, errors.Is(err, ErrTaskNotFound))
	})

	t.Run("declared type is enforced", func(t *testing.T) {
		_, err := r.CreateTask("Foo", task.Arguments{"x": "not a number"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, task.ErrConfiguration))
	})

	t.Run("numeric strings convert to declared number", func(t *testing.T) {
		tk, err := r.CreateTask("Foo", task.Arguments{"x": "0.25"})
		require.NoError(t, err)
		assert.Equal(t, 0.25, tk.Evaluate())
	})
}

func TestCreateTaskDirectHandler(t *testing.T) {
	r := New()
	r.Register("Foo", newFoo)

	tk, err := r.CreateTask("Foo", task.Arguments{"x": 0.9})
	require.NoError(t, err)
	assert.IsType(t, &fooTask{}, tk)
}

func TestManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "engage.hcl", `
task "Engage" {
  description = "Static engagement with a default probability."
  input "probability" {
    type    = number
    default = 0.65
  }
}
`)

	r := New()
	var logs bytes.Buffer
	require.NoError(t, r.Discover(testContext(&logs), dir))

	def, ok := r.Definition("Engage")
	require.True(t, ok)
	assert.Equal(t, StaticHandler, def.Handler)
	require.Len(t, def.Inputs, 1)
	assert.True(t, def.Inputs[0].Optional())

	tk, err := r.CreateTask("Engage", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.65, tk.Evaluate())
	assert.Equal(t, 0.65, tk.Arguments()["probability"])

	tk, err = r.CreateTask("Engage", task.Arguments{"probability": 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.1, tk.Evaluate())
}

func TestStaticManifestRequiresProbability(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "static.hcl", `
task "Loiter" {
  description = "No probability declared."
}

task "Other" {}
`)

	r := New()
	var logs bytes.Buffer
	require.NoError(t, r.Discover(testContext(&logs), dir))

	_, err := r.CreateTask("Loiter", task.Arguments{"x": 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, task.ErrConfiguration))

	tk, err := r.CreateTask("Other", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, tk.Evaluate())
}

func TestDiscoverLastDefinitionWins(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.hcl", `
task "Track" {
  input "probability" {
    type    = number
    default = 0.1
  }
}
`)
	writeManifest(t, dir, "b/track.hcl", `
task "Track" {
  input "probability" {
    type    = number
    default = 0.9
  }
}
`)

	r := New()
	var logs bytes.Buffer
	require.NoError(t, r.Discover(testContext(&logs), dir))

	def, ok := r.Definition("Track")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "b", "track.hcl"), def.Source)

	tk, err := r.CreateTask("Track", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.9, tk.Evaluate())
}

func TestDiscoverMissingDirectory(t *testing.T) {
	t.Run("warns and leaves the registry empty", func(t *testing.T) {
		r := New()
		var logs bytes.Buffer
		err := r.Discover(testContext(&logs), filepath.Join(t.TempDir(), "tasks"))
		require.NoError(t, err)
		assert.Contains(t, logs.String(), "No tasks directory was found")
		assert.Equal(t, []string{StaticHandler}, r.Names())
	})

	t.Run("silent mode emits nothing", func(t *testing.T) {
		r := New()
		ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
		require.NoError(t, r.Discover(ctx, filepath.Join(t.TempDir(), "tasks")))
	})
}

func TestDiscoverParseError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "broken.hcl", `task "Broken" {`)

	r := New()
	var logs bytes.Buffer
	err := r.Discover(testContext(&logs), dir)
	assert.ErrorContains(t, err, "failed to parse task manifest")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "bad.hcl", `
task "Ghost" {
  handler = "Missing"
}

task "Typed" {
  input "count" {
    type    = number
    default = "many"
  }
}
`)

	r := New()
	var logs bytes.Buffer
	require.NoError(t, r.Discover(testContext(&logs), dir))

	err := r.Validate(testContext(&logs))
	require.Error(t, err)
	assert.ErrorContains(t, err, "handler 'Missing' is not registered")
	assert.ErrorContains(t, err, "input 'count': default is not a valid number")

	_, err = r.CreateTask("Ghost", nil)
	assert.True(t, errors.Is(err, task.ErrConfiguration))
}

type moduleStub struct{ registered *bool }

func (m moduleStub) Register(r *Registry) {
	*m.registered = true
	r.Register("Stub", newFoo)
}

func TestRegisterModules(t *testing.T) {
	var called bool
	r := New()
	r.RegisterModules(moduleStub{registered: &called})
	assert.True(t, called)
	assert.True(t, r.HasHandler("Stub"))
	assert.Equal(t, []string{StaticHandler, "Stub"}, r.Names())
}
