// Package expression provides a task whose probability is computed by a CEL
// expression over the task's own arguments.
//
//	task           = "Expression"
//	task_arguments = { expression = "args.base * (1.0 - args.jamming)", base = 0.9, jamming = 0.2 }
//
// The expression sees every argument under "args" and may call
// uniform(lo, hi) to draw a fresh sample. Results are clamped to [0, 1].
package expression

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/specialistvlad/killweb/internal/registry"
	"github.com/specialistvlad/killweb/internal/task"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// TaskName is the name the task registers under.
const TaskName = "Expression"

// ExpressionKey is the argument holding the CEL source.
const ExpressionKey = "expression"

// Task evaluates a compiled CEL program on every call.
type Task struct {
	task.Base
	source  string
	program cel.Program
	vars    map[string]any
	logger  *slog.Logger
}

// New compiles the expression argument. Compilation and type errors are
// reported as configuration errors.
func New(name string, args task.Arguments) (task.Task, error) {
	source, err := args.RequireString(name, ExpressionKey)
	if err != nil {
		return nil, err
	}

	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create expression environment: %w", err)
	}
	ast, iss := env.Compile(source)
	if iss.Err() != nil {
		return nil, &task.ConfigError{Task: name, Key: ExpressionKey, Reason: iss.Err().Error()}
	}
	switch ast.OutputType().Kind() {
	case types.DoubleKind, types.IntKind, types.UintKind, types.DynKind:
	default:
		return nil, &task.ConfigError{Task: name, Key: ExpressionKey, Reason: fmt.Sprintf("expression must produce a number, got %s", ast.OutputType())}
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, &task.ConfigError{Task: name, Key: ExpressionKey, Reason: err.Error()}
	}

	return &Task{
		Base:    task.NewBase(name, args),
		source:  source,
		program: prg,
		vars:    map[string]any{"args": map[string]any(args.Clone())},
		logger:  slog.Default(),
	}, nil
}

// SetLogger replaces the logger evaluation failures are reported on.
func (t *Task) SetLogger(logger *slog.Logger) {
	t.logger = logger
}

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
)

// Seed resets the stream used by uniform(). Intended for tests and
// reproducible runs.
func Seed(seed uint64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	rng = rand.New(rand.NewPCG(seed, 0))
}

func uniform(lo, hi ref.Val) ref.Val {
	l, lok := lo.(types.Double)
	h, hok := hi.(types.Double)
	if !lok || !hok {
		return types.NewErr("uniform: expected double arguments")
	}
	rngMu.Lock()
	u := rng.Float64()
	rngMu.Unlock()
	return types.Double(float64(l) + u*float64(h-l))
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("args", cel.MapType(cel.StringType, cel.DynType)),
		cel.Function("uniform",
			cel.Overload("uniform_double_double",
				[]*cel.Type{cel.DoubleType, cel.DoubleType}, cel.DoubleType,
				cel.BinaryBinding(uniform),
			),
		),
	)
}

// Evaluate runs the program. A runtime failure is logged and counts as zero.
func (t *Task) Evaluate() float64 {
	out, _, err := t.program.Eval(t.vars)
	if err != nil {
		t.logger.Warn("Expression evaluation failed; treating as zero.", "task", t.Name(), "expression", t.source, "error", err)
		return 0
	}
	switch v := out.Value().(type) {
	case float64:
		return task.Clamp(v)
	case int64:
		return task.Clamp(float64(v))
	case uint64:
		return task.Clamp(float64(v))
	default:
		t.logger.Warn("Expression produced a non-numeric value; treating as zero.", "task", t.Name(), "type", fmt.Sprintf("%T", v))
		return 0
	}
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(TaskName, New)
}
