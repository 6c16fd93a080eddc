package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/ctyconv"
)

// Extension is the file extension handled by this package.
const Extension = ".hcl"

// Format is the HCL implementation of config.Format.
type Format struct{}

// New creates a new HCL killweb format.
func New() *Format {
	return &Format{}
}

// Extensions returns the handled extensions.
func (f *Format) Extensions() []string {
	return []string{Extension}
}

// fileRoot decodes all top-level blocks of a killweb file.
type fileRoot struct {
	Killwebs []*killwebBlock `hcl:"killweb,block"`
	Remain   hcl.Body        `hcl:",remain"`
}

type killwebBlock struct {
	Name       string            `hcl:"name,label"`
	Components []*componentBlock `hcl:"component,block"`
}

type componentBlock struct {
	Name                string         `hcl:"name,label"`
	Task                string         `hcl:"task,optional"`
	TaskArguments       hcl.Expression `hcl:"task_arguments,optional"`
	SystemName          string         `hcl:"system_name,optional"`
	ConnectedComponents []string       `hcl:"connected_components,optional"`
	Attributes          hcl.Expression `hcl:"attributes,optional"`
}

// Load reads a killweb file.
func (f *Format) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	model, err := decodeFile(ctx, hclFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "graphs", len(model.Graphs))
	return model, nil
}

// Decode parses HCL source held in memory. filename is used in diagnostics.
func Decode(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	return decodeFile(ctx, hclFile)
}

func decodeFile(ctx context.Context, file *hcl.File) (*config.Model, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	model := &config.Model{}
	for _, kb := range root.Killwebs {
		g := &config.Graph{Name: kb.Name}
		for _, cb := range kb.Components {
			spec, err := translateComponent(ctx, cb)
			if err != nil {
				return nil, fmt.Errorf("killweb %q: %w", kb.Name, err)
			}
			g.Components = append(g.Components, spec)
		}
		model.Graphs = append(model.Graphs, g)
	}
	return model, nil
}

func translateComponent(ctx context.Context, cb *componentBlock) (*config.ComponentSpec, error) {
	spec := &config.ComponentSpec{
		Name:                cb.Name,
		ConnectedComponents: cb.ConnectedComponents,
		Attributes: config.Attributes{
			Task:       cb.Task,
			SystemName: cb.SystemName,
		},
	}
	if spec.ConnectedComponents == nil {
		spec.ConnectedComponents = []string{}
	}

	if isExprDefined(ctx, cb.TaskArguments, "task_arguments") {
		args, err := evalObject(cb.TaskArguments)
		if err != nil {
			return nil, fmt.Errorf("component %q, task_arguments: %w", cb.Name, err)
		}
		spec.Attributes.TaskArguments = args
	} else if cb.Task != "" {
		spec.Attributes.TaskArguments = map[string]any{}
	}

	if isExprDefined(ctx, cb.Attributes, "attributes") {
		extra, err := evalObject(cb.Attributes)
		if err != nil {
			return nil, fmt.Errorf("component %q, attributes: %w", cb.Name, err)
		}
		if len(extra) > 0 {
			spec.Attributes.Extra = extra
		}
	}
	return spec, nil
}

// evalObject evaluates a literal object expression into a Go map.
func evalObject(expr hcl.Expression) (map[string]any, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	native, err := ctyconv.ToNative(val)
	if err != nil {
		return nil, err
	}
	m, ok := native.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %s", val.Type().FriendlyName())
	}
	return m, nil
}
