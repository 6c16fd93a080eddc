package registry

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Definition is a task declared by a manifest file.
type Definition struct {
	Name        string
	Handler     string
	Description string
	Inputs      []*InputDefinition
	// Source is the manifest file the definition was read from.
	Source string
}

// InputDefinition declares one argument of a task.
type InputDefinition struct {
	Name        string
	Type        cty.Type
	Description string
	// Default is nil for required inputs.
	Default *cty.Value
}

// Optional reports whether the input carries a default.
func (in *InputDefinition) Optional() bool {
	return in.Default != nil
}

// manifestRoot decodes every top-level block of a manifest file. Unknown
// blocks are tolerated so manifests can live next to other HCL files.
type manifestRoot struct {
	Tasks  []*taskBlock `hcl:"task,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type taskBlock struct {
	Name        string        `hcl:"name,label"`
	Handler     string        `hcl:"handler,optional"`
	Description string        `hcl:"description,optional"`
	Inputs      []*inputBlock `hcl:"input,block"`
}

type inputBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

// decodeManifest turns one parsed HCL file into task definitions.
func decodeManifest(ctx context.Context, file *hcl.File, path string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	var root manifestRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode task manifest %s: %w", path, diags)
	}

	defs := make([]*Definition, 0, len(root.Tasks))
	for _, tb := range root.Tasks {
		def := &Definition{
			Name:        tb.Name,
			Handler:     tb.Handler,
			Description: tb.Description,
			Source:      path,
		}
		if def.Handler == "" {
			def.Handler = StaticHandler
		}

		seen := make(map[string]struct{}, len(tb.Inputs))
		for _, ib := range tb.Inputs {
			if _, dup := seen[ib.Name]; dup {
				return nil, fmt.Errorf("task %q in %s declares input %q more than once", tb.Name, path, ib.Name)
			}
			seen[ib.Name] = struct{}{}

			in, err := translateInput(ib)
			if err != nil {
				return nil, fmt.Errorf("task %q in %s: %w", tb.Name, path, err)
			}
			def.Inputs = append(def.Inputs, in)
		}

		logger.Debug("Decoded task definition.", "task", def.Name, "handler", def.Handler, "inputs", len(def.Inputs))
		defs = append(defs, def)
	}
	return defs, nil
}

func translateInput(ib *inputBlock) (*InputDefinition, error) {
	in := &InputDefinition{
		Name:        ib.Name,
		Type:        cty.DynamicPseudoType,
		Description: ib.Description,
	}

	if isExprDefined(ib.Type) {
		ty, diags := typeexpr.TypeConstraint(ib.Type)
		if diags.HasErrors() {
			return nil, fmt.Errorf("input %q: invalid type: %w", ib.Name, diags)
		}
		in.Type = ty
	}

	if isExprDefined(ib.Default) {
		val, diags := ib.Default.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("input %q: invalid default value: %w", ib.Name, diags)
		}
		if !val.IsNull() {
			in.Default = &val
		}
	}
	return in, nil
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted optional expressions with a zero-width
// placeholder, so a nil check alone is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}
