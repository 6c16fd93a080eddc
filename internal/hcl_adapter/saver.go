package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/ctyconv"
	"github.com/zclconf/go-cty/cty"
)

// Save writes model to path.
func (f *Format) Save(ctx context.Context, path string, model *config.Model) error {
	data, err := Encode(model)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write killweb file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Killweb saved.", "path", path, "format", "hcl")
	return nil
}

// Encode renders model as formatted HCL.
func Encode(model *config.Model) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	for i, g := range model.Graphs {
		if i > 0 {
			body.AppendNewline()
		}
		kb := body.AppendNewBlock("killweb", []string{g.Name}).Body()
		for j, c := range g.Components {
			if j > 0 {
				kb.AppendNewline()
			}
			if err := writeComponent(kb.AppendNewBlock("component", []string{c.Name}).Body(), c); err != nil {
				return nil, fmt.Errorf("component %q: %w", c.Name, err)
			}
		}
	}
	return hclwrite.Format(file.Bytes()), nil
}

func writeComponent(body *hclwrite.Body, c *config.ComponentSpec) error {
	a := c.Attributes
	if a.HasTask() {
		body.SetAttributeValue("task", cty.StringVal(a.Task))
		args := a.TaskArguments
		if args == nil {
			args = map[string]any{}
		}
		v, err := ctyconv.ToValue(args)
		if err != nil {
			return fmt.Errorf("task_arguments: %w", err)
		}
		body.SetAttributeValue("task_arguments", v)
	}
	if a.SystemName != "" {
		body.SetAttributeValue("system_name", cty.StringVal(a.SystemName))
	}

	links := make([]cty.Value, len(c.ConnectedComponents))
	for i, l := range c.ConnectedComponents {
		links[i] = cty.StringVal(l)
	}
	if len(links) == 0 {
		body.SetAttributeValue("connected_components", cty.ListValEmpty(cty.String))
	} else {
		body.SetAttributeValue("connected_components", cty.ListVal(links))
	}

	if len(a.Extra) > 0 {
		v, err := ctyconv.ToValue(a.Extra)
		if err != nil {
			return fmt.Errorf("attributes: %w", err)
		}
		body.SetAttributeValue("attributes", v)
	}
	return nil
}
