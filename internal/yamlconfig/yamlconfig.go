// Package yamlconfig reads and writes killweb files in YAML.
//
// The layout mirrors the JSON form: a mapping of graphs, each a mapping of
// components with optional attributes and a connected_components sequence.
// Mapping order is taken from the yaml.v3 node tree so graphs and components
// keep their declaration order.
package yamlconfig

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Format implements config.Format for YAML files.
type Format struct{}

// New creates the YAML format.
func New() *Format {
	return &Format{}
}

// Extensions returns the handled extensions.
func (f *Format) Extensions() []string {
	return []string{".yaml", ".yml"}
}

type componentDoc struct {
	Attributes          map[string]any `yaml:"attributes,omitempty"`
	ConnectedComponents []string       `yaml:"connected_components"`
}

// Load reads a killweb file.
func (f *Format) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read killweb file %s: %w", path, err)
	}
	model, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode killweb file %s: %w", path, err)
	}
	logger.Debug("YAML loading complete.", "graphs", len(model.Graphs))
	return model, nil
}

// Decode parses a YAML killweb document.
func Decode(data []byte) (*config.Model, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	model := &config.Model{}
	if doc.Kind == 0 {
		return model, nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("expected a single YAML document")
	}

	err := eachPair(doc.Content[0], func(name string, value *yaml.Node) error {
		g := &config.Graph{Name: name}
		err := eachPair(value, func(component string, body *yaml.Node) error {
			var cd componentDoc
			if err := body.Decode(&cd); err != nil {
				return fmt.Errorf("component %q: %w", component, err)
			}
			links := cd.ConnectedComponents
			if links == nil {
				links = []string{}
			}
			g.Components = append(g.Components, &config.ComponentSpec{
				Name:                component,
				Attributes:          config.AttributesFromMap(normalizeNumbers(cd.Attributes).(map[string]any)),
				ConnectedComponents: links,
			})
			return nil
		})
		if err != nil {
			return fmt.Errorf("graph %q: %w", name, err)
		}
		model.Graphs = append(model.Graphs, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return model, nil
}

// normalizeNumbers turns every integer into a float64 so YAML values match
// what the JSON and HCL formats produce.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeNumbers(e)
		}
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return v
	}
}

// eachPair walks a mapping node in order. An empty value (`name:`) is
// treated as an empty mapping.
func eachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: expected a scalar key", k.Line)
		}
		if err := fn(k.Value, v); err != nil {
			return err
		}
	}
	return nil
}

// Save writes model to path.
func (f *Format) Save(ctx context.Context, path string, model *config.Model) error {
	data, err := Encode(model)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write killweb file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Killweb saved.", "path", path, "format", "yaml")
	return nil
}

// Encode renders model as YAML, keeping graph and component order.
func Encode(model *config.Model) ([]byte, error) {
	root := mapping()
	for _, g := range model.Graphs {
		gn := mapping()
		for _, c := range g.Components {
			cn, err := componentNode(c)
			if err != nil {
				return nil, fmt.Errorf("component %q: %w", c.Name, err)
			}
			gn.Content = append(gn.Content, scalar(c.Name), cn)
		}
		root.Content = append(root.Content, scalar(g.Name), gn)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func valueNode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

func componentNode(c *config.ComponentSpec) (*yaml.Node, error) {
	attrs := mapping()
	add := func(key string, v any) error {
		vn, err := valueNode(v)
		if err != nil {
			return err
		}
		attrs.Content = append(attrs.Content, scalar(key), vn)
		return nil
	}

	a := c.Attributes
	if a.HasTask() {
		args := a.TaskArguments
		if args == nil {
			args = map[string]any{}
		}
		if err := add(config.AttrTask, a.Task); err != nil {
			return nil, err
		}
		if err := add(config.AttrTaskArguments, args); err != nil {
			return nil, err
		}
	}
	if a.SystemName != "" {
		if err := add(config.AttrSystemName, a.SystemName); err != nil {
			return nil, err
		}
	}
	for _, k := range slices.Sorted(maps.Keys(a.Extra)) {
		if err := add(k, a.Extra[k]); err != nil {
			return nil, err
		}
	}

	links := c.ConnectedComponents
	if links == nil {
		links = []string{}
	}
	ln, err := valueNode(links)
	if err != nil {
		return nil, err
	}
	ln.Style = yaml.FlowStyle

	cn := mapping()
	cn.Content = append(cn.Content, scalar("attributes"), attrs, scalar("connected_components"), ln)
	return cn, nil
}
