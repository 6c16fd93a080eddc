package jsonconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
)

const indent = "    "

// Save writes model to path.
func (f *Format) Save(ctx context.Context, path string, model *config.Model) error {
	data, err := Encode(model)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write killweb file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Info("Killweb saved.", "path", path, "format", "json")
	return nil
}

// Encode renders model as indented JSON, keeping graph and component order.
// Attributes are written as task, task_arguments, system_name and then any
// extra keys in lexical order.
func Encode(model *config.Model) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for gi, g := range model.Graphs {
		if gi > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, g.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for ci, c := range g.Components {
			if ci > 0 {
				buf.WriteByte(',')
			}
			if err := writeComponent(&buf, c); err != nil {
				return nil, fmt.Errorf("component %q: %w", c.Name, err)
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}

func writeValue(buf *bytes.Buffer, key string, v any) error {
	if err := writeKey(buf, key); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func writeComponent(buf *bytes.Buffer, c *config.ComponentSpec) error {
	if err := writeKey(buf, c.Name); err != nil {
		return err
	}
	buf.WriteString(`{"attributes":{`)

	type kv struct {
		key string
		val any
	}
	var attrs []kv
	a := c.Attributes
	if a.HasTask() {
		args := a.TaskArguments
		if args == nil {
			args = map[string]any{}
		}
		attrs = append(attrs, kv{config.AttrTask, a.Task}, kv{config.AttrTaskArguments, args})
	}
	if a.SystemName != "" {
		attrs = append(attrs, kv{config.AttrSystemName, a.SystemName})
	}
	for _, k := range slices.Sorted(maps.Keys(a.Extra)) {
		attrs = append(attrs, kv{k, a.Extra[k]})
	}
	for i, attr := range attrs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, attr.key, attr.val); err != nil {
			return err
		}
	}
	buf.WriteString(`},`)

	links := c.ConnectedComponents
	if links == nil {
		links = []string{}
	}
	if err := writeValue(buf, "connected_components", links); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}
