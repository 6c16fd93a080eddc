package jsonconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/ctxlog"
)

// Extension is the file extension handled by this package.
const Extension = ".json"

// Format implements config.Format for JSON files.
type Format struct{}

// New creates the JSON format.
func New() *Format {
	return &Format{}
}

// Extensions returns the handled extensions.
func (f *Format) Extensions() []string {
	return []string{Extension}
}

// Load reads a killweb file.
func (f *Format) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("JSON loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read killweb file %s: %w", path, err)
	}
	model, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode killweb file %s: %w", path, err)
	}

	logger.Debug("JSON loading complete.", "graphs", len(model.Graphs))
	return model, nil
}

// Decode parses a JSON killweb document.
func Decode(data []byte) (*config.Model, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	model := &config.Model{}

	err := decodeObject(dec, func(name string) error {
		g := &config.Graph{Name: name}
		err := decodeObject(dec, func(component string) error {
			spec, err := decodeComponent(dec, component)
			if err != nil {
				return err
			}
			g.Components = append(g.Components, spec)
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
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the top-level object")
	}
	return model, nil
}

// decodeObject consumes one JSON object, calling member for each key with
// the decoder positioned at the value.
func decodeObject(dec *json.Decoder, member func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected an object, found %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, found %v", tok)
		}
		if err := member(key); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

type componentDoc struct {
	Attributes          map[string]any `json:"attributes"`
	ConnectedComponents []string       `json:"connected_components"`
}

func decodeComponent(dec *json.Decoder, name string) (*config.ComponentSpec, error) {
	var doc componentDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("component %q: %w", name, err)
	}
	links := doc.ConnectedComponents
	if links == nil {
		links = []string{}
	}
	return &config.ComponentSpec{
		Name:                name,
		Attributes:          config.AttributesFromMap(doc.Attributes),
		ConnectedComponents: links,
	}, nil
}
