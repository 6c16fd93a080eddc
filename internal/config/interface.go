package config

import "context"

// Loader is the interface for a format-specific killweb file reader.
type Loader interface {
	// Load reads the file at path and translates it into the model,
	// preserving the declaration order of graphs and components.
	Load(ctx context.Context, path string) (*Model, error)
}

// Saver is the interface for a format-specific killweb file writer.
type Saver interface {
	Save(ctx context.Context, path string, model *Model) error
}

// Format bundles the loader and saver of one file format.
type Format interface {
	Loader
	Saver
	// Extensions lists the file extensions handled, including the dot.
	Extensions() []string
}
