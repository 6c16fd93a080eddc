package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/killweb/internal/config"
	"github.com/specialistvlad/killweb/internal/fsutil"
	"github.com/specialistvlad/killweb/internal/graph"
)

// ErrUnsupportedFormat is returned for killweb files with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported killweb file format")

// formatFor picks the format handling path's extension.
func (a *App) formatFor(path string) (config.Format, error) {
	ext := fsutil.ExtensionOf(path)
	var known []string
	for _, f := range a.formats {
		for _, e := range f.Extensions() {
			if e == ext {
				return f, nil
			}
			known = append(known, e)
		}
	}
	return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, ext, strings.Join(known, ", "))
}

// Load replaces the killweb with the first graph of the file at path. The
// current killweb is kept when loading fails.
func (a *App) Load(path string) error {
	a.logger.Debug("Loading killweb...", "path", path)
	format, err := a.formatFor(path)
	if err != nil {
		return err
	}
	model, err := format.Load(a.ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load killweb: %w", err)
	}
	cg, ok := model.First()
	if !ok {
		return fmt.Errorf("failed to load killweb: %s declares no killweb", path)
	}
	if len(model.Graphs) > 1 {
		a.logger.Warn("Only the first killweb in the file is used.", "path", path, "used", cg.Name, "declared", len(model.Graphs))
	}

	g := graph.New(a.registry)
	if err := g.Deserialize(a.ctx, cg); err != nil {
		return fmt.Errorf("failed to build killweb %q: %w", cg.Name, err)
	}
	a.graph = g
	a.logger.Info("Killweb loaded.", "name", cg.Name, "components", g.Len())
	return a.refresh()
}

// Save writes the killweb to path under name. The format follows the file
// extension.
func (a *App) Save(path, name string) error {
	format, err := a.formatFor(path)
	if err != nil {
		return err
	}
	cg := a.graph.Serialize()
	switch {
	case name != "":
		cg.Name = name
	case cg.Name == "":
		cg.Name = DefaultSaveName
	}
	return format.Save(a.ctx, path, &config.Model{Graphs: []*config.Graph{cg}})
}
