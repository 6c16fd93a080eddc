package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/killweb/internal/ctxlog"
	"github.com/specialistvlad/killweb/internal/fsutil"
)

// ManifestExtension is the file extension of task manifests.
const ManifestExtension = ".hcl"

// Discover loads every task manifest below dir. A missing directory is not an
// error: the registry simply gains no definitions and a warning is logged.
func (r *Registry) Discover(ctx context.Context, dir string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovering task manifests...", "path", dir)

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("No tasks directory was found. Continuing with assumption that all tasks use static probability.", "path", dir)
			return nil
		}
		return fmt.Errorf("error accessing tasks path %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("tasks path %s is not a directory", dir)
	}

	filePaths, err := fsutil.FindFilesByExtension(dir, ManifestExtension)
	if err != nil {
		return fmt.Errorf("failed to walk tasks directory %s: %w", dir, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No task manifests found in tasks directory.", "path", dir)
		return nil
	}

	parser := hclparse.NewParser()
	count := 0
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse task manifest %s: %w", filePath, diags)
		}

		defs, err := decodeManifest(ctx, hclFile, filePath)
		if err != nil {
			return err
		}
		for _, def := range defs {
			r.Define(def)
			count++
		}
		logger.Debug("Loaded task manifest.", "file", filePath, "definitions", len(defs))
	}

	logger.Info("Task manifests discovered.", "files", len(filePaths), "definitions", count)
	return nil
}
