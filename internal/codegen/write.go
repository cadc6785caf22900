package codegen

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/pkg/logger"
)

// WriteProject materializes a Project under destDir/<project.Name>. It
// stages every file in a sibling temporary directory and renames it
// into place only once every file has been written successfully, so a
// failure partway through never leaves a half-written project on disk.
func WriteProject(ctx context.Context, p *Project, destDir string, overwrite bool) (string, error) {
	log := logger.FromContext(ctx)
	target := filepath.Join(destDir, p.Name)

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", diagnostics.IOError(target, os.ErrExist)
		} else if !os.IsNotExist(err) {
			return "", diagnostics.IOError(target, err)
		}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", diagnostics.IOError(destDir, err)
	}

	staging, err := os.MkdirTemp(destDir, ".flowc-"+p.Name+"-*")
	if err != nil {
		return "", diagnostics.IOError(destDir, err)
	}
	defer os.RemoveAll(staging)

	for rel, content := range p.Files {
		full := filepath.Join(staging, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return "", diagnostics.IOError(full, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			return "", diagnostics.IOError(full, err)
		}
	}

	if overwrite {
		if err := os.RemoveAll(target); err != nil {
			return "", diagnostics.IOError(target, err)
		}
	}
	if err := os.Rename(staging, target); err != nil {
		return "", diagnostics.IOError(target, err)
	}

	log.Info("wrote generated project", "workflow", p.Name, "path", target, "files", len(p.Files))
	return target, nil
}
