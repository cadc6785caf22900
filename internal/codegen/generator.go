// Package codegen turns a validated, in-memory workflow model into a
// deterministic Rust/WebAssembly project: one output directory per
// workflow, wiring the fixed boilerplate registry to the per-task and
// per-workflow units this package renders.
package codegen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ajaykumargdr/flowc/internal/boilerplate"
	"github.com/ajaykumargdr/flowc/internal/model"
)

// Project is a generated output: a set of relative file paths to their
// complete textual content, ready to be written to disk verbatim.
type Project struct {
	Name  string
	Files map[string]string
}

// Options controls project-level naming independent of the workflow
// model itself.
type Options struct {
	// CrateVersion is the version written into every workflow's
	// Cargo.toml. Defaults to "0.1.0" when empty.
	CrateVersion string
}

// Generate renders one Project per workflow the composer accumulated.
// Each project is fully self-contained: the composer's transitively
// reachable custom types, every task's input/struct/constructor/setter
// unit, the main() entry point, and the verbatim boilerplate registry.
//
// Generation is pure and deterministic: the same Composer and Options
// always produce byte-identical output, which is what lets a caller
// treat a re-compile as a diff instead of a rewrite.
func Generate(composer *model.Composer, opts Options) ([]*Project, error) {
	if opts.CrateVersion == "" {
		opts.CrateVersion = "0.1.0"
	}

	workflows := composer.Workflows()
	projects := make([]*Project, 0, len(workflows))
	for _, w := range workflows {
		p, err := generateOne(composer, w, opts)
		if err != nil {
			return nil, fmt.Errorf("codegen: workflow %q: %w", w.Name, err)
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func generateOne(composer *model.Composer, w model.Workflow, opts Options) (*Project, error) {
	typesUnit, err := renderTypesUnit(composer, w)
	if err != nil {
		return nil, err
	}

	var taskUnits []string
	for _, t := range w.OrderedTasks() {
		unit, err := renderTaskUnit(t)
		if err != nil {
			return nil, err
		}
		taskUnits = append(taskUnits, unit)
	}

	mainUnit, err := renderMainUnit(w)
	if err != nil {
		return nil, err
	}

	var typesSrc strings.Builder
	typesSrc.WriteString(typesUnit)
	typesSrc.WriteString(strings.Join(taskUnits, "\n\n"))
	typesSrc.WriteString("\n\n")
	typesSrc.WriteString(mainUnit)

	manifest, err := boilerplate.CargoManifest(w.Name, opts.CrateVersion)
	if err != nil {
		return nil, err
	}

	files := map[string]string{
		filepath.Join("src", "types.rs"):  typesSrc.String(),
		filepath.Join("src", "lib.rs"):    boilerplate.Lib,
		filepath.Join("src", "common.rs"): boilerplate.Common,
		filepath.Join("src", "macros.rs"): boilerplate.Macros,
		filepath.Join("src", "traits.rs"): boilerplate.Trait,
		"Cargo.toml":                      manifest,
	}

	return &Project{Name: w.Name, Files: files}, nil
}
