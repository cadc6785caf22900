// Package eval implements the sandboxed, side-effect-restricted
// interpreter for the workflow configuration language. It executes a
// script against a fixed builder vocabulary (task, workflows, argument,
// depend, EchoStruct, Tuple, HashMap, List, normal, concat, combine,
// map) and populates a model.Composer as its only observable effect.
package eval

import (
	"context"
	"errors"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/model"
	"github.com/ajaykumargdr/flowc/pkg/logger"
)

// Run executes src (a Starlark-dialect configuration script) and
// returns a frozen Composer snapshot. Scripts have no ambient I/O: no
// Load function is bound to the thread, so `load(...)` statements fail
// closed rather than reaching the filesystem or network.
//
// On any evaluation error, no partial Composer state is returned: the
// working Composer is discarded and the caller only ever sees the
// error.
func Run(ctx context.Context, filename string, src []byte) (*model.Composer, error) {
	log := logger.FromContext(ctx)
	composer := model.NewComposer()

	thread := &starlark.Thread{
		Name: filename,
		Load: nil, // no imports beyond the builder vocabulary
		Print: func(_ *starlark.Thread, msg string) {
			log.Debug("script print", "filename", filename, "message", msg)
		},
	}

	globals := Globals(composer)

	log.Debug("evaluating script", "filename", filename)
	_, err := starlark.ExecFile(thread, filename, src, globals)
	if err != nil {
		// A builder-raised Diagnostic comes back wrapped in a
		// starlark.EvalError; surface it with its own kind intact.
		var diag *diagnostics.Diagnostic
		if errors.As(err, &diag) {
			return nil, diag
		}
		if evalErr, ok := err.(*starlark.EvalError); ok {
			return nil, diagnostics.ScriptParseError(filename, fmt.Errorf("%s", evalErr.Backtrace()))
		}
		return nil, diagnostics.ScriptParseError(filename, err)
	}

	for _, wf := range composer.Workflows() {
		if err := composer.ValidateWorkflow(wf); err != nil {
			return nil, err
		}
	}

	return composer.Snapshot(), nil
}
