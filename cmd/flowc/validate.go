package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajaykumargdr/flowc/internal/eval"
	"github.com/ajaykumargdr/flowc/pkg/config"
	"github.com/ajaykumargdr/flowc/pkg/logger"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <script.star>",
		Short: "Evaluate and validate a configuration script without generating output",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)
	cfg := config.FromContext(ctx)

	scriptPath := args[0]
	src, err := readScript(scriptPath, cfg.Eval.MaxScriptBytes)
	if err != nil {
		return err
	}

	composer, err := eval.Run(ctx, scriptPath, src)
	if err != nil {
		return err
	}

	workflows := composer.Workflows()
	log.Info("script is valid", "path", scriptPath, "workflows", len(workflows))
	for _, w := range workflows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s@%s: %d task(s)\n", w.Name, w.Version, len(w.Order))
	}
	return nil
}
