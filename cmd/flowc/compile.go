package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ajaykumargdr/flowc/internal/codegen"
	"github.com/ajaykumargdr/flowc/internal/diagnostics"
	"github.com/ajaykumargdr/flowc/internal/eval"
	"github.com/ajaykumargdr/flowc/pkg/config"
	"github.com/ajaykumargdr/flowc/pkg/logger"
)

func compileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <script.star>",
		Short: "Evaluate a configuration script and generate its Rust/WebAssembly project(s)",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	cmd.Flags().StringP("out", "o", "", "Output directory (defaults to the configured compile.output_dir)")
	cmd.Flags().Bool("overwrite", false, "Overwrite an existing project directory")
	cmd.Flags().String("crate-version", "0.1.0", "Version written into each generated Cargo.toml")
	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	// Flags the user actually passed are an override layer on top of
	// the file/env-derived Config (see pkg/config/merge.go).
	var override config.Config
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		override.Compile.OutputDir = v
	}
	if f := cmd.Flags().Lookup("overwrite"); f != nil && f.Changed {
		override.Compile.Overwrite, _ = cmd.Flags().GetBool("overwrite")
	}
	if err := config.ApplyOverrides(cfg, &override); err != nil {
		return fmt.Errorf("flowc: applying flag overrides: %w", err)
	}

	outDir := cfg.Compile.OutputDir
	overwrite := cfg.Compile.Overwrite
	crateVersion, _ := cmd.Flags().GetString("crate-version")

	// compileID correlates every log line this invocation emits.
	compileID := uuid.NewString()
	log := logger.FromContext(ctx).With("compile_id", compileID)
	ctx = logger.ContextWithLogger(ctx, log)

	scriptPath := args[0]
	src, err := readScript(scriptPath, cfg.Eval.MaxScriptBytes)
	if err != nil {
		return err
	}

	log.Info("evaluating script", "path", scriptPath)
	composer, err := eval.Run(ctx, scriptPath, src)
	if err != nil {
		return err
	}

	projects, err := codegen.Generate(composer, codegen.Options{CrateVersion: crateVersion})
	if err != nil {
		return err
	}

	for _, p := range projects {
		target, err := codegen.WriteProject(ctx, p, outDir, overwrite)
		if err != nil {
			return err
		}
		log.Info("generated project", "workflow", p.Name, "path", target)
		fmt.Fprintln(cmd.OutOrStdout(), target)
	}
	return nil
}

// readScript reads a script file, rejecting anything past maxBytes
// before it is handed to the evaluator.
func readScript(path string, maxBytes int) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, diagnostics.IOError(path, err)
	}
	if maxBytes > 0 && info.Size() > int64(maxBytes) {
		return nil, diagnostics.IOError(path,
			fmt.Errorf("script is %d bytes, exceeding the %d byte limit", info.Size(), maxBytes))
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, diagnostics.IOError(path, err)
	}
	return data, nil
}
