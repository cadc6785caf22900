// Command flowc compiles sandboxed workflow configuration scripts into
// deterministic Rust/WebAssembly projects.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ajaykumargdr/flowc/pkg/config"
	"github.com/ajaykumargdr/flowc/pkg/logger"
)

func main() {
	root := newRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "flowc",
		Short: "flowc compiles workflow configuration scripts into Rust/WebAssembly projects",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupGlobalConfig(cmd)
		},
	}

	root.PersistentFlags().StringP("cwd", "", "", "Current working directory")
	root.PersistentFlags().StringP("config", "c", "flowc.yaml", "Path to the config file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug-level logging")

	root.AddCommand(compileCmd())
	root.AddCommand(validateCmd())
	return root
}

// setupGlobalConfig loads the layered configuration (defaults, YAML
// overlay, environment) and attaches both the Config and a Logger built
// from it to the command's context before any subcommand runs.
func setupGlobalConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if cwd, _ := cmd.Flags().GetString("cwd"); cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return fmt.Errorf("flowc: changing working directory to %s: %w", cwd, err)
		}
	}

	// A .env file in the working directory feeds the FLOWC_* variables
	// the env provider reads below. Missing file means no overlay.
	_ = godotenv.Load()

	configPath, _ := cmd.Flags().GetString("config")
	mgr := config.NewManager(nil)
	cfg, err := mgr.Load(ctx,
		config.NewDefaultProvider(),
		config.NewYAMLProvider(configPath),
		config.NewEnvProvider(),
	)
	if err != nil {
		return fmt.Errorf("flowc: loading configuration: %w", err)
	}
	ctx = config.ContextWithConfig(ctx, cfg)

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := logger.LogLevel(cfg.Logging.Level)
	if verbose {
		level = logger.DebugLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		Output:     os.Stderr,
		JSON:       cfg.Logging.JSON,
		TimeFormat: "15:04:05",
	})
	ctx = logger.ContextWithLogger(ctx, log)

	cmd.SetContext(ctx)
	return nil
}
