// Package config provides the compiler binary's layered configuration:
// defaults, an optional YAML file, and environment variables, merged by
// koanf in that precedence order (later sources override earlier ones).
package config

import (
	"context"
	"time"
)

// CompileConfig controls the code generator's output behavior.
type CompileConfig struct {
	OutputDir string `koanf:"output_dir"`
	Overwrite bool   `koanf:"overwrite"`
}

// EvalConfig bounds the config evaluator's resource usage.
type EvalConfig struct {
	MaxScriptBytes int `koanf:"max_script_bytes"`
}

// LoggingConfig controls pkg/logger's construction.
type LoggingConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Config is the compiler's full configuration tree.
type Config struct {
	Compile CompileConfig `koanf:"compile"`
	Eval    EvalConfig    `koanf:"eval"`
	Logging LoggingConfig `koanf:"logging"`
}

// Default returns the compiler's built-in configuration.
func Default() *Config {
	return &Config{
		Compile: CompileConfig{OutputDir: "./out", Overwrite: false},
		Eval:    EvalConfig{MaxScriptBytes: 1 << 20},
		Logging: LoggingConfig{Level: "info", JSON: false},
	}
}

type ctxKey struct{}

// ContextWithConfig returns a new context carrying cfg.
func ContextWithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext retrieves the Config stored by ContextWithConfig, or the
// built-in default if none is present.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok && cfg != nil {
			return cfg
		}
	}
	return Default()
}

// Service is the injectable collaborator a Manager delegates to; the
// zero value is a working, no-op implementation.
type Service struct{}

// NewService returns the default Service implementation.
func NewService() *Service { return &Service{} }

// defaultDebounce is the Manager's default debounce interval (stored
// only; the Manager does not watch files).
const defaultDebounce = 100 * time.Millisecond
