package config

import "dario.cat/mergo"

// ApplyOverrides merges override's non-zero fields onto cfg in place.
// The CLI's per-command flags are the override layer sitting above the
// file/env-derived Config that Manager.Load produced.
func ApplyOverrides(cfg *Config, override *Config) error {
	return mergo.Merge(cfg, override, mergo.WithOverride)
}
