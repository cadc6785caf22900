package config

import "strings"

// envKeyToKoanf maps an environment variable name such as
// FLOWC_COMPILE__OUTPUT_DIR to the koanf dotted path compile.output_dir.
// A double underscore marks nesting; a single underscore stays part of
// the field name, matching the struct tags in Config.
func envKeyToKoanf(key string) string {
	trimmed := strings.TrimPrefix(key, "FLOWC_")
	lowered := strings.ToLower(trimmed)
	return strings.ReplaceAll(lowered, "__", ".")
}
