package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Provider is one layer in the configuration manager's load sequence.
// Layers are applied in the order passed to Manager.Load; later layers
// override earlier ones.
type Provider interface {
	Apply(k *koanf.Koanf) error
}

type providerFunc func(k *koanf.Koanf) error

func (f providerFunc) Apply(k *koanf.Koanf) error { return f(k) }

// NewDefaultProvider loads Default() into the koanf tree via koanf's
// structs provider.
func NewDefaultProvider() Provider {
	return providerFunc(func(k *koanf.Koanf) error {
		return k.Load(structs.Provider(Default(), "koanf"), nil)
	})
}

// NewYAMLProvider loads cfgPath as a YAML config file overlay. A
// missing file is not an error: it means "no overlay", so the --config
// flag can stay optional.
func NewYAMLProvider(cfgPath string) Provider {
	return providerFunc(func(k *koanf.Koanf) error {
		if cfgPath == "" {
			return nil
		}
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("config: reading %s: %w", cfgPath, err)
		}
		return k.Load(&yamlBytesProvider{data: data}, nil)
	})
}

// NewEnvProvider loads FLOWC_-prefixed environment variables, mapping
// FLOWC_COMPILE__OUTPUT_DIR -> compile.output_dir (double underscore is
// the nesting delimiter; see envKeyToKoanf).
func NewEnvProvider() Provider {
	return providerFunc(func(k *koanf.Koanf) error {
		return k.Load(envprovider.Provider(".", envprovider.Opt{
			Prefix: "FLOWC_",
			TransformFunc: func(key, value string) (string, any) {
				return envKeyToKoanf(key), value
			},
		}), nil)
	})
}

// yamlBytesProvider is a minimal koanf.Provider that parses YAML bytes
// into the nested map koanf expects, without depending on a separate
// koanf YAML parser module.
type yamlBytesProvider struct{ data []byte }

func (p *yamlBytesProvider) ReadBytes() ([]byte, error) { return p.data, nil }

func (p *yamlBytesProvider) Read() (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if err := yaml.Unmarshal(p.data, &out); err != nil {
		return nil, fmt.Errorf("config: parsing yaml: %w", err)
	}
	return out, nil
}
