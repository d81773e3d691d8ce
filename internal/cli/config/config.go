// Package config loads the bindgen CLI configuration from file, environment
// and flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/bindgen/internal/pipeline"
)

// Config file names looked for in the working directory.
const (
	ConfigFileName    = "bindgen.yaml"
	ConfigFileNameAlt = "bindgen.yml"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// BINDGEN_PIPELINE.
const envPrefix = "BINDGEN_"

// Config holds the CLI settings.
type Config struct {
	// Pipeline is the registered pipeline name driver scripts run against.
	Pipeline string `koanf:"pipeline"`

	// LogLevel is the slog level for pipeline logging (debug|info|warn|error).
	LogLevel string `koanf:"log_level"`

	// Verbose forces debug logging.
	Verbose bool `koanf:"verbose"`
}

// findConfigFile picks the config file to use. An explicit path wins;
// otherwise bindgen.yaml then bindgen.yml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load layers the configuration sources. Precedence, highest first:
// flags > environment > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"pipeline":  pipeline.DryRunName,
		"log_level": "info",
		"verbose":   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// BINDGEN_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
