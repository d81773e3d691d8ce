package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bindgen/internal/pipeline"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("pipeline", "", "")
	flags.String("log-level", "", "")
	flags.Bool("verbose", false, "")
	return flags
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BINDGEN_PIPELINE", "BINDGEN_LOG_LEVEL", "BINDGEN_VERBOSE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, pipeline.DryRunName, cfg.Pipeline)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Verbose)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bindgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline: custom\nlog_level: debug\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Pipeline)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bindgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline: from_file\n"), 0o600))
	t.Setenv("BINDGEN_PIPELINE", "from_env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Pipeline)
}

func TestFlagsOverrideEverything(t *testing.T) {
	clearEnv(t)
	t.Setenv("BINDGEN_PIPELINE", "from_env")

	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--pipeline", "from_flag", "--log-level", "warn"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from_flag", cfg.Pipeline)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestUnchangedFlagsDoNotOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("BINDGEN_PIPELINE", "from_env")

	flags := newFlags(t)
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Pipeline)
}
