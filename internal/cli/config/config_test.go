package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Int("cells", DefaultCells, "")
	f.String("format", DefaultFormat, "")
	f.String("out-dir", DefaultOutDir, "")
	f.String("section", "", "")
	f.Bool("verbose", false, "")
	return f
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCells, cfg.Cells)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Empty(t, cfg.Section)
	assert.False(t, cfg.Verbose)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cells: 200\nformat: dxf\nout_dir: /tmp/out\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Cells)
	assert.Equal(t, "dxf", cfg.Format)
	assert.Equal(t, "/tmp/out", cfg.OutDir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphite.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: dxf\n"), 0o644))
	t.Setenv("GRAPHITE_FORMAT", "both")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "both", cfg.Format)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GRAPHITE_FORMAT", "dxf")

	flags := newFlags()
	require.NoError(t, flags.Set("format", "svg"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "svg", cfg.Format)
}

func TestLoadUnchangedFlagsDoNotOverride(t *testing.T) {
	t.Setenv("GRAPHITE_CELLS", "64")

	cfg, err := Load("", newFlags())
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Cells, "an unset flag must not mask the env var")
}

func TestLoadKebabFlagMapsToSnakeKey(t *testing.T) {
	flags := newFlags()
	require.NoError(t, flags.Set("out-dir", "build"))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.OutDir)
}

func TestLoadValidation(t *testing.T) {
	t.Run("bad format", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Set("format", "pdf"))
		_, err := Load("", flags)
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("cells too low", func(t *testing.T) {
		flags := newFlags()
		require.NoError(t, flags.Set("cells", "8"))
		_, err := Load("", flags)
		assert.ErrorContains(t, err, "at least 16")
	})
}

func TestFindConfigFile(t *testing.T) {
	assert.Equal(t, "explicit.yaml", findConfigFile("explicit.yaml"))
	assert.Empty(t, findConfigFile(""))
}
