// Package config loads graphite's CLI configuration from defaults, a
// YAML file, environment variables and command-line flags, in rising
// precedence.
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
)

// Defaults.
const (
	DefaultCells  = 120
	DefaultFormat = "svg"
	DefaultOutDir = "."
)

// Config is the resolved tool configuration.
type Config struct {
	Cells   int    `koanf:"cells"`    // marching cubes resolution
	Format  string `koanf:"format"`   // svg, dxf or both
	OutDir  string `koanf:"out_dir"`  // output directory
	Section string `koanf:"section"`  // cutting plane spec, e.g. "x" or "x:12.5"
	Verbose bool   `koanf:"verbose"`
}

// findConfigFile picks the config file to use.
// Priority: explicit path > graphite.yaml > graphite.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"graphite.yaml", "graphite.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load resolves configuration. Precedence (highest to lowest):
// flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"cells":   DefaultCells,
		"format":  DefaultFormat,
		"out_dir": DefaultOutDir,
		"section": "",
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if used := findConfigFile(cfgFile); used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// GRAPHITE_OUT_DIR -> out_dir
	if err := k.Load(env.Provider("GRAPHITE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GRAPHITE_"))
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
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	switch cfg.Format {
	case "svg", "dxf", "both":
	default:
		return nil, fmt.Errorf("unknown output format %q (want svg, dxf or both)", cfg.Format)
	}
	if cfg.Cells < 16 {
		return nil, fmt.Errorf("cells must be at least 16, got %d", cfg.Cells)
	}
	return &cfg, nil
}
