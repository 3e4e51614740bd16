// Package cli provides the command-line interface for graphite.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/graphite/internal/cli/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graphite",
		Short: "graphite - technical drawing generator",
		Long: `graphite turns a CSG recipe into an ISO-style orthographic
engineering drawing: first-angle front, top and right views with hidden
lines, center lines, dimensions and optional section views, written as
SVG or DXF.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./graphite.yaml)")
	rootCmd.PersistentFlags().Int("cells", config.DefaultCells, "marching cubes resolution")
	rootCmd.PersistentFlags().String("format", config.DefaultFormat, "output format (svg|dxf|both)")
	rootCmd.PersistentFlags().String("out-dir", config.DefaultOutDir, "output directory")
	rootCmd.PersistentFlags().String("section", "", "cutting plane, axis[:position], e.g. x or z:12.5")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"svg", "dxf", "both"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newInspectCommand())
	return rootCmd
}

// Execute runs the root command.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		return 1
	}
	return 0
}
