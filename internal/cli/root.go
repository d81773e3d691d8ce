// Package cli provides the command-line interface for bindgen.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bindgen/internal/cli/config"
	"github.com/leapstack-labs/bindgen/internal/pipeline"
	"github.com/leapstack-labs/bindgen/internal/version"
)

var (
	cfgFile string
	cfg     *config.Config
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bindgen",
		Short: "bindgen - scripted binding code generator",
		Long: `bindgen runs Starlark driver scripts against a native code generation
pipeline. Scripts call the predeclared code_generator module to configure the
generator, parse a binding specification and run the output stages.`,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			configureLogging(cmd, cfg)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./bindgen.yaml)")
	rootCmd.PersistentFlags().StringP("pipeline", "p", "", "Pipeline to run scripts against")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewPipelinesCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// configureLogging installs the default slog logger used by pipelines.
func configureLogging(cmd *cobra.Command, cfg *config.Config) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// getConfig returns the loaded configuration, falling back to defaults when
// a command runs outside the root's PersistentPreRunE (tests).
func getConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	c, err := config.Load("", nil)
	if err != nil {
		return &config.Config{Pipeline: pipeline.DryRunName, LogLevel: "info"}
	}
	return c
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
