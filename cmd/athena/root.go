package main

import (
	"log/slog"

	"github.com/athena-sanity/athena/internal/builtin"
	"github.com/athena-sanity/athena/internal/registry"
	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "athena",
		Short: "Athena - sanity checks for content pipelines",
		Long: `Athena runs sanity-check pipelines defined in blueprint files.

A blueprint declares a set of processors, the dependencies between them,
and per-processor configuration. Athena resolves the execution order, runs
each check, and reports the outcome.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newSessionCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// sessionRegistry returns a fresh session registry with the builtin
// processes installed.
func sessionRegistry() (*registry.Registry, error) {
	registry.ResetSession()
	reg := registry.Session()
	if err := builtin.RegisterAll(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
