// Package commands implements the CLI commands for the cadence task scheduler.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/cadence/internal/app"
	"go.trai.ch/cadence/internal/build"
	"go.trai.ch/cadence/internal/core/domain"
)

// CLI represents the command line interface for cadence.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
	cfg     *domain.Config
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cadence",
		Short:         "Dependency-aware task scheduling",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (default ./cadence.yaml)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("trace", false, "Log a span for every scheduling stage (implies --verbose)")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.configure

	rootCmd.AddCommand(c.newScheduleCmd())
	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) configure(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	verbose, _ := cmd.Flags().GetBool("verbose")
	trace, _ := cmd.Flags().GetBool("trace")

	cfg, err := c.app.Configure(app.Options{
		ConfigPath: configPath,
		JSONLogs:   jsonLogs,
		Verbose:    verbose,
		Trace:      trace,
	})
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}
