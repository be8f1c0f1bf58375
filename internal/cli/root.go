package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/pipewatch/internal/config"
	"github.com/rshade/pipewatch/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the pipewatch CLI.
// It wires up logging and the serve, status, listing, dashboard and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "pipewatch",
		Short:         "Pipeline dashboard and API gateway",
		Long:          "pipewatch: browse data pipelines and devices through a local API gateway",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			config.CloseLogFile()
			return logResult.Close()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("server", "", "dashboard server URL (overrides dashboard.server_url)")
	cmd.AddCommand(
		NewServeCmd(),
		NewStatusCmd(),
		NewPipelinesCmd(),
		NewDevicesCmd(),
		NewDashboardCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Run the API gateway in front of the pipeline API
  pipewatch serve --upstream https://pipelines.internal:8443

  # Check whether the dashboard server is reachable
  pipewatch status

  # List pipelines sorted by throughput, highest first
  pipewatch pipelines --sort throughput:desc

  # Stream every device as NDJSON
  pipewatch devices --all --output ndjson

  # Open the interactive dashboard
  pipewatch dashboard

  # Initialize configuration
  pipewatch config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
