package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var (
		verbose bool
		file    string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file for syntax and semantic correctness.

This includes:
- YAML syntax
- Listen address and upstream origin
- Route paths (leading slash, no duplicates, /api/health reserved)
- Durations, page size, output format and log settings`,
		Example: `  # Validate current configuration
  pipewatch config validate

  # Validate another file and show the routes it defines
  pipewatch config validate --file ./staging.yaml --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, file, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	cmd.Flags().StringVar(&file, "file", "", "config file to validate (default: the active config file)")

	return cmd
}

// runConfigValidate loads the file strictly, so a syntax error fails here even
// though other commands only warn about it.
func runConfigValidate(cmd *cobra.Command, file string, verbose bool) error {
	if file == "" {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("resolving config path: %w", err)
		}
		file = path
	}

	cfg, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid: %s\n", file)

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Printf("Listen:     %s\n", cfg.Server.Listen)
	cmd.Printf("Upstream:   %s (verify TLS: %t, timeout: %s)\n",
		cfg.Upstream.Origin, cfg.Upstream.VerifyTLS, cfg.Upstream.Timeout)
	cmd.Printf("Routes:\n")
	for _, route := range cfg.Upstream.Routes {
		cmd.Printf("  %s -> %s\n", route.Path, route.UpstreamPath)
	}
	cmd.Printf("Health URL: %s (every %s, timeout %s)\n", cfg.HealthURL(), cfg.Health.Interval, cfg.Health.Timeout)
	cmd.Printf("Server URL: %s\n", cfg.Dashboard.ServerURL)
}
