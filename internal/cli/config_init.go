package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var (
		force    bool
		upstream string
		server   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates ~/.pipewatch/config.yaml (or $PIPEWATCH_HOME/config.yaml) with default
values, along with the cache and log directories.`,
		Example: `  # Create the default configuration
  pipewatch config init

  # Point at a specific upstream, overwriting any existing file
  pipewatch config init --upstream https://pipelines.internal:8443 --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Defaults()
			if upstream != "" {
				cfg.Upstream.Origin = upstream
			}
			if server != "" {
				cfg.Dashboard.ServerURL = server
			}
			return initConfig(cmd, cfg, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().StringVar(&upstream, "upstream", "", "upstream API origin to store")
	cmd.Flags().StringVar(&server, "server-url", "", "dashboard server URL to store")

	return cmd
}

func initConfig(cmd *cobra.Command, cfg *config.Config, force bool) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to write invalid configuration: %w", err)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	if !force {
		_, statErr := os.Stat(path)
		if statErr == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(statErr) {
			return fmt.Errorf("cannot access config path %s: %w", path, statErr)
		}
	}

	if err = cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	if err = config.EnsureSubDirs(); err != nil {
		return err
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}
