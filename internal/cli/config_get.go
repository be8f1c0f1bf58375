package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one effective configuration value",
		Example: `  pipewatch config get upstream.origin
  pipewatch config get dashboard.page_size
  pipewatch config get upstream.routes.0.path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every effective configuration value",
		Long: `Lists the configuration after defaults, the config file, the PIPEWATCH_CONFIG
overlay and environment overrides have been applied.`,
		Example: `  pipewatch config list
  pipewatch config list --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			switch format {
			case config.OutputJSON:
				return writeJSON(cmd.OutOrStdout(), cfg)
			case config.OutputTable, "":
				flat, err := cfg.Flatten()
				if err != nil {
					return err
				}
				for _, key := range config.SortedKeys(flat) {
					cmd.Printf("%s = %s\n", key, flat[key])
				}
				return nil
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", config.OutputTable, "output format: table or json")
	return cmd
}
