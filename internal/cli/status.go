package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/health"
)

var (
	statusOnlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)  //nolint:gochecknoglobals // Style constant.
	statusOfflineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true) //nolint:gochecknoglobals // Style constant.
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) //nolint:gochecknoglobals // Style constant.
)

// NewStatusCmd creates the status command, which probes the server once.
func NewStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the dashboard server and print the data source banner",
		Example: `  # Check the default server
  pipewatch status

  # Check another server and print the raw state
  pipewatch status --server http://dash.internal:3000 --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := newSession(cmd)
			s.poller.Check(cmd.Context())
			state := s.poller.Snapshot()

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), state)
			}

			source := dashboard.SourceLive
			if state.IsUsingMockData {
				source = dashboard.SourceMock
			}
			banner := dashboard.BannerText(state.ServerStatus, source, time.Time{}, time.Now())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), styleStatus(state.ServerStatus, banner, isTerminalWriter(cmd)))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the health state as JSON")
	return cmd
}

func styleStatus(status health.Status, text string, styled bool) string {
	if !styled {
		return text
	}
	switch status {
	case health.StatusOnline:
		return statusOnlineStyle.Render(text)
	case health.StatusOffline:
		return statusOfflineStyle.Render(text)
	case health.StatusError:
		return statusErrorStyle.Render(text)
	case health.StatusChecking:
		return text
	default:
		return text
	}
}
