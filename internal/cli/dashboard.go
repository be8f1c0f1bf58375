package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/pipewatch/internal/health"
	"github.com/rshade/pipewatch/internal/tui"
)

// ErrNotTerminal is returned when the dashboard is started without a terminal.
var ErrNotTerminal = errors.New("the dashboard needs an interactive terminal; use the pipelines or devices commands instead")

// NewDashboardCmd creates the dashboard command, which runs the interactive TUI.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive pipeline dashboard",
		Long: `Opens a full-screen dashboard with stat cards, a pipelines/devices sidebar
and a sortable, paginated table.

The server is polled in the background. Whenever its status changes the
listings are reloaded from the live API, a snapshot, or mock data.`,
		Example: `  pipewatch dashboard
  pipewatch dashboard --server http://dash.internal:3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			return runDashboard(cmd)
		},
	}
}

func runDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()

	// program is assigned before the poller starts.
	var program *tea.Program
	s := newSession(cmd, health.WithNotify(func(state health.State) {
		if program != nil {
			program.Send(tui.StatusMsg{State: state})
		}
	}))

	model := tui.NewModel(ctx, s.loader, tui.Options{
		PageSize: s.cfg.Dashboard.PageSize,
		Locale:   s.locale,
		Status:   s.poller.Snapshot(),
	})
	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	s.poller.Start(ctx)
	defer s.poller.Stop()

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
