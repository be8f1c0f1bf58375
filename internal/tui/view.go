package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/health"
)

// View renders the dashboard (Bubble Tea interface).
func (m Model) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("pipewatch"))
	b.WriteString("  ")
	b.WriteString(m.renderBanner())
	b.WriteString("\n\n")

	if m.state == ViewStateLoading {
		b.WriteString(m.spinner.View("Loading pipelines and devices..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderCards())
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", m.grid.View())
	b.WriteString(body)
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(" " + m.err.Error() + " "))
		b.WriteString("\n")
	}

	b.WriteString(FooterStyle.Render(m.renderFooter()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderBanner() string {
	text := dashboard.BannerText(m.status.ServerStatus, m.sources[m.section], m.asOf[m.section], m.now())
	if m.loading && m.state != ViewStateLoading {
		text = m.spinner.View(text)
	}

	switch m.status.ServerStatus {
	case health.StatusOnline:
		if m.sources[m.section] == dashboard.SourceLive || m.sources[m.section] == "" {
			return OKStyle.Render(" " + text + " ")
		}
		return WarningStyle.Render(" " + text + " ")
	case health.StatusOffline:
		return WarningStyle.Render(" " + text + " ")
	case health.StatusError:
		return ErrorStyle.Render(" " + text + " ")
	case health.StatusChecking:
		return InfoStyle.Render(" " + text + " ")
	default:
		return InfoStyle.Render(" " + text + " ")
	}
}

func (m Model) renderCards() string {
	cards := m.summary.Cards(m.locale)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = CardStyle.Render(LabelStyle.Render(c.Label) + "\n" + CardValueStyle.Render(c.Value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderSidebar() string {
	counts := [numSections]int{
		SectionPipelines: len(m.pipelines.AllSortedRows()),
		SectionDevices:   len(m.devices.AllSortedRows()),
	}

	var lines []string
	for s := range numSections {
		label := fmt.Sprintf("%-12s %4d", s.String(), counts[s])
		if s == m.section {
			lines = append(lines, SidebarActiveStyle.Render(label))
		} else {
			lines = append(lines, SidebarItemStyle.Render(label))
		}
	}
	return SidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	ctrl := m.active()
	meta := ctrl.PaginationConfig()

	pages := meta.TotalPages
	if pages == 0 {
		pages = 1
	}
	parts := []string{fmt.Sprintf("Page %d of %d (%d items)", meta.CurrentPage, pages, meta.TotalItems)}

	if spec := ctrl.SortConfig(); spec.Active() {
		parts = append(parts, fmt.Sprintf("sort: %s %s", spec.Key, spec.Direction.Indicator()))
	}
	if src := m.sources[m.section]; src != "" {
		parts = append(parts, "source: "+string(src))
	}
	parts = append(parts, fmt.Sprintf("page size: %d", meta.PageSize))
	return strings.Join(parts, " | ")
}
