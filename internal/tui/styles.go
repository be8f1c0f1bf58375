package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults.
const (
	defaultWidth  = 120
	defaultHeight = 32
	minHeight     = 5
	sidebarWidth  = 20
	chromeHeight  = 12
)

// Palette.
var (
	colorAccent  = lipgloss.Color("63")
	colorMuted   = lipgloss.Color("240")
	colorOK      = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorText    = lipgloss.Color("252")
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("236"))

	OKStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(colorOK).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(colorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(colorError).
			Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1).
			Width(16)

	CardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(colorMuted).
			Width(sidebarWidth).
			PaddingRight(1)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(colorText).
				PaddingLeft(1)

	SidebarActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(colorAccent).
				Bold(true).
				PaddingLeft(1)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colorMuted).
				BorderBottom(true).
				Bold(true).
				Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	FooterStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingTop(1)
)
