// Package tui implements the interactive pipewatch dashboard.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/rshade/pipewatch/internal/dashboard"
	"github.com/rshade/pipewatch/internal/health"
	"github.com/rshade/pipewatch/internal/table"
)

// Section is a sidebar entry.
type Section int

// Sidebar sections.
const (
	SectionPipelines Section = iota
	SectionDevices
	numSections
)

func (s Section) String() string {
	if s == SectionDevices {
		return "Devices"
	}
	return "Pipelines"
}

// StatusMsg delivers a health state change to the model.
type StatusMsg struct {
	State health.State
}

// DataLoadedMsg delivers the result of a load.
type DataLoadedMsg struct {
	Dataset dashboard.Dataset
	Err     error
}

// Loader loads both listings. *dashboard.Loader implements it.
type Loader interface {
	LoadAll(ctx context.Context) (dashboard.Dataset, error)
}

// pager is what key handling needs from a table controller, independent of its row type.
type pager interface {
	ToggleSort(key string)
	SortConfig() table.SortSpec
	PaginationConfig() table.PaginationMeta
	GoToNextPage()
	GoToPreviousPage()
	GoToFirstPage()
	GoToLastPage()
	SetPageSize(size int)
}

// Options configures a Model.
type Options struct {
	PageSize int
	Locale   language.Tag
	Status   health.State
}

// Model is the Bubble Tea model for the dashboard.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View.
type Model struct {
	ctx    context.Context
	loader Loader

	state   ViewState
	section Section
	status  health.State
	loading bool
	err     error

	pipelines *table.Controller[dashboard.Pipeline]
	devices   *table.Controller[dashboard.Device]
	sources   [numSections]dashboard.Source
	asOf      [numSections]time.Time
	summary   dashboard.Summary

	locale    language.Tag
	formatter dashboard.Formatter
	grid      btable.Model
	spinner   *LoadingState
	keys      KeyMap
	help      help.Model

	width  int
	height int
	now    func() time.Time
}

// NewModel returns a model in the loading state. Init starts the first load.
func NewModel(ctx context.Context, loader Loader, opts Options) Model {
	locale := opts.Locale
	if locale == language.Und {
		locale = language.English
	}
	pageSize := opts.PageSize
	if pageSize < table.MinPageSize {
		pageSize = table.DefaultPageSize
	}
	status := opts.Status
	if status.ServerStatus == "" {
		status = health.State{ServerStatus: health.StatusChecking, IsUsingMockData: true}
	}

	m := Model{
		ctx:     ctx,
		loader:  loader,
		state:   ViewStateLoading,
		section: SectionPipelines,
		status:  status,
		loading: true,
		pipelines: table.New[dashboard.Pipeline](nil, dashboard.PipelineFields(),
			table.WithPageSize(pageSize), table.WithLocale(locale)),
		devices: table.New[dashboard.Device](nil, dashboard.DeviceFields(),
			table.WithPageSize(pageSize), table.WithLocale(locale)),
		locale:    locale,
		formatter: dashboard.NewFormatter(locale),
		spinner:   NewLoadingState(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
		now:       time.Now,
	}
	m.rebuildGrid()
	return m
}

// Init starts the spinner and the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Init(), m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	loader, ctx := m.loader, m.ctx
	return func() tea.Msg {
		ds, err := loader.LoadAll(ctx)
		return DataLoadedMsg{Dataset: ds, Err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildGrid()
		return m, nil
	case StatusMsg:
		return m.handleStatus(msg)
	case DataLoadedMsg:
		return m.handleLoaded(msg)
	case tea.KeyMsg:
		if m.state == ViewStateQuitting {
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.loading {
		return m, m.spinner.Update(msg)
	}
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// handleStatus reloads whenever the server status changes, since the data source
// follows the status.
func (m Model) handleStatus(msg StatusMsg) (tea.Model, tea.Cmd) {
	changed := msg.State.ServerStatus != m.status.ServerStatus
	m.status = msg.State
	if !changed || m.loading {
		return m, nil
	}
	m.loading = true
	return m, tea.Batch(m.spinner.Init(), m.loadCmd())
}

func (m Model) handleLoaded(msg DataLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		if m.state == ViewStateLoading {
			m.state = ViewStateList
		}
		return m, nil
	}

	m.err = nil
	m.state = ViewStateList

	ds := msg.Dataset
	m.pipelines.SetData(ds.Pipelines.Rows)
	m.devices.SetData(ds.Devices.Rows)
	m.sources[SectionPipelines] = ds.Pipelines.Source
	m.sources[SectionDevices] = ds.Devices.Source
	m.asOf[SectionPipelines] = ds.Pipelines.AsOf
	m.asOf[SectionDevices] = ds.Devices.AsOf
	m.summary = dashboard.Summarize(ds.Pipelines.Rows)

	m.rebuildGrid()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctrl := m.active()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Init(), m.loadCmd())
	case key.Matches(msg, m.keys.SwitchView):
		if msg.String() == "shift+tab" {
			m.section = (m.section + numSections - 1) % numSections
		} else {
			m.section = (m.section + 1) % numSections
		}
	case key.Matches(msg, m.keys.NextPage):
		ctrl.GoToNextPage()
	case key.Matches(msg, m.keys.PrevPage):
		ctrl.GoToPreviousPage()
	case key.Matches(msg, m.keys.FirstPage):
		ctrl.GoToFirstPage()
	case key.Matches(msg, m.keys.LastPage):
		ctrl.GoToLastPage()
	case key.Matches(msg, m.keys.Grow):
		ctrl.SetPageSize(ctrl.PaginationConfig().PageSize + pageSizeStep)
	case key.Matches(msg, m.keys.Shrink):
		ctrl.SetPageSize(max(ctrl.PaginationConfig().PageSize-pageSizeStep, table.MinPageSize))
	case key.Matches(msg, m.keys.Sort):
		columns := m.columns()
		idx := int(msg.String()[0] - '1')
		if idx < 0 || idx >= len(columns) {
			return m, nil
		}
		ctrl.ToggleSort(columns[idx].Key)
	default:
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd
	}

	m.rebuildGrid()
	return m, nil
}

func (m Model) active() pager {
	if m.section == SectionDevices {
		return m.devices
	}
	return m.pipelines
}

func (m Model) columns() []dashboard.Column {
	if m.section == SectionDevices {
		return dashboard.DeviceColumns()
	}
	return dashboard.PipelineColumns()
}

// rebuildGrid regenerates the bubbles table from the active controller's current page.
func (m *Model) rebuildGrid() {
	spec := m.active().SortConfig()
	cols := m.columns()

	columns := make([]btable.Column, len(cols))
	for i, c := range cols {
		title := c.Title
		if spec.Active() && spec.Key == c.Key {
			title += " " + spec.Direction.Indicator()
		}
		columns[i] = btable.Column{Title: title, Width: c.Width}
	}

	var rows []btable.Row
	if m.section == SectionDevices {
		for _, d := range m.devices.CurrentPageRows() {
			rows = append(rows, m.formatter.DeviceCells(d))
		}
	} else {
		for _, p := range m.pipelines.CurrentPageRows() {
			rows = append(rows, m.formatter.PipelineCells(p))
		}
	}

	height := max(min(m.active().PaginationConfig().PageSize+1, m.height-chromeHeight), minHeight)

	grid := btable.New(
		btable.WithColumns(columns),
		btable.WithRows(rows),
		btable.WithFocused(true),
		btable.WithHeight(height),
	)
	styles := btable.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableSelectedStyle
	grid.SetStyles(styles)

	m.grid = grid
}
