package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tacitus-SL/process-browser/model"
	"github.com/Tacitus-SL/process-browser/monitor"
)

// Model holds TUI state. All process data arrives as dataMsg pushes
// from the engine goroutine; the Model itself never touches /proc.
type Model struct {
	table   table.Model
	stats   monitor.Stats
	visible model.Snapshot
	engine  *monitor.Engine
	width   int
	height  int

	// Filtering and ordering, passed by value into the view pipeline
	// on every table rebuild.
	filterInput textinput.Model
	view        monitor.ViewState
	mode        uiMode

	// Status messages
	statusText  string
	statusError bool

	// Kill confirmation
	selectedPID  int
	selectedName string
}

func NewModel(engine *monitor.Engine) Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("cyan"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "filter by name..."
	ti.CharLimit = 50

	return Model{
		table:       t,
		engine:      engine,
		filterInput: ti,
		view:        monitor.ViewState{Sort: model.ByPid},
		mode:        normalMode,
	}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "PID", Width: 7},
		{Title: "USER", Width: 12},
		{Title: "NAME", Width: model.NameWidth},
		{Title: "%CPU", Width: 7},
		{Title: "%MEM", Width: 7},
		{Title: "RSS(KB)", Width: 10},
		{Title: "S", Width: 3},
		{Title: "TIME+", Width: 9},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// SendData is called by the engine to push a fresh cycle into the TUI.
func SendData(p *tea.Program, stats monitor.Stats) {
	p.Send(dataMsg{stats: stats})
}
