package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Tacitus-SL/process-browser/model"
	"github.com/Tacitus-SL/process-browser/monitor"
	"github.com/Tacitus-SL/process-browser/proc"
)

const errorFmt = "Error: %v"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 8)
		return m, nil

	case dataMsg:
		m.stats = msg.stats
		m.updateTable()
		return m, nil

	case statusMsg:
		m.statusText = msg.text
		m.statusError = msg.isError
		return m, nil
	}

	if m.mode == filterMode {
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.view.Filter = m.filterInput.Value()
		m.updateTable()
		return m, cmd
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case normalMode:
		return m.handleNormalMode(msg)
	case filterMode:
		return m.handleFilterMode(msg)
	case confirmKillMode:
		return m.handleConfirmKill(msg)
	case helpMode:
		return m.handleHelpMode(msg)
	}
	return m, nil
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "?", "h":
		m.mode = helpMode
		return m, nil

	// Sorting: repeat toggles the direction, a new key restores the
	// canonical one.
	case "p":
		m.toggleSort(model.ByPid)
	case "n":
		m.toggleSort(model.ByName)
	case "m":
		m.toggleSort(model.ByMemory)
	case "c":
		m.toggleSort(model.ByCPU)

	// Filtering
	case "/":
		m.mode = filterMode
		m.engine.Pause()
		m.filterInput.Focus()
		return m, textinput.Blink

	case "esc":
		m.view.Filter = ""
		m.filterInput.SetValue("")
		m.updateTable()

	// Kill process (single SIGTERM, after confirmation)
	case "k":
		if pid, name := m.selectedProcess(); pid > 0 {
			m.selectedPID = pid
			m.selectedName = name
			m.mode = confirmKillMode
			m.engine.Pause()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) toggleSort(key model.SortKey) {
	if m.view.Sort == key {
		m.view.Reverse = !m.view.Reverse
	} else {
		m.view.Sort = key
		m.view.Reverse = false
	}
	m.updateTable()
}

func (m Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = normalMode
		m.filterInput.Blur()
		m.engine.Resume()
		return m, nil
	case "enter":
		m.mode = normalMode
		m.filterInput.Blur()
		m.view.Filter = m.filterInput.Value()
		m.engine.Resume()
		m.updateTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.view.Filter = m.filterInput.Value()
	m.updateTable()
	return m, cmd
}

func (m Model) handleConfirmKill(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = normalMode
		m.engine.Resume()
		if err := proc.Terminate(m.selectedPID); err != nil {
			return m, m.showStatus(fmt.Sprintf(errorFmt, err), true)
		}
		m.engine.Kick()
		return m, m.showStatus(fmt.Sprintf("Sent SIGTERM to PID %d", m.selectedPID), false)

	case "n", "N", "esc", "q":
		m.mode = normalMode
		m.engine.Resume()
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "h":
		m.mode = normalMode
		return m, nil
	}
	return m, nil
}

func (m Model) showStatus(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func (m *Model) selectedProcess() (int, string) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return 0, ""
	}
	return m.visible[idx].Pid, m.visible[idx].Name
}

// updateTable runs the snapshot through the view pipeline with the
// current ViewState and rebuilds the table rows.
func (m *Model) updateTable() {
	m.visible = monitor.Apply(m.stats.Snapshot, m.view)

	rows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		state := "?"
		if r.State != 0 {
			state = string(r.State)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(r.Pid),
			r.Owner,
			r.Name,
			fmt.Sprintf("%.1f", r.CPUPercent),
			fmt.Sprintf("%.1f", r.MemPercent),
			strconv.FormatInt(r.ResidentKB, 10),
			state,
			FormatTimeTicks(r.TotalTicks, model.DefaultHZ),
		})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}
