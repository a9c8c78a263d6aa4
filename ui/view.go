package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.mode == helpMode {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(m.renderHeader()))
	b.WriteString("\n\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")

	if m.mode == normalMode {
		b.WriteString(m.renderQuickHelp())
		b.WriteString("\n")
	}

	if m.statusText != "" {
		b.WriteString("\n")
		b.WriteString(m.renderStatus())
		b.WriteString("\n")
	}

	if m.mode == filterMode {
		b.WriteString("\n")
		b.WriteString(m.renderFilterBar())
	}

	if m.mode == confirmKillMode {
		b.WriteString("\n")
		b.WriteString(m.renderConfirmKill())
	}

	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("Process Browser")
	return lipgloss.NewStyle().
		Background(lipgloss.Color("62")).
		Foreground(lipgloss.Color("230")).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center).
		Render(title)
}

func (m Model) renderHeader() string {
	direction := sortedColumnStyle.Render("↓")
	if !m.view.Reverse {
		direction = sortedColumnStyle.Render("↑")
	}

	header := fmt.Sprintf(
		"Tasks: %d total, %d running | Load: %.2f %.2f %.2f | Uptime: %s | Sort: %s %s",
		m.stats.Tasks, m.stats.Running,
		m.stats.Load1, m.stats.Load5, m.stats.Load15,
		FormatUptime(m.stats.Uptime),
		sortedColumnStyle.Render(m.view.Sort.ColumnName()),
		direction,
	)

	if m.view.Filter != "" {
		header += fmt.Sprintf(" | Filter: %s",
			lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Render(m.view.Filter))
	}
	return header
}

func (m Model) renderQuickHelp() string {
	quickHelp := fmt.Sprintf(
		"%s Sort | %s Filter | %s Kill | %s Help | %s Quit",
		keybindStyle.Render("[p/n/m/c]"),
		keybindStyle.Render("[/]"),
		keybindStyle.Render("[k]"),
		keybindStyle.Render("[?]"),
		keybindStyle.Render("[q]"),
	)
	return keybindDescStyle.Render(quickHelp)
}

func (m Model) renderStatus() string {
	style := successStyle
	if m.statusError {
		style = errorStyle
	}
	return style.Render(m.statusText)
}

func (m Model) renderFilterBar() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Render("Filter: ") +
		m.filterInput.View() +
		keybindDescStyle.Render(" (Enter to apply, Esc to cancel)")
}

func (m Model) renderConfirmKill() string {
	return confirmStyle.Render(fmt.Sprintf(
		"Send SIGTERM to %s (PID %d)? [y/N]",
		m.selectedName, m.selectedPID,
	))
}

func (m Model) renderHelp() string {
	help := `
  Process Browser — keys

  Navigation
    ↑/↓          move selection

  Sorting (press again to reverse)
    p            by PID (ascending)
    n            by name (A→Z)
    m            by resident memory (largest first)
    c            by CPU% (highest first)

  Filtering
    /            type a case-insensitive name filter
    esc          clear the filter

  Actions
    k            terminate selected process (asks y/N)

  Other
    ?  h         this help
    q  ctrl+c    quit
`
	return helpBoxStyle.Render(help) + "\n" + keybindDescStyle.Render("press esc or q to go back")
}
