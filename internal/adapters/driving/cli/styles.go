package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// Load bands for colouring server load percentages.
const (
	loadLow  = 30
	loadHigh = 70
)

var (
	styleGood   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleBad    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleHeader = lipgloss.NewStyle().Bold(true)
	styleDim    = lipgloss.NewStyle().Faint(true)

	tableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// loadStyle returns the style for a load percentage: green under 30,
// yellow under 70, red above.
func loadStyle(load int) lipgloss.Style {
	switch {
	case load < loadLow:
		return styleGood
	case load < loadHigh:
		return styleWarn
	default:
		return styleBad
	}
}

// formatLoad renders a load percentage with its colour band.
// Unknown loads (negative) render dimmed.
func formatLoad(load int) string {
	if load < 0 {
		return styleDim.Render("n/a")
	}
	return loadStyle(load).Render(fmt.Sprintf("%d%%", load))
}

// stateStyle returns the style for a connection state.
func stateStyle(state domain.ConnectionState) lipgloss.Style {
	switch state {
	case domain.StateConnected:
		return styleGood
	case domain.StateConnecting, domain.StateSleeping:
		return styleWarn
	case domain.StateDisconnected, domain.StateExiting:
		return styleBad
	default:
		return styleDim
	}
}

// renderTable renders headers and rows as a bordered table.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)
	return t.Render()
}
