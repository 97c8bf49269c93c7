package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.AdaptiveColor{Light: "#0984e3", Dark: "#74b9ff"}
	muted  = lipgloss.AdaptiveColor{Light: "#636e72", Dark: "#b2bec3"}
	danger = lipgloss.AdaptiveColor{Light: "#d63031", Dark: "#ff7675"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	summaryStyle = lipgloss.NewStyle().Foreground(muted)
	helpStyle    = lipgloss.NewStyle().Foreground(muted).MarginTop(1)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	messageStyle = lipgloss.NewStyle().Padding(1, 2)
	tableStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(muted)
)

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#ffffff")).
		Background(accent).
		Bold(false)
	return styles
}
