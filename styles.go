package main

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// UI styles for the TUI interface
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7DCFFF"))

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BB9AF7"))

	paneTitleFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1a1a1a")).
				Background(lipgloss.Color("#7DCFFF"))

	confirmStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ECE6A")).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Italic(true)

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7DCFFF")).
			MarginTop(1)

	searchFilterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#9ECE6A")).
				MarginTop(1)
)

// tableStyles returns the bubbles/table styling shared by both panes.
// Only the focused pane highlights its cursor row.
func tableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		Bold(true).
		Foreground(lipgloss.Color("#626262")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#3b3b3b")).
		BorderBottom(true)
	if focused {
		s.Selected = s.Selected.
			Bold(true).
			Foreground(lipgloss.Color("#1a1a1a")).
			Background(lipgloss.Color("#7DCFFF"))
	} else {
		s.Selected = s.Selected.
			Bold(true).
			Foreground(lipgloss.Color("#c0c0c0"))
	}
	return s
}
