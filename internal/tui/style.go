package tui

import "github.com/charmbracelet/lipgloss"

var (
	purple = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	dim    = lipgloss.Color("243")
	faint  = lipgloss.Color("238")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(purple)
	promptStyle  = lipgloss.NewStyle().Italic(true)
	activeStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(green)
	pendingStyle = lipgloss.NewStyle().Foreground(dim)
	mutedStyle   = lipgloss.NewStyle().Foreground(dim)
	cursorStyle  = lipgloss.NewStyle().Foreground(purple)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(faint).
			Padding(0, 1)
)
