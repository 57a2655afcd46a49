// Package report renders step results and verification checks for an
// operator running bootstrap from a terminal.
package report

import "github.com/charmbracelet/lipgloss"

// Styles for report output
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)
