package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	doneStyle       = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)

	connectionStyles = map[string]lipgloss.Style{
		"connected":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"connecting":   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"disconnected": lipgloss.NewStyle().Faint(true),
		"error":        lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)
