package console

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	styleBadgeOn  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleBadgeOff = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
