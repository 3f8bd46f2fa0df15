package tui

import "github.com/charmbracelet/lipgloss"

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#4ECDC4") // Teal
	// AccentColor highlights assistant replies.
	AccentColor = lipgloss.Color("#FFE66D") // Yellow
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B") // Red
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	assistantStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	moduleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)
