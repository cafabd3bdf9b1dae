package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	statLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statValueStyle = lipgloss.NewStyle().Bold(true)
	warnValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	feedStyle      = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
)
