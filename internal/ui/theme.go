package ui

import "github.com/charmbracelet/lipgloss"

var (
	base     = lipgloss.Color("#1e1e2e")
	mantle   = lipgloss.Color("#181825")
	surface1 = lipgloss.Color("#45475a")
	text     = lipgloss.Color("#cdd6f4")
	subtext  = lipgloss.Color("#a6adc8")
	lavender = lipgloss.Color("#b4befe")
	sapphire = lipgloss.Color("#74c7ec")
	green    = lipgloss.Color("#a6e3a1")
	peach    = lipgloss.Color("#fab387")

	appStyle = lipgloss.NewStyle().
			Background(base).
			Foreground(text).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(surface1).
			Background(mantle).
			Foreground(text).
			Padding(0, 1)

	cardSelected = cardStyle.BorderForeground(lavender)
	cardDue      = cardStyle.BorderForeground(peach)

	titleStyle  = lipgloss.NewStyle().Foreground(sapphire).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(subtext)
	hotStyle    = lipgloss.NewStyle().Foreground(peach).Bold(true)
	barStyle    = lipgloss.NewStyle().Foreground(green)
	statusStyle = lipgloss.NewStyle().Foreground(subtext).Italic(true)

	addStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(surface1).
			Foreground(subtext).
			Padding(0, 1)
)
