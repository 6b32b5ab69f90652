package main

import "github.com/charmbracelet/lipgloss"

// Centralized style definitions for the TUI.
var (
	// Display panel styles.
	displayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	displayValueStyle = lipgloss.NewStyle().Bold(true)
	indicatorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // cyan

	// Keypad styles.
	keyStyle = lipgloss.NewStyle().
			Width(keyWidth).
			Align(lipgloss.Center).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8"))
	operatorKeyStyle = keyStyle.Foreground(lipgloss.Color("3")) // yellow
	pressedKeyStyle  = keyStyle.Reverse(true)

	// Tape styles.
	tapeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	tapeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))

	// General utility styles.
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray/dim
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
)

// keyWidth is the inner width of one keypad key.
const keyWidth = 4
