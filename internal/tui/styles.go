package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorInRange = lipgloss.Color("#10B981")
	colorMarked  = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorFg      = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	zoneStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	outsideStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Faint(true)

	todayStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(colorFg).
			Bold(true)

	inRangeStyle = lipgloss.NewStyle().
			Background(colorInRange).
			Foreground(colorFg)

	markedStyle = lipgloss.NewStyle().
			Foreground(colorMarked).
			Bold(true)

	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	summaryStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
