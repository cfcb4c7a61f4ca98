package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleCategory = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleIndex    = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleText     = lipgloss.NewStyle().Foreground(ColorText)
	StyleSubtle   = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess  = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError    = lipgloss.NewStyle().Foreground(ColorError)
)
