package ui

import "charm.land/lipgloss/v2"

// Status colors
var (
	successColor = lipgloss.Color("82")  // green
	warnColor    = lipgloss.Color("214") // orange
	errorColor   = lipgloss.Color("196") // red

	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
)

// Ok renders a positive status line marker.
func Ok(text string) string {
	return successStyle.Render("✓") + " " + text
}

// Warn renders a warning status line marker.
func Warn(text string) string {
	return warnStyle.Render("!") + " " + text
}

// Fail renders a failure status line marker.
func Fail(text string) string {
	return errorStyle.Render("✗") + " " + text
}
