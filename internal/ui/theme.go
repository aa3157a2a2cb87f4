// Package ui holds the lipgloss styles for mrls terminal output.
package ui

import "github.com/charmbracelet/lipgloss"

// Theme styles the device summary and group listing.
type Theme struct {
	Header lipgloss.Style
	Count  lipgloss.Style
	Muted  lipgloss.Style
}

// NewTheme returns the display theme. With color disabled (stdout is not a
// terminal) every style renders plain text.
func NewTheme(color bool) Theme {
	if !color {
		plain := lipgloss.NewStyle()
		return Theme{Header: plain, Count: plain, Muted: plain}
	}
	return Theme{
		Header: lipgloss.NewStyle().Bold(true),
		Count:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
