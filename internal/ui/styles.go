package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleColor = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#00AFFF"}
	dimColor   = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#8A8A8A"}
)

// TitleStyle returns the lipgloss style of section titles. It renders plain
// text when colors are disabled.
func TitleStyle() lipgloss.Style {
	if !IsColorEnabled() {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(titleColor)
}

// Title renders a section title such as "--- Comparison Summary ---".
func Title(text string) string {
	return TitleStyle().Render("--- " + text + " ---")
}

// Dim renders text in a muted color.
func Dim(text string) string {
	if !IsColorEnabled() {
		return text
	}
	return lipgloss.NewStyle().Foreground(dimColor).Render(text)
}
