package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/riemann/internal/ui"
)

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#00AFFF"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#8A8A8A"}
	successColor = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	barColor     = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#5FD7FF"}
)

// Dashboard styles. They are rebuilt by initStyles once the theme is set.
var (
	panelStyle   lipgloss.Style
	titleStyle   lipgloss.Style
	labelStyle   lipgloss.Style
	barStyle     lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles builds the styles, plain when colors are disabled.
func initStyles() {
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if !ui.IsColorEnabled() {
		titleStyle = lipgloss.NewStyle().Bold(true)
		labelStyle = lipgloss.NewStyle()
		barStyle = lipgloss.NewStyle()
		successStyle = lipgloss.NewStyle()
		errorStyle = lipgloss.NewStyle()
		return
	}
	panelStyle = panelStyle.BorderForeground(mutedColor)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	labelStyle = lipgloss.NewStyle().Foreground(mutedColor)
	barStyle = lipgloss.NewStyle().Foreground(barColor)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(successColor)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(errorColor)
}
