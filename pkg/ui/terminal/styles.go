package terminal

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFD54F"}
	infoColor    = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	pathStyle    = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(16)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)
)

var (
	successIndicator = successStyle.Render("✓")
	errorIndicator   = errorStyle.Render("✗")
	warningIndicator = warningStyle.Render("!")
	skippedIndicator = mutedStyle.Render("○")
	activeIndicator  = successStyle.Render("●")
)

// outcomeStyle colors apply outcomes and overlay statuses.
func outcomeStyle(s string) lipgloss.Style {
	switch s {
	case "completed", "written", "backed_up", "rendered", "copied":
		return successStyle
	case "failed":
		return errorStyle
	case "cancelled", "suppressed", "coalesced":
		return warningStyle
	default:
		return mutedStyle
	}
}
