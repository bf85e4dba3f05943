// Package styles holds the lipgloss styles shared by command output and the
// interactive session.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	ColorGray   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}
)

var (
	BoldStyle   = lipgloss.NewStyle().Bold(true)
	DimStyle    = lipgloss.NewStyle().Foreground(ColorGray)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	ResultStyle = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorRed)

	// BoxStyle frames multi-line output.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)
)

// RenderLabel renders a field label.
func RenderLabel(s string) string {
	return LabelStyle.Render(s)
}

// RenderDim renders secondary text.
func RenderDim(s string) string {
	return DimStyle.Render(s)
}

// RenderResult renders a computed value.
func RenderResult(s string) string {
	return ResultStyle.Render(s)
}

// RenderError renders an error message.
func RenderError(s string) string {
	return ErrorStyle.Render(s)
}
