package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Catppuccin Mocha palette.
var (
	colorSurface = lipgloss.Color("#45475A")
	colorText    = lipgloss.Color("#CDD6F4")
	colorSubtext = lipgloss.Color("#A6ADC8")
	colorDim     = lipgloss.Color("#585B70")

	colorAccent   = lipgloss.Color("#CBA6F7") // mauve, titles
	colorBlue     = lipgloss.Color("#89B4FA") // section headers
	colorGreen    = lipgloss.Color("#A6E3A1") // wins, streaks
	colorYellow   = lipgloss.Color("#F9E2AF") // cost
	colorPeach    = lipgloss.Color("#FAB387") // highlights
	colorTeal     = lipgloss.Color("#94E2D5") // counts
	colorLavender = lipgloss.Color("#B4BEFE")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorSubtext)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	costStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	countStyle = lipgloss.NewStyle().
			Foreground(colorTeal)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPeach)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Padding(0, 1)
)

func money(v float64) string {
	return costStyle.Render(fmt.Sprintf("$%.2f", v))
}

// tokens renders a count in compact 1.2K / 3.4M form.
func tokens(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d", n)
	}
}
