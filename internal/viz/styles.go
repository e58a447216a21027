package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel border for result blocks
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	// Binding joint marker
	Binding = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ff00ff"))

	LoadLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	LoadMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	LoadHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// UtilizationBar renders |torque|/limit as a colored bar.
func UtilizationBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if frac > 0.8 {
		return LoadHigh.Render(bar)
	} else if frac > 0.4 {
		return LoadMid.Render(bar)
	}
	return LoadLow.Render(bar)
}
