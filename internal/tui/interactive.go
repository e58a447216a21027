package tui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kvetner/armdyn/internal/dynsolver"
	"github.com/kvetner/armdyn/internal/spatial"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type explorer struct {
	solver *dynsolver.Solver
	names  []string
	limits []float64

	positions []float64
	cursor    int
	step      float64

	torques []float64
	payload float64
	binding int
	calcErr error

	width  int
	height int
}

// newExplorer builds the interactive joint-angle explorer for a solver.
func newExplorer(s *dynsolver.Solver) *explorer {
	e := &explorer{
		solver:    s,
		names:     s.JointNames(),
		limits:    s.MaxTorques(),
		positions: make([]float64, s.JointCount()),
		step:      0.05,
		binding:   -1,
		width:     80,
		height:    24,
	}
	e.recompute()
	return e
}

func (e *explorer) recompute() {
	n := len(e.positions)
	zero := make([]float64, n)
	ext := make([]spatial.Wrench, e.solver.SegmentCount())

	e.torques, e.calcErr = e.solver.Torques(e.positions, zero, zero, ext)
	if e.calcErr != nil {
		e.payload, e.binding = 0, -1
		return
	}
	e.payload, e.binding, e.calcErr = e.solver.MaxPayload(e.positions)
}

func (e explorer) Init() tea.Cmd { return nil }

func (e explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return e.handleKey(msg)
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
		return e, nil
	}
	return e, nil
}

func (e explorer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return e, tea.Quit
	case "left", "h":
		if e.cursor > 0 {
			e.cursor--
		}
	case "right", "l":
		if e.cursor < len(e.positions)-1 {
			e.cursor++
		}
	case "up", "k":
		e.positions[e.cursor] += e.step
		e.recompute()
	case "down", "j":
		e.positions[e.cursor] -= e.step
		e.recompute()
	case "shift+up", "K":
		e.positions[e.cursor] += 10 * e.step
		e.recompute()
	case "shift+down", "J":
		e.positions[e.cursor] -= 10 * e.step
		e.recompute()
	case "+", "=":
		e.step = math.Min(e.step*2, 0.8)
	case "-", "_":
		e.step = math.Max(e.step/2, 0.0125)
	case "0":
		e.positions[e.cursor] = 0
		e.recompute()
	case "r":
		for i := range e.positions {
			e.positions[i] = 0
		}
		e.recompute()
	}
	return e, nil
}

func (e explorer) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("armdyn explorer"))
	b.WriteString(dim.Render(fmt.Sprintf("  %s → %s", e.solver.BaseLink(), e.solver.TipLink())))
	b.WriteString("\n\n")

	if e.calcErr != nil {
		b.WriteString(red.Render(fmt.Sprintf("error: %v", e.calcErr)))
		b.WriteString("\n\n")
	}

	for i, name := range e.names {
		marker := "  "
		nameStyle := white
		if i == e.cursor {
			marker = cyan.Render("▸ ")
			nameStyle = cyan
		}

		line := fmt.Sprintf("%s%s %s", marker, nameStyle.Render(fmt.Sprintf("%-12s", name)),
			yellow.Render(fmt.Sprintf("%8.3f rad", e.positions[i])))

		if i < len(e.torques) {
			line += dim.Render("  τ ") + white.Render(fmt.Sprintf("%9.4f", e.torques[i]))
			if i < len(e.limits) && e.limits[i] > 0 {
				frac := math.Abs(e.torques[i]) / e.limits[i]
				line += "  " + loadBar(frac, 16)
			}
		}
		if i == e.binding {
			line += " " + magenta.Render("◀ binding")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("max payload "))
	b.WriteString(green.Render(fmt.Sprintf("%.4f kg", e.payload)))
	b.WriteString("\n\n")
	b.WriteString(dimmer.Render(fmt.Sprintf("←/→ joint  ↑/↓ adjust (step %.4f, shift ×10)  +/- step  0 zero  r reset  q quit", e.step)))
	b.WriteString("\n")

	return b.String()
}

func loadBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if frac > 0.8 {
		return red.Render(bar)
	} else if frac > 0.4 {
		return yellow.Render(bar)
	}
	return green.Render(bar)
}

// RunExplorer starts the explorer in the alternate screen.
func RunExplorer(s *dynsolver.Solver) error {
	p := tea.NewProgram(newExplorer(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
