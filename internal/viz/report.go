package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// TorqueTable renders joint torques against their effort limits.
// bindingJoint marks the row that saturates first; pass -1 for none.
func TorqueTable(names []string, torques, limits []float64, bindingJoint int) string {
	var b strings.Builder

	b.WriteString(Title.Render("joint torques"))
	b.WriteString("\n\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("%-14s %12s %10s  %s", "joint", "torque", "limit", "load")))
	b.WriteString("\n")

	for i, name := range names {
		torque := torques[i]
		limit := limits[i]

		row := fmt.Sprintf("%-14s %12.4f %10.2f  ", name, torque, limit)
		if limit > 0 {
			row += UtilizationBar(math.Abs(torque)/limit, 20)
		} else {
			row += Subtle.Render("no limit")
		}
		if i == bindingJoint {
			row += " " + Binding.Render("◀ binding")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return Panel.Render(b.String())
}

// PayloadPanel renders a maximum payload result.
func PayloadPanel(mass float64, bindingJoint int, names []string) string {
	var b strings.Builder

	b.WriteString(Title.Render("maximum payload"))
	b.WriteString("\n\n")
	b.WriteString(Label.Render("mass      "))
	b.WriteString(Value.Render(fmt.Sprintf("%.4f kg", mass)))
	b.WriteString("\n")
	b.WriteString(Label.Render("binding   "))
	if bindingJoint >= 0 && bindingJoint < len(names) {
		b.WriteString(Binding.Render(names[bindingJoint]))
	} else {
		b.WriteString(Subtle.Render("none"))
	}
	b.WriteString("\n")

	return Panel.Render(b.String())
}

// SweepChart plots values over a swept joint angle.
func SweepChart(values []float64, caption string) string {
	if len(values) == 0 {
		return Subtle.Render("no sweep data")
	}
	return asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// SweepCaption describes a sweep range for the chart footer.
func SweepCaption(joint string, from, to float64, quantity string) string {
	return fmt.Sprintf("%s over %s in [%.2f, %.2f] rad", quantity, joint, from, to)
}
