package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// The gauge sweeps a 270-degree arc (1.5π radians) with the gap at the
// bottom, advancing a fixed angle step per animation frame so the needle
// visibly "computes" even though the score is already known.
const (
	GaugeArcRadians = 1.5 * math.Pi
	GaugeStepRad    = 0.04
	gaugeDarken     = 60

	gaugeCols = 23
	gaugeRows = 11
	// terminal cells are roughly twice as tall as wide
	gaugeAspect = 0.55
)

// Gauge animates a circular arc toward a target score. One gauge owns one
// drawing surface; the model guards against stale frames with a generation
// token so at most one writer is ever live.
type Gauge struct {
	score   float64
	current float64
	target  float64
	base    rgb
	dark    rgb
}

// NewGauge creates a gauge for a score in [0,100] and an accent color.
func NewGauge(score float64, colorHex string) *Gauge {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	base, ok := parseHexColor(colorHex)
	if !ok {
		base = rgb{r: 148, g: 163, b: 184}
	}
	return &Gauge{
		score:  score,
		target: TargetAngle(score),
		base:   base,
		dark:   base.darken(gaugeDarken),
	}
}

// TargetAngle maps a 0-100 score onto the active arc.
func TargetAngle(score float64) float64 {
	return score / 100 * GaugeArcRadians
}

// Step advances the sweep by one frame and reports whether the gauge has
// reached its target.
func (g *Gauge) Step() bool {
	if g.current >= g.target {
		return true
	}
	g.current += GaugeStepRad
	if g.current >= g.target {
		g.current = g.target
		return true
	}
	return false
}

// Done reports whether the sweep has finished.
func (g *Gauge) Done() bool {
	return g.current >= g.target
}

// CurrentAngle returns the sweep position in radians.
func (g *Gauge) CurrentAngle() float64 {
	return g.current
}

// View draws the full gauge: background track, colored arc with a linear
// gradient from the accent color to its darkened variant, and a dim outer
// glow ring. The whole surface is redrawn every frame.
func (g *Gauge) View() string {
	const (
		rInner = 3.4
		rOuter = 4.5
		rGlow  = 5.2
	)

	cx := float64(gaugeCols-1) / 2 * gaugeAspect
	cy := 5.4

	trackStyle := lipgloss.NewStyle().Foreground(GetTheme().Muted)

	var rows []string
	for j := 0; j < gaugeRows; j++ {
		var row strings.Builder
		for i := 0; i < gaugeCols; i++ {
			dx := float64(i)*gaugeAspect - cx
			dy := cy - float64(j)
			r := math.Hypot(dx, dy)

			sweep, onArc := arcPosition(dx, dy)
			switch {
			case !onArc:
				row.WriteString(" ")
			case r >= rInner && r <= rOuter:
				if sweep <= g.current {
					c := g.base.lerp(g.dark, sweep/GaugeArcRadians)
					row.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.hex())).Render("█"))
				} else {
					row.WriteString(trackStyle.Render("░"))
				}
			case r > rOuter && r <= rGlow && sweep <= g.current:
				// wider glow pass under the arc, same hue at reduced intensity
				row.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(g.dark.hex())).Faint(true).Render("▒"))
			default:
				row.WriteString(" ")
			}
		}
		rows = append(rows, row.String())
	}

	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(g.base.hex())).
		Bold(true).
		Render(fmt.Sprintf("%d", int(math.Round(g.score))))

	grid := strings.Join(rows, "\n")
	return lipgloss.JoinVertical(lipgloss.Center, grid, label+lipgloss.NewStyle().Foreground(GetTheme().Muted).Render(" / 100"))
}

// arcPosition converts cell coordinates to a sweep offset in [0, 1.5π].
// The arc starts at the bottom-left and runs clockwise over the top; cells
// in the bottom gap report onArc=false.
func arcPosition(dx, dy float64) (float64, bool) {
	ang := math.Atan2(dy, dx)
	if ang < -math.Pi/4 {
		ang += 2 * math.Pi
	}
	if ang > 5*math.Pi/4 {
		return 0, false
	}
	return 5*math.Pi/4 - ang, true
}
