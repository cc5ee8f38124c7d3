package game

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/telemetry"
)

// drawPerfOverlay renders frame timings and the droplet trend, anchored to
// the bottom-right corner above the control legend.
func (g *Game) drawPerfOverlay() {
	const (
		panelW = 240
		panelH = 132
		plotH  = 40
	)
	panelX := int32(g.screenWidth) - panelW - 10
	panelY := int32(g.screenHeight) - panelH - 35

	rl.DrawRectangle(panelX, panelY, panelW, panelH, rl.Color{R: 0, G: 0, B: 0, A: 180})
	rl.DrawRectangleLines(panelX, panelY, panelW, panelH, frameColor)

	rl.DrawText("PERF [F3 to close]", panelX+10, panelY+8, 14, rl.Yellow)

	stats := g.perfCollector.Stats()
	rl.DrawText(
		fmt.Sprintf("work: %v  fps: %.0f", stats.AvgFrameWork.Round(time.Microsecond), stats.FPS),
		panelX+10, panelY+28, 12, rl.White,
	)
	rl.DrawText(phaseBreakdown(stats), panelX+10, panelY+44, 12, rl.LightGray)

	g.drawDropletTrend(panelX+10, panelY+62, panelW-20, plotH)
}

// phaseBreakdown formats the per-phase percentages in pipeline order,
// skipping phases too small to matter.
func phaseBreakdown(stats telemetry.PerfStats) string {
	phases := []string{
		telemetry.PhaseInput, telemetry.PhaseAdvance, telemetry.PhasePhysics,
		telemetry.PhaseTelemetry, telemetry.PhaseDraw,
	}

	line := ""
	for _, phase := range phases {
		pct, ok := stats.PhasePct[phase]
		if !ok || pct < 0.5 {
			continue
		}
		if line != "" {
			line += "  "
		}
		line += fmt.Sprintf("%s %.0f%%", phase, pct)
	}
	return line
}

// drawDropletTrend plots droplet counts per stats window as a bar strip.
func (g *Game) drawDropletTrend(x, y, w, h int32) {
	rl.DrawText(fmt.Sprintf("droplets/window (%d)", len(g.dropletTrend)), x, y, 12, rl.LightGray)
	plotY := y + 16

	if len(g.dropletTrend) < 2 {
		rl.DrawText("collecting...", x, plotY+8, 12, rl.Gray)
		return
	}

	maxVal := 1.0
	for _, v := range g.dropletTrend {
		if v > maxVal {
			maxVal = v
		}
	}

	step := float32(w) / float32(len(g.dropletTrend))
	for i, v := range g.dropletTrend {
		barX := x + int32(float32(i)*step)
		barH := int32(v / maxVal * float64(h))
		if barH < 1 {
			barH = 1
		}
		rl.DrawRectangle(barX, plotY+h-barH, int32(step)+1, barH, waterFill)
	}
	rl.DrawRectangleLines(x, plotY, w, h, frameColor)
}
