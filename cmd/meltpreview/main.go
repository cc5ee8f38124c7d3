// Melt curve preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/meltpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/sim"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	plotWidth    = 620
	plotHeight   = 165
	plotGap      = 10
	panelWidth   = windowWidth - plotWidth - 30
	curveSamples = 240

	tempMin = 1.0
	tempMax = 5.0
)

// curvePlot describes one melt response curve panel.
type curvePlot struct {
	Title  string
	Format string
	Eval   func(t float64) float64
	Peak   float64 // highest value over the domain, scales the Y axis
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Melt Curve Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	// Start at the config default: stable ice.
	temp := float32(1.0)

	plots := []curvePlot{
		{Title: "Shelf melt ratio (target scale)", Format: "%.2f", Eval: sim.MeltRatio},
		{Title: "Spawn interval (seconds between bursts)", Format: "%.3f", Eval: sim.SpawnInterval},
		{Title: "Droplets per burst", Format: "%.0f", Eval: func(t float64) float64 { return float64(sim.BatchSize(t)) }},
		{Title: "Melt rate (droplets per second)", Format: "%.0f", Eval: meltRate},
	}
	for i := range plots {
		plots[i].Peak = sampleMax(plots[i].Eval)
	}

	for !rl.WindowShouldClose() {
		t := float64(temp)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw curves
		for i, plot := range plots {
			py := int32(10 + i*(plotHeight+plotGap))
			drawCurve(10, py, plotWidth, plotHeight, plot, t, i == 0)
		}

		// Control panel
		panelX := float32(plotWidth + 20)
		panelY := float32(10)

		rl.DrawText("Melt Response", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Temperature slider
		rl.DrawText("Temperature (melt driver)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		temp = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1.0", "5.0",
			temp, tempMin, tempMax,
		)
		rl.DrawText(fmt.Sprintf("%.2f", temp), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		panelY += 35

		rl.DrawText(fmt.Sprintf("Phase: %s", phaseLabel(t)), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 30

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Readouts at the selected temperature
		rl.DrawText("At this temperature", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		readouts := []string{
			fmt.Sprintf("Severity: %.0f%%", sim.Severity(t)*100),
			fmt.Sprintf("Shelf target: %.0f%% of full size", sim.MeltRatio(t)*100),
			fmt.Sprintf("Burst every: %.0f ms", sim.SpawnInterval(t)*1000),
			fmt.Sprintf("Droplets per burst: %d", sim.BatchSize(t)),
			fmt.Sprintf("Melt rate: %.0f droplets/s", meltRate(t)),
		}
		for _, line := range readouts {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.DarkGray)
			panelY += 20
		}
		panelY += 10

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		// Buttons jump to the interesting temperatures
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Stable (1.0)") {
			temp = tempMin
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Onset (1.5)") {
			temp = float32(sim.MeltOnset)
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Critical (4.0)") {
			temp = float32(sim.CriticalTemperature)
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Max (5.0)") {
			temp = tempMax
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"simulation:",
			fmt.Sprintf("  start_temperature: %.2f", temp),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf("simulation:\n  start_temperature: %.2f", temp)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// drawCurve renders one melt curve over the temperature domain, with
// reference lines at the melt onset and critical temperature and a marker
// at the currently selected temperature.
func drawCurve(x, y, w, h int32, plot curvePlot, temp float64, labelMarks bool) {
	const padTop, padBottom, padSide = 30, 22, 10

	rl.DrawRectangleLines(x, y, w, h, rl.DarkGray)
	rl.DrawText(plot.Title, x+8, y+8, 16, rl.DarkGray)
	rl.DrawText(fmt.Sprintf(plot.Format, plot.Peak), x+w-padSide-60, y+8, 12, rl.Gray)

	innerX := float32(x + padSide)
	innerY := float32(y + padTop)
	innerW := float32(w - 2*padSide)
	innerH := float32(h - padTop - padBottom)
	maxY := plot.Peak * 1.05

	toPoint := func(t, v float64) rl.Vector2 {
		px := innerX + float32((t-tempMin)/(tempMax-tempMin))*innerW
		py := innerY + innerH - float32(v/maxY)*innerH
		return rl.Vector2{X: px, Y: py}
	}

	// Reference lines: melt onset and critical temperature
	onsetX := toPoint(sim.MeltOnset, 0).X
	critX := toPoint(sim.CriticalTemperature, 0).X
	rl.DrawLineV(rl.Vector2{X: onsetX, Y: innerY}, rl.Vector2{X: onsetX, Y: innerY + innerH}, rl.Orange)
	rl.DrawLineV(rl.Vector2{X: critX, Y: innerY}, rl.Vector2{X: critX, Y: innerY + innerH}, rl.Red)
	if labelMarks {
		rl.DrawText("onset", int32(onsetX)+4, y+padTop, 12, rl.Orange)
		rl.DrawText("critical", int32(critX)+4, y+padTop, 12, rl.Red)
	}

	// Marker column at the selected temperature, under the curve
	mark := toPoint(temp, plot.Eval(temp))
	rl.DrawLineV(rl.Vector2{X: mark.X, Y: innerY}, rl.Vector2{X: mark.X, Y: innerY + innerH}, rl.LightGray)

	prev := toPoint(tempMin, plot.Eval(tempMin))
	for i := 1; i <= curveSamples; i++ {
		t := tempMin + (tempMax-tempMin)*float64(i)/curveSamples
		cur := toPoint(t, plot.Eval(t))
		rl.DrawLineV(prev, cur, rl.DarkBlue)
		prev = cur
	}
	rl.DrawCircleV(mark, 4, rl.Maroon)

	// Axis labels
	rl.DrawText("1.0", x+padSide, y+h-16, 12, rl.Gray)
	rl.DrawText("5.0", x+w-padSide-22, y+h-16, 12, rl.Gray)
}

// meltRate estimates droplets per second at temperature t. Below the melt
// onset no bursts fire at all.
func meltRate(t float64) float64 {
	if t <= sim.MeltOnset {
		return 0
	}
	return float64(sim.BatchSize(t)) / sim.SpawnInterval(t)
}

// phaseLabel names the melt phase the temperature sits in.
func phaseLabel(t float64) string {
	switch {
	case t <= sim.MeltOnset:
		return "stable ice"
	case t < sim.CriticalTemperature:
		return "melting"
	default:
		return "runaway melt"
	}
}

// sampleMax scans a curve over the temperature domain for its peak value.
func sampleMax(fn func(float64) float64) float64 {
	peak := 0.0
	for i := 0; i <= curveSamples; i++ {
		t := tempMin + (tempMax-tempMin)*float64(i)/curveSamples
		if v := fn(t); v > peak {
			peak = v
		}
	}
	return peak
}
