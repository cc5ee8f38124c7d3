package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/config"
	"github.com/KIM3310/ecotide/physics"
)

// handleInput processes keyboard input and window events.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Panel visibility toggle
	if rl.IsKeyPressed(rl.KeyTab) {
		g.showPanel = !g.showPanel
	}

	// Perf overlay toggle
	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	// Manual snapshot of the current scene
	if rl.IsKeyPressed(rl.KeyF5) {
		if g.snapshotDir != "" {
			g.saveSnapshot(nil)
		} else {
			slog.Info("snapshot skipped, no snapshot dir configured")
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.resetScene()
	}

	// Level the tilt without touching temperature
	if rl.IsKeyPressed(rl.KeyHome) {
		g.controls.Pitch = 0
		g.controls.Roll = 0
	}

	// Tilt source on/off, the desktop stand-in for losing device motion
	if rl.IsKeyPressed(rl.KeyT) {
		g.tiltEnabled = !g.tiltEnabled
	}

	cfg := config.Cfg()
	dt := rl.GetFrameTime()

	// Held arrows nudge the tilt, like slowly tipping the device.
	tiltStep := float32(cfg.Controls.KeyTiltRate) * dt
	tiltMax := float32(cfg.Controls.TiltMax)
	if rl.IsKeyDown(rl.KeyRight) {
		g.controls.Roll = clamp32(g.controls.Roll+tiltStep, -tiltMax, tiltMax)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.controls.Roll = clamp32(g.controls.Roll-tiltStep, -tiltMax, tiltMax)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.controls.Pitch = clamp32(g.controls.Pitch+tiltStep, -tiltMax, tiltMax)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.controls.Pitch = clamp32(g.controls.Pitch-tiltStep, -tiltMax, tiltMax)
	}

	// Page keys drive the heat without reaching for the mouse.
	tempStep := float32(cfg.Controls.KeyTemperatureRate) * dt
	if rl.IsKeyDown(rl.KeyPageUp) {
		g.controls.Temperature = clamp32(g.controls.Temperature+tempStep, 1, 5)
	}
	if rl.IsKeyDown(rl.KeyPageDown) {
		g.controls.Temperature = clamp32(g.controls.Temperature-tempStep, 1, 5)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.engine.Relayout(physics.Bounds{
		MinX: 0,
		MinY: 0,
		MaxX: float64(w),
		MaxY: float64(h),
	})
}

// clamp32 clamps x to [min, max].
func clamp32(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
