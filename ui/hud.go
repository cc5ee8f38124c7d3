package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/sim"
)

// HUDData holds all the data needed to render the heads-up display.
type HUDData struct {
	Droplets      int
	MaxDroplets   int
	Temperature   float64
	GravityX      float64
	GravityY      float64
	FPS           int32
	Paused        bool
	ShelfDepleted bool
	TiltEnabled   bool
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the heads-up display.
type HUD struct {
	theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{theme: DefaultTheme()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText("Ecotide", 10, 10, 20, h.theme.TitleColor)

	rl.DrawText(
		fmt.Sprintf("Droplets: %d / %d | FPS: %d", data.Droplets, data.MaxDroplets, data.FPS),
		10, 35, 16, h.theme.LabelColor,
	)

	tempColor := h.theme.TemperatureColor(data.Temperature)
	rl.DrawText(fmt.Sprintf("Temperature: %.2f", data.Temperature), 10, 55, 16, tempColor)

	rl.DrawText(
		fmt.Sprintf("Gravity: (%+.1f, %+.1f)", data.GravityX, data.GravityY),
		10, 75, 16, h.theme.LabelColor,
	)

	y := int32(95)
	if data.Temperature > sim.CriticalTemperature {
		rl.DrawText("CRITICAL MELT", 10, y, 16, h.theme.TempCritical)
		y += 20
	}
	if data.ShelfDepleted {
		rl.DrawText("Shelf depleted - press R to reset", 10, y, 16, h.theme.LabelColor)
		y += 20
	}
	if !data.TiltEnabled {
		rl.DrawText("Tilt off - gravity held", 10, y, 16, h.theme.StatusColor)
		y += 20
	}
	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, h.theme.StatusColor)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
