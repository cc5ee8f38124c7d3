package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth  = 250
	panelHeight = 232
	sliderWidth = panelWidth - 70
)

// PanelState carries the control values the panel edits.
type PanelState struct {
	Temperature float32
	Pitch       float32
	Roll        float32
}

// PanelResult reports the edited values and button presses for one frame.
type PanelResult struct {
	State      PanelState
	ResetScene bool
	LevelTilt  bool
}

// ControlPanel renders the temperature and tilt sliders.
type ControlPanel struct {
	theme   Theme
	tiltMax float32
}

// NewControlPanel creates a panel whose tilt sliders span ±tiltMax radians.
func NewControlPanel(tiltMax float64) *ControlPanel {
	return &ControlPanel{theme: DefaultTheme(), tiltMax: float32(tiltMax)}
}

// Draw renders the panel anchored to the top-right corner and returns the
// edited state.
func (p *ControlPanel) Draw(screenWidth int32, state PanelState) PanelResult {
	x := float32(screenWidth) - panelWidth - 20
	y := float32(15)

	bgX := int32(x) - 10
	bgY := int32(y) - 5
	rl.DrawRectangle(bgX, bgY, panelWidth+20, panelHeight, p.theme.PanelBg)
	rl.DrawRectangleLines(bgX, bgY, panelWidth+20, panelHeight, p.theme.PanelBorder)

	rl.DrawText("Controls", int32(x), int32(y), p.theme.TitleSize, p.theme.TitleColor)
	y += 25

	// Temperature slider
	rl.DrawText("Temperature", int32(x), int32(y), 14, p.theme.LabelColor)
	y += 18
	state.Temperature = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 20},
		"1", "5",
		state.Temperature, 1, 5,
	)
	tempColor := p.theme.TemperatureColor(float64(state.Temperature))
	rl.DrawText(fmt.Sprintf("%.2f", state.Temperature), int32(x+sliderWidth+10), int32(y)+2, 16, tempColor)
	y += 35

	tiltLo := fmt.Sprintf("%.1f", -p.tiltMax)
	tiltHi := fmt.Sprintf("%.1f", p.tiltMax)

	// Pitch slider
	rl.DrawText("Pitch", int32(x), int32(y), 14, p.theme.LabelColor)
	y += 18
	state.Pitch = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 20},
		tiltLo, tiltHi,
		state.Pitch, -p.tiltMax, p.tiltMax,
	)
	rl.DrawText(fmt.Sprintf("%+.2f", state.Pitch), int32(x+sliderWidth+10), int32(y)+2, 16, p.theme.ValueColor)
	y += 35

	// Roll slider
	rl.DrawText("Roll", int32(x), int32(y), 14, p.theme.LabelColor)
	y += 18
	state.Roll = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 20},
		tiltLo, tiltHi,
		state.Roll, -p.tiltMax, p.tiltMax,
	)
	rl.DrawText(fmt.Sprintf("%+.2f", state.Roll), int32(x+sliderWidth+10), int32(y)+2, 16, p.theme.ValueColor)
	y += 35

	// Buttons
	result := PanelResult{}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 110, Height: 28}, "Reset Scene") {
		result.ResetScene = true
	}
	if gui.Button(rl.Rectangle{X: x + 120, Y: y, Width: 110, Height: 28}, "Level Tilt") {
		result.LevelTilt = true
	}

	result.State = state
	return result
}
