// Package ui renders the control panel and heads-up display over the scene.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	TitleColor  rl.Color
	StatusColor rl.Color

	TempCool     rl.Color
	TempWarm     rl.Color
	TempCritical rl.Color

	Padding    int32
	LineHeight int32
	FontSize   int32
	TitleSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.RayWhite,
		TitleColor:  rl.White,
		StatusColor: rl.Yellow,

		TempCool:     rl.Color{R: 0, G: 255, B: 255, A: 255},
		TempWarm:     rl.Orange,
		TempCritical: rl.Red,

		Padding:    10,
		LineHeight: 16,
		FontSize:   12,
		TitleSize:  16,
	}
}

// TemperatureColor maps a temperature onto its display color: cool cyan
// below 2, orange below 4, red from 4 up.
func (t Theme) TemperatureColor(temp float64) rl.Color {
	switch {
	case temp < 2.0:
		return t.TempCool
	case temp < 4.0:
		return t.TempWarm
	default:
		return t.TempCritical
	}
}
