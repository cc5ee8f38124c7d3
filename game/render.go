package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/KIM3310/ecotide/sim"
	"github.com/KIM3310/ecotide/telemetry"
	"github.com/KIM3310/ecotide/ui"
)

const controlsLegend = "arrows: tilt | t: tilt on/off | pgup/pgdn: heat | home: level | space: pause | r: reset | tab: panel | f3: perf | f5: snapshot | f11: fullscreen"

// Scene palette. The world is cold; everything leans blue except the wood.
var (
	skyTop      = rl.Color{R: 10, G: 22, B: 38, A: 255}
	skyBottom   = rl.Color{R: 38, G: 64, B: 96, A: 255}
	frameColor  = rl.Color{R: 70, G: 90, B: 110, A: 255}
	iceFill     = rl.Color{R: 170, G: 216, B: 250, A: 255}
	iceOutline  = rl.Color{R: 235, G: 248, B: 255, A: 255}
	woodFill    = rl.Color{R: 126, G: 90, B: 58, A: 255}
	woodOutline = rl.Color{R: 82, G: 58, B: 36, A: 255}
	roofFill    = rl.Color{R: 104, G: 66, B: 48, A: 255}
	doorFill    = rl.Color{R: 64, G: 44, B: 28, A: 255}
	waterFill   = rl.Color{R: 96, G: 160, B: 230, A: 220}
	waterBand   = rl.Color{R: 60, G: 120, B: 190, A: 50}
)

// Draw renders the game state.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()

	g.drawBackground()
	g.drawScenery()
	g.drawDroplets()
	g.drawHUD()

	if g.showPerf {
		g.drawPerfOverlay()
	}

	if g.showPanel && g.panel != nil {
		res := g.panel.Draw(int32(g.screenWidth), g.controls)
		g.controls = res.State
		if res.LevelTilt {
			g.controls.Pitch = 0
			g.controls.Roll = 0
		}
		if res.ResetScene {
			g.resetScene()
		}
	}

	rl.EndDrawing()

	g.perfCollector.EndFrame()
}

// toScreenY flips a world-space Y (y-up) into screen space (y-down).
func (g *Game) toScreenY(worldY float64) float32 {
	return g.screenHeight - float32(worldY)
}

func (g *Game) drawBackground() {
	rl.ClearBackground(rl.Black)
	rl.DrawRectangleGradientV(0, 0, int32(g.screenWidth), int32(g.screenHeight), skyTop, skyBottom)

	// Water tint near the floor, where the meltwater gathers
	bandH := int32(g.screenHeight * 0.18)
	rl.DrawRectangle(0, int32(g.screenHeight)-bandH, int32(g.screenWidth), bandH, waterBand)

	rl.DrawRectangleLines(0, 0, int32(g.screenWidth), int32(g.screenHeight), frameColor)
}

// drawScenery renders the props: the melting shelf, the platform under it,
// and the house the meltwater threatens.
func (g *Game) drawScenery() {
	layout := g.engine.Layout()
	shelf := g.engine.Shelf()

	// Platform
	g.drawBox(layout.Platform.Pos.X, layout.Platform.Pos.Y,
		layout.Platform.Width, layout.Platform.Height, woodFill, woodOutline)

	// House: walls, roof, door
	house := layout.House
	g.drawBox(house.Pos.X, house.Pos.Y, house.Width, house.Height, woodFill, woodOutline)

	hx := float32(house.Pos.X)
	top := g.toScreenY(house.Pos.Y) - float32(house.Height)/2
	halfW := float32(house.Width) / 2
	apex := rl.Vector2{X: hx, Y: top - 24}
	left := rl.Vector2{X: hx - halfW - 6, Y: top}
	right := rl.Vector2{X: hx + halfW + 6, Y: top}
	rl.DrawTriangle(apex, right, left, roofFill)

	doorW := float32(14)
	doorH := float32(24)
	bottom := g.toScreenY(house.Pos.Y) + float32(house.Height)/2
	rl.DrawRectangle(int32(hx-doorW/2), int32(bottom-doorH), int32(doorW), int32(doorH), doorFill)

	// Shelf, scaled and faded by melt progress
	w := shelf.Width * shelf.ScaleX
	h := shelf.Height * shelf.ScaleY
	alpha := uint8(255 * shelf.Alpha)
	fill := iceFill
	fill.A = alpha
	outline := iceOutline
	outline.A = alpha
	g.drawBox(shelf.Pos.X, shelf.Pos.Y, w, h, fill, outline)
}

// drawBox draws a filled, outlined rectangle centered at a world position.
func (g *Game) drawBox(worldX, worldY, width, height float64, fill, outline rl.Color) {
	x := int32(float32(worldX) - float32(width)/2)
	y := int32(g.toScreenY(worldY) - float32(height)/2)
	rl.DrawRectangle(x, y, int32(width), int32(height), fill)
	rl.DrawRectangleLines(x, y, int32(width), int32(height), outline)
}

func (g *Game) drawDroplets() {
	g.droplets = g.engine.Droplets(g.droplets[:0])
	for _, d := range g.droplets {
		rl.DrawCircle(int32(d.Pos.X), int32(g.toScreenY(d.Pos.Y)), float32(d.Radius), waterFill)
	}
}

func (g *Game) drawHUD() {
	grav := g.engine.Gravity()
	g.hud.Draw(ui.HUDData{
		Droplets:      g.engine.DropletCount(),
		MaxDroplets:   sim.MaxDroplets,
		Temperature:   g.engine.Temperature(),
		GravityX:      grav.X,
		GravityY:      grav.Y,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		ShelfDepleted: g.engine.Depleted(),
		TiltEnabled:   g.tiltEnabled,
		ScreenWidth:   int32(g.screenWidth),
		ScreenHeight:  int32(g.screenHeight),
	})
	g.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)
}
