package sim

import (
	"math/rand"

	"github.com/KIM3310/ecotide/physics"
)

// Frame pacing. Pauses and debugger stops show up as huge wall-clock gaps;
// clamping keeps the first frame after one from teleporting every body.
const (
	maxFrameDT      = 0.1
	firstFrameDT    = 1.0 / 60.0
	cleanupInterval = 0.25
)

// Input carries the control state sampled for one frame.
type Input struct {
	Temperature float64
	Tilt        Tilt
	HasTilt     bool
}

// FrameReport summarizes what one Advance call did.
type FrameReport struct {
	DT       float64
	Spawned  int
	Rejected int
	Pruned   int
	Bursts   int
}

// Engine owns the simulation state and advances it one frame at a time. It
// drives the physics world (gravity, bodies, frame) but never steps it; the
// caller integrates with the DT the report hands back.
type Engine struct {
	phys   physics.World
	pool   *Pool
	melt   *MeltController
	shelf  Shelf
	bounds physics.Bounds
	layout Layout

	shelfID    physics.BodyID
	platformID physics.BodyID
	houseID    physics.BodyID

	gravity         physics.Vec2
	lastTime        float64
	hasTime         bool
	lastTemperature float64
	meltTimer       float64
	cleanupTimer    float64

	appliedScaleX float64
	appliedScaleY float64
}

// NewEngine builds the scene inside the given play area: frame gravity at
// rest, scenery bodies placed, the shelf intact, and the starting puddle
// seeded.
func NewEngine(phys physics.World, b physics.Bounds, rng *rand.Rand) *Engine {
	e := &Engine{
		phys:            phys,
		bounds:          b,
		layout:          ComputeLayout(b),
		gravity:         DefaultGravity(),
		lastTemperature: temperatureMin,
		appliedScaleX:   1,
		appliedScaleY:   1,
	}
	e.phys.SetGravity(e.gravity)

	e.shelfID = phys.CreateBoxBody(e.layout.Shelf.Pos, e.layout.Shelf.Width, e.layout.Shelf.Height, iceMaterial)
	e.platformID = phys.CreateBoxBody(e.layout.Platform.Pos, e.layout.Platform.Width, e.layout.Platform.Height, woodMaterial)
	e.houseID = phys.CreateBoxBody(e.layout.House.Pos, e.layout.House.Width, e.layout.House.Height, woodMaterial)

	e.shelf = Shelf{
		Pos:    e.layout.Shelf.Pos,
		Width:  e.layout.Shelf.Width,
		Height: e.layout.Shelf.Height,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
	}
	e.melt = NewMeltController(&e.shelf, rng)
	e.pool = NewPool(phys, rng)
	e.pool.SeedPuddle(b)
	return e
}

// Advance moves the simulation to wall-clock time now under the given
// input. It mutates the physics world but does not step it.
func (e *Engine) Advance(now float64, in Input) FrameReport {
	var dt float64
	if !e.hasTime {
		dt = firstFrameDT
		e.hasTime = true
	} else {
		dt = now - e.lastTime
		if dt < 0 {
			dt = 0
		}
		if dt > maxFrameDT {
			dt = maxFrameDT
		}
	}
	e.lastTime = now

	report := FrameReport{DT: dt}

	if in.HasTilt {
		e.gravity = SmoothGravity(e.gravity, in.Tilt)
		e.phys.SetGravity(e.gravity)
	}

	temp := ClampTemperature(in.Temperature)
	if temp != e.lastTemperature {
		e.melt.OnTemperatureChanged(temp)
		e.lastTemperature = temp
	}

	e.melt.Step(dt)
	if e.shelf.ScaleX != e.appliedScaleX || e.shelf.ScaleY != e.appliedScaleY {
		e.phys.ResizeBox(e.shelfID, e.shelf.Width*e.shelf.ScaleX, e.shelf.Height*e.shelf.ScaleY)
		e.appliedScaleX = e.shelf.ScaleX
		e.appliedScaleY = e.shelf.ScaleY
	}

	if temp > MeltOnset {
		e.meltTimer += dt
		if e.meltTimer >= SpawnInterval(temp) {
			e.meltTimer = 0
			positions := e.melt.SpawnBatch(temp)
			if len(positions) > 0 {
				report.Bursts++
			}
			for _, pos := range positions {
				if e.pool.Spawn(pos) {
					report.Spawned++
				} else {
					report.Rejected++
				}
			}
		}
	} else {
		e.meltTimer = 0
	}

	e.cleanupTimer += dt
	if e.cleanupTimer >= cleanupInterval {
		e.cleanupTimer = 0
		report.Pruned = e.pool.PruneOutOfBounds(e.bounds)
	}

	return report
}

// Relayout adapts the scene to a new play area: frame walls move, scenery
// bodies are recentered, droplets and timers are left alone.
func (e *Engine) Relayout(b physics.Bounds) {
	e.bounds = b
	e.layout = ComputeLayout(b)
	e.phys.SetFrame(b)
	e.phys.MoveBody(e.shelfID, e.layout.Shelf.Pos)
	e.phys.MoveBody(e.platformID, e.layout.Platform.Pos)
	e.phys.MoveBody(e.houseID, e.layout.House.Pos)
	e.shelf.Pos = e.layout.Shelf.Pos
}

// Reset restores the launch state: shelf intact, puddle reseeded, gravity
// level, timers cleared. The wall clock keeps running so the next frame's
// DT stays honest.
func (e *Engine) Reset() {
	e.pool.Clear()
	e.melt.Reset()
	e.phys.ResizeBox(e.shelfID, e.shelf.Width, e.shelf.Height)
	e.appliedScaleX = 1
	e.appliedScaleY = 1
	e.pool.SeedPuddle(e.bounds)
	e.meltTimer = 0
	e.cleanupTimer = 0
	e.lastTemperature = temperatureMin
	e.gravity = DefaultGravity()
	e.phys.SetGravity(e.gravity)
}

// SceneState is the restorable portion of the simulation: melt progress,
// the accepted temperature, and every live droplet. Gravity and timers are
// deliberately not part of it; they rebuild from inputs within a frame or
// two.
type SceneState struct {
	ShelfScaleX float64
	ShelfScaleY float64
	ShelfAlpha  float64
	Temperature float64
	Droplets    []DropletState
}

// CaptureScene returns the state needed to recreate the current scene.
func (e *Engine) CaptureScene() SceneState {
	return SceneState{
		ShelfScaleX: e.shelf.ScaleX,
		ShelfScaleY: e.shelf.ScaleY,
		ShelfAlpha:  e.shelf.Alpha,
		Temperature: e.lastTemperature,
		Droplets:    e.pool.States(nil),
	}
}

// RestoreScene replaces the live scene with a captured one: droplets are
// rebuilt mid-flight and the shelf resumes at the saved melt progress. The
// restored count is returned; it falls short of the saved count only if the
// snapshot itself exceeds the droplet cap.
func (e *Engine) RestoreScene(s SceneState) int {
	e.pool.Clear()
	e.melt.Restore(s.ShelfScaleX, s.ShelfScaleY, s.ShelfAlpha)
	e.phys.ResizeBox(e.shelfID, e.shelf.Width*e.shelf.ScaleX, e.shelf.Height*e.shelf.ScaleY)
	e.appliedScaleX = e.shelf.ScaleX
	e.appliedScaleY = e.shelf.ScaleY

	e.lastTemperature = ClampTemperature(s.Temperature)
	e.meltTimer = 0
	e.cleanupTimer = 0

	restored := 0
	for _, d := range s.Droplets {
		if e.pool.SpawnState(d) {
			restored++
		}
	}
	return restored
}

// Gravity returns the smoothed gravity currently applied to the world.
func (e *Engine) Gravity() physics.Vec2 {
	return e.gravity
}

// Shelf returns a copy of the shelf's visual state.
func (e *Engine) Shelf() Shelf {
	return e.shelf
}

// Temperature returns the last accepted (clamped) temperature.
func (e *Engine) Temperature() float64 {
	return e.lastTemperature
}

// MeltActive reports whether the current temperature drives melting.
func (e *Engine) MeltActive() bool {
	return e.lastTemperature > MeltOnset
}

// Depleted reports whether the shelf has melted past the point of spawning.
func (e *Engine) Depleted() bool {
	return e.melt.Depleted()
}

// DropletCount returns the number of live droplets.
func (e *Engine) DropletCount() int {
	return e.pool.Count()
}

// Droplets appends a render snapshot of every droplet to dst.
func (e *Engine) Droplets(dst []DropletView) []DropletView {
	return e.pool.Snapshot(dst)
}

// DropletSpeeds appends every droplet's speed to dst.
func (e *Engine) DropletSpeeds(dst []float64) []float64 {
	return e.pool.Speeds(dst)
}

// Bounds returns the current play area.
func (e *Engine) Bounds() physics.Bounds {
	return e.bounds
}

// Layout returns the current scenery placements.
func (e *Engine) Layout() Layout {
	return e.layout
}
