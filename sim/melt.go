package sim

import (
	"math"
	"math/rand"

	"github.com/KIM3310/ecotide/physics"
)

// Melt tuning constants. Temperature lives in [1, 5]: 1 is stable ice,
// melting engages above MeltOnset, everything above CriticalTemperature is
// runaway melt.
const (
	temperatureMin      = 1.0
	temperatureMax      = 5.0
	MeltOnset           = 1.5
	CriticalTemperature = 4.0

	minMeltRatio       = 0.01 // keeps the shelf shape non-degenerate
	minShelfScaleY     = 0.4
	minShelfAlpha      = 0.3
	shrinkDuration     = 0.3  // seconds per shrink transition
	spawnCutoffScaleX  = 0.05 // below this the shelf is spent
	maxSpawnInterval   = 0.1  // seconds between bursts at onset
	minSpawnInterval   = 0.005
	spawnSpreadX       = 100.0 // horizontal scatter, scaled by shelf width
	spawnDropY         = 70.0  // drip point below the shelf center
	burstBaseCount     = 1
	burstSeverityCount = 5
)

// ClampTemperature confines t to the supported temperature domain.
func ClampTemperature(t float64) float64 {
	return math.Min(temperatureMax, math.Max(temperatureMin, t))
}

// Severity maps temperature onto melt intensity in [0, 1].
func Severity(t float64) float64 {
	s := (t - temperatureMin) / (temperatureMax - temperatureMin)
	return math.Min(1, math.Max(0, s))
}

// Shelf is the melting solid: one long-lived body whose visual scale and
// translucency shrink as temperature rises. It is never destroyed and never
// regrows within a session.
type Shelf struct {
	Pos    physics.Vec2
	Width  float64 // unscaled extent
	Height float64
	ScaleX float64
	ScaleY float64
	Alpha  float64
}

// transition is a linear interpolation task over one shelf attribute.
type transition struct {
	from     float64
	to       float64
	elapsed  float64
	duration float64
}

// step advances the transition and returns the current value.
func (tr *transition) step(dt float64) (value float64, done bool) {
	tr.elapsed += dt
	if tr.elapsed >= tr.duration {
		return tr.to, true
	}
	p := tr.elapsed / tr.duration
	return tr.from + (tr.to-tr.from)*p, false
}

// MeltController turns temperature changes into shelf shrinkage and
// schedules droplet bursts. All state is explicit so a test can step the
// transitions deterministically.
type MeltController struct {
	shelf *Shelf
	rng   *rand.Rand

	scaleX *transition
	scaleY *transition
	alpha  *transition
}

// NewMeltController wires a controller to the shelf it mutates.
func NewMeltController(shelf *Shelf, rng *rand.Rand) *MeltController {
	return &MeltController{shelf: shelf, rng: rng}
}

// MeltRatio maps temperature onto the shelf scale it demands.
func MeltRatio(t float64) float64 {
	return math.Max(minMeltRatio, 1-(t-temperatureMin)/(temperatureMax-temperatureMin))
}

// SpawnInterval returns the seconds between droplet bursts at temperature t.
func SpawnInterval(t float64) float64 {
	return math.Max(minSpawnInterval, maxSpawnInterval-Severity(t)*maxSpawnInterval)
}

// BatchSize returns the droplet count per burst at temperature t.
func BatchSize(t float64) int {
	return int(burstBaseCount + Severity(t)*burstSeverityCount)
}

// OnTemperatureChanged starts shrink transitions toward the scale the new
// temperature demands. Below the melt onset nothing happens. Targets are
// clamped so a later, cooler temperature can never re-inflate the shelf.
func (m *MeltController) OnTemperatureChanged(t float64) {
	if t <= MeltOnset {
		return
	}

	ratio := MeltRatio(t)
	m.scaleX = beginShrink(m.shelf.ScaleX, ratio)
	m.scaleY = beginShrink(m.shelf.ScaleY, math.Max(minShelfScaleY, ratio))
	m.alpha = beginShrink(m.shelf.Alpha, math.Max(minShelfAlpha, ratio))
}

// beginShrink builds a transition from current toward target, or nil when
// the shelf is already at or past it.
func beginShrink(current, target float64) *transition {
	if target >= current {
		return nil
	}
	return &transition{from: current, to: target, duration: shrinkDuration}
}

// Step advances active transitions by dt, writing interpolated values back
// to the shelf. Completed transitions are dropped.
func (m *MeltController) Step(dt float64) {
	if m.scaleX != nil {
		v, done := m.scaleX.step(dt)
		m.shelf.ScaleX = v
		if done {
			m.scaleX = nil
		}
	}
	if m.scaleY != nil {
		v, done := m.scaleY.step(dt)
		m.shelf.ScaleY = v
		if done {
			m.scaleY = nil
		}
	}
	if m.alpha != nil {
		v, done := m.alpha.step(dt)
		m.shelf.Alpha = v
		if done {
			m.alpha = nil
		}
	}
}

// Shrinking reports whether any transition is still running.
func (m *MeltController) Shrinking() bool {
	return m.scaleX != nil || m.scaleY != nil || m.alpha != nil
}

// Depleted reports whether the shelf is spent and can no longer shed
// droplets.
func (m *MeltController) Depleted() bool {
	return m.shelf.ScaleX <= spawnCutoffScaleX
}

// SpawnBatch returns drip positions for one burst at temperature t, or nil
// once the shelf is spent. Positions scatter under the shelf, narrowing as
// it shrinks.
func (m *MeltController) SpawnBatch(t float64) []physics.Vec2 {
	if m.Depleted() {
		return nil
	}

	n := BatchSize(t)
	batch := make([]physics.Vec2, 0, n)
	for i := 0; i < n; i++ {
		batch = append(batch, physics.Vec2{
			X: m.shelf.Pos.X + (m.rng.Float64()*2-1)*spawnSpreadX*m.shelf.ScaleX,
			Y: m.shelf.Pos.Y - spawnDropY,
		})
	}
	return batch
}

// Reset restores the shelf to its unmelted state and cancels transitions.
func (m *MeltController) Reset() {
	m.shelf.ScaleX = 1
	m.shelf.ScaleY = 1
	m.shelf.Alpha = 1
	m.scaleX = nil
	m.scaleY = nil
	m.alpha = nil
}

// Restore sets the shelf's melt progress directly and cancels any running
// transitions. The next temperature change shrinks from these values.
func (m *MeltController) Restore(scaleX, scaleY, alpha float64) {
	m.shelf.ScaleX = scaleX
	m.shelf.ScaleY = scaleY
	m.shelf.Alpha = alpha
	m.scaleX = nil
	m.scaleY = nil
	m.alpha = nil
}
