// Package sim implements the simulation core: per-frame gravity smoothing,
// temperature-driven melt scheduling, bounded droplet spawning, and
// out-of-bounds reclamation. It drives a physics.World but never steps it;
// the shell owns integration timing.
package sim

import "github.com/KIM3310/ecotide/physics"

// Tilt is a device attitude sample in radians.
type Tilt struct {
	Pitch float64
	Roll  float64
}

// Gravity feel constants. The smoothing factor gives roughly a 22-frame
// settle at 60 fps; changing it changes how the toy feels in the hand.
const (
	tiltGain         = 25.0
	baseGravityY     = -9.8
	gravitySmoothing = 0.1
)

// DefaultGravity returns the resting gravity vector with no tilt applied.
func DefaultGravity() physics.Vec2 {
	return physics.Vec2{X: 0, Y: baseGravityY}
}

// GravityTarget maps a tilt sample onto the gravity vector it implies.
func GravityTarget(tilt Tilt) physics.Vec2 {
	return physics.Vec2{
		X: tilt.Roll * tiltGain,
		Y: -tilt.Pitch*tiltGain + baseGravityY,
	}
}

// SmoothGravity moves prev one smoothing step toward the gravity implied by
// tilt. Callers apply it once per frame; a constant tilt converges on the
// target without ever overshooting.
func SmoothGravity(prev physics.Vec2, tilt Tilt) physics.Vec2 {
	target := GravityTarget(tilt)
	return physics.Vec2{
		X: prev.X + (target.X-prev.X)*gravitySmoothing,
		Y: prev.Y + (target.Y-prev.Y)*gravitySmoothing,
	}
}
