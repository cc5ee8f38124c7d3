package sim

import "github.com/KIM3310/ecotide/physics"

// Scenery proportions. The shelf hangs in the upper third of the play area
// so melt bursts have room to fall; the platform and house sit near the
// floor where the puddle collects.
const (
	shelfWidth  = 320.0
	shelfHeight = 90.0
	shelfRaise  = 0.66 // fraction of play-area height above the floor

	platformWidth  = 260.0
	platformHeight = 28.0
	platformRaise  = 90.0

	houseWidth  = 72.0
	houseHeight = 64.0
)

// FrameMaterial is the surface of the play-area walls and floor.
var FrameMaterial = physics.Material{Friction: 0.5, Elasticity: 0.1}

var (
	iceMaterial  = physics.Material{Friction: 0.2, Elasticity: 0.1}
	woodMaterial = physics.Material{Friction: 0.6, Elasticity: 0.05}
)

// Placement is a scenery box: center position plus full extents.
type Placement struct {
	Pos    physics.Vec2
	Width  float64
	Height float64
}

// Layout positions every scenery piece for a given play area.
type Layout struct {
	Shelf    Placement
	Platform Placement
	House    Placement
}

// ComputeLayout derives scenery placements from the play-area bounds. The
// same proportions are used on startup and on resize, so scenery keeps its
// relative position when the window changes.
func ComputeLayout(b physics.Bounds) Layout {
	shelf := Placement{
		Pos:    physics.Vec2{X: b.CenterX(), Y: b.MinY + shelfRaise*b.Height()},
		Width:  shelfWidth,
		Height: shelfHeight,
	}
	platform := Placement{
		Pos:    physics.Vec2{X: b.CenterX(), Y: b.MinY + platformRaise},
		Width:  platformWidth,
		Height: platformHeight,
	}
	house := Placement{
		Pos: physics.Vec2{
			X: b.CenterX(),
			Y: platform.Pos.Y + platformHeight/2 + houseHeight/2,
		},
		Width:  houseWidth,
		Height: houseHeight,
	}
	return Layout{Shelf: shelf, Platform: platform, House: house}
}
