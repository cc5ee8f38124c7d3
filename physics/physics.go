// Package physics defines the rigid-body capability the simulation runs
// against. The core only sees this interface and numeric body handles; the
// Chipmunk-backed implementation lives in chipmunk.go.
package physics

// Vec2 is a 2D vector in world coordinates (y grows upward).
type Vec2 struct {
	X float64
	Y float64
}

// Bounds is an axis-aligned rectangle in world coordinates.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent.
func (b Bounds) Height() float64 {
	return b.MaxY - b.MinY
}

// CenterX returns the horizontal midpoint.
func (b Bounds) CenterX() float64 {
	return (b.MinX + b.MaxX) / 2
}

// BodyID is an opaque handle to a body owned by a World.
// The zero value is never a valid handle.
type BodyID uint32

// Material holds surface response parameters for a shape.
type Material struct {
	Friction   float64
	Elasticity float64
}

// CircleDef describes a dynamic circular body.
type CircleDef struct {
	Radius         float64
	Mass           float64
	Friction       float64
	Elasticity     float64
	LinearDamping  float64 // fraction of velocity lost per second
	AllowsRotation bool
}

// World is the rigid-body engine as seen by the simulation core.
// Implementations own all integration state; the core only creates bodies,
// moves the permanent ones, and reads positions back.
type World interface {
	// SetGravity replaces the global gravity vector.
	SetGravity(g Vec2)

	// SetFrame rebuilds the containment edge loop around the given bounds,
	// replacing any previous frame.
	SetFrame(b Bounds)

	// CreateCircleBody adds a dynamic circle at pos and returns its handle.
	CreateCircleBody(pos Vec2, def CircleDef) BodyID

	// CreateBoxBody adds an immovable box centered at pos and returns its
	// handle. The box only moves through MoveBody.
	CreateBoxBody(pos Vec2, w, h float64, mat Material) BodyID

	// MoveBody teleports a body to pos. No-op for unknown handles.
	MoveBody(id BodyID, pos Vec2)

	// SetVelocity replaces a body's linear velocity. No-op for unknown
	// handles.
	SetVelocity(id BodyID, vel Vec2)

	// ResizeBox rebuilds a box body's shape at the new extent, keeping its
	// position and material. No-op for non-box or unknown handles.
	ResizeBox(id BodyID, w, h float64)

	// DestroyBody removes a body and its shapes. No-op for unknown handles.
	DestroyBody(id BodyID)

	// Position reports a body's position. ok is false for unknown handles.
	Position(id BodyID) (pos Vec2, ok bool)

	// Velocity reports a body's velocity. ok is false for unknown handles.
	Velocity(id BodyID) (vel Vec2, ok bool)

	// Step advances the simulation by dt seconds.
	Step(dt float64)
}
