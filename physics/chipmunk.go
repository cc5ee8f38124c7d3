package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// bodyKind distinguishes registry entries for handle-specific operations.
type bodyKind int

const (
	kindCircle bodyKind = iota
	kindBox
)

type bodyEntry struct {
	body *cp.Body
	kind bodyKind
	mat  Material // kept for box shape rebuilds
}

// ChipmunkWorld implements World on top of a Chipmunk2D space.
// Handles map to bodies through an internal registry, so reads on a
// destroyed handle report absence instead of faulting.
type ChipmunkWorld struct {
	space    *cp.Space
	bodies   map[BodyID]*bodyEntry
	nextID   BodyID
	frame    []*cp.Shape
	frameMat Material
}

// NewChipmunkWorld creates a space with the containment frame around bounds.
// frameMat sets the frame's surface response; gravity starts at zero until
// the caller sets it.
func NewChipmunkWorld(bounds Bounds, frameMat Material) *ChipmunkWorld {
	w := &ChipmunkWorld{
		space:    cp.NewSpace(),
		bodies:   make(map[BodyID]*bodyEntry),
		nextID:   1,
		frameMat: frameMat,
	}
	w.SetFrame(bounds)
	return w
}

// SetGravity replaces the global gravity vector.
func (w *ChipmunkWorld) SetGravity(g Vec2) {
	w.space.SetGravity(cp.Vector{X: g.X, Y: g.Y})
}

// SetFrame rebuilds the four edge segments around bounds.
func (w *ChipmunkWorld) SetFrame(b Bounds) {
	for _, s := range w.frame {
		w.space.RemoveShape(s)
	}
	w.frame = w.frame[:0]

	corners := []cp.Vector{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
	for i := range corners {
		a := corners[i]
		c := corners[(i+1)%len(corners)]
		seg := w.space.AddShape(cp.NewSegment(w.space.StaticBody, a, c, 1))
		seg.SetFriction(w.frameMat.Friction)
		seg.SetElasticity(w.frameMat.Elasticity)
		w.frame = append(w.frame, seg)
	}
}

// CreateCircleBody adds a dynamic circle body at pos.
func (w *ChipmunkWorld) CreateCircleBody(pos Vec2, def CircleDef) BodyID {
	moment := cp.MomentForCircle(def.Mass, 0, def.Radius, cp.Vector{})
	if !def.AllowsRotation {
		moment = cp.INFINITY
	}

	body := w.space.AddBody(cp.NewBody(def.Mass, moment))
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	// Chipmunk damping is the velocity fraction retained per second, applied
	// space-wide. A per-body velocity override converts the per-second loss
	// fraction into the per-step factor the integrator expects.
	if def.LinearDamping > 0 {
		retained := 1.0 - def.LinearDamping
		if retained < 0 {
			retained = 0
		}
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, _ float64, dt float64) {
			b.UpdateVelocity(gravity, math.Pow(retained, dt), dt)
		})
	}

	shape := w.space.AddShape(cp.NewCircle(body, def.Radius, cp.Vector{}))
	shape.SetFriction(def.Friction)
	shape.SetElasticity(def.Elasticity)

	return w.register(&bodyEntry{body: body, kind: kindCircle})
}

// CreateBoxBody adds an immovable box centered at pos.
// Boxes are kinematic so they can be repositioned and resized while dynamic
// bodies rest on them.
func (w *ChipmunkWorld) CreateBoxBody(pos Vec2, width, height float64, mat Material) BodyID {
	body := w.space.AddBody(cp.NewKinematicBody())
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := w.space.AddShape(cp.NewBox(body, width, height, 0))
	shape.SetFriction(mat.Friction)
	shape.SetElasticity(mat.Elasticity)

	return w.register(&bodyEntry{body: body, kind: kindBox, mat: mat})
}

func (w *ChipmunkWorld) register(e *bodyEntry) BodyID {
	id := w.nextID
	w.nextID++
	w.bodies[id] = e
	return id
}

// MoveBody teleports a body to pos.
func (w *ChipmunkWorld) MoveBody(id BodyID, pos Vec2) {
	e, ok := w.bodies[id]
	if !ok {
		return
	}
	e.body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
}

// SetVelocity replaces a body's linear velocity.
func (w *ChipmunkWorld) SetVelocity(id BodyID, vel Vec2) {
	e, ok := w.bodies[id]
	if !ok {
		return
	}
	e.body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
}

// ResizeBox replaces a box body's shape with one at the new extent.
func (w *ChipmunkWorld) ResizeBox(id BodyID, width, height float64) {
	e, ok := w.bodies[id]
	if !ok || e.kind != kindBox {
		return
	}

	var old []*cp.Shape
	e.body.EachShape(func(s *cp.Shape) {
		old = append(old, s)
	})
	for _, s := range old {
		w.space.RemoveShape(s)
	}

	shape := w.space.AddShape(cp.NewBox(e.body, width, height, 0))
	shape.SetFriction(e.mat.Friction)
	shape.SetElasticity(e.mat.Elasticity)
}

// DestroyBody removes a body and all its shapes.
func (w *ChipmunkWorld) DestroyBody(id BodyID) {
	e, ok := w.bodies[id]
	if !ok {
		return
	}

	var shapes []*cp.Shape
	e.body.EachShape(func(s *cp.Shape) {
		shapes = append(shapes, s)
	})
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(e.body)

	delete(w.bodies, id)
}

// Position reports a body's position.
func (w *ChipmunkWorld) Position(id BodyID) (Vec2, bool) {
	e, ok := w.bodies[id]
	if !ok {
		return Vec2{}, false
	}
	p := e.body.Position()
	return Vec2{X: p.X, Y: p.Y}, true
}

// Velocity reports a body's velocity.
func (w *ChipmunkWorld) Velocity(id BodyID) (Vec2, bool) {
	e, ok := w.bodies[id]
	if !ok {
		return Vec2{}, false
	}
	v := e.body.Velocity()
	return Vec2{X: v.X, Y: v.Y}, true
}

// Step advances the space by dt seconds.
func (w *ChipmunkWorld) Step(dt float64) {
	w.space.Step(dt)
}

// BodyCount returns the number of registered bodies.
func (w *ChipmunkWorld) BodyCount() int {
	return len(w.bodies)
}
