package sim

import "github.com/KIM3310/ecotide/physics"

// fakeWorld implements physics.World by recording driver calls, so tests
// can assert on what the engine asked for without a real backend.
type fakeWorld struct {
	gravity   physics.Vec2
	frame     physics.Bounds
	frameSets int

	nextID     physics.BodyID
	positions  map[physics.BodyID]physics.Vec2
	velocities map[physics.BodyID]physics.Vec2
	boxSizes   map[physics.BodyID][2]float64
	circleDefs map[physics.BodyID]physics.CircleDef
	destroyed  int
	steps      int
}

var _ physics.World = (*fakeWorld)(nil)

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		positions:  make(map[physics.BodyID]physics.Vec2),
		velocities: make(map[physics.BodyID]physics.Vec2),
		boxSizes:   make(map[physics.BodyID][2]float64),
		circleDefs: make(map[physics.BodyID]physics.CircleDef),
	}
}

func (w *fakeWorld) SetGravity(g physics.Vec2) { w.gravity = g }

func (w *fakeWorld) SetFrame(b physics.Bounds) {
	w.frame = b
	w.frameSets++
}

func (w *fakeWorld) CreateCircleBody(pos physics.Vec2, def physics.CircleDef) physics.BodyID {
	w.nextID++
	w.positions[w.nextID] = pos
	w.velocities[w.nextID] = physics.Vec2{}
	w.circleDefs[w.nextID] = def
	return w.nextID
}

func (w *fakeWorld) CreateBoxBody(pos physics.Vec2, width, height float64, _ physics.Material) physics.BodyID {
	w.nextID++
	w.positions[w.nextID] = pos
	w.velocities[w.nextID] = physics.Vec2{}
	w.boxSizes[w.nextID] = [2]float64{width, height}
	return w.nextID
}

func (w *fakeWorld) MoveBody(id physics.BodyID, pos physics.Vec2) {
	if _, ok := w.positions[id]; ok {
		w.positions[id] = pos
	}
}

func (w *fakeWorld) SetVelocity(id physics.BodyID, vel physics.Vec2) {
	if _, ok := w.velocities[id]; ok {
		w.velocities[id] = vel
	}
}

func (w *fakeWorld) ResizeBox(id physics.BodyID, width, height float64) {
	if _, ok := w.boxSizes[id]; ok {
		w.boxSizes[id] = [2]float64{width, height}
	}
}

func (w *fakeWorld) DestroyBody(id physics.BodyID) {
	if _, ok := w.positions[id]; !ok {
		return
	}
	delete(w.positions, id)
	delete(w.velocities, id)
	delete(w.boxSizes, id)
	delete(w.circleDefs, id)
	w.destroyed++
}

func (w *fakeWorld) Position(id physics.BodyID) (physics.Vec2, bool) {
	pos, ok := w.positions[id]
	return pos, ok
}

func (w *fakeWorld) Velocity(id physics.BodyID) (physics.Vec2, bool) {
	vel, ok := w.velocities[id]
	return vel, ok
}

func (w *fakeWorld) Step(float64) { w.steps++ }

// circleCount counts live circle bodies, which in practice means droplets.
func (w *fakeWorld) circleCount() int { return len(w.circleDefs) }

// teleport moves a body without any checks, for prune tests.
func (w *fakeWorld) teleport(id physics.BodyID, pos physics.Vec2) {
	w.positions[id] = pos
}

// forget drops a body without going through DestroyBody, simulating a body
// the backend no longer knows about.
func (w *fakeWorld) forget(id physics.BodyID) {
	delete(w.positions, id)
	delete(w.velocities, id)
	delete(w.circleDefs, id)
}

func testBounds() physics.Bounds {
	return physics.Bounds{MinX: 0, MinY: 0, MaxX: 960, MaxY: 700}
}
