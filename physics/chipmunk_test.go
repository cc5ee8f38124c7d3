package physics

import (
	"math"
	"testing"
)

func testBounds() Bounds {
	return Bounds{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 800}
}

func TestCircleBodyFallsUnderGravity(t *testing.T) {
	w := NewChipmunkWorld(testBounds(), Material{Friction: 0.5, Elasticity: 0.1})
	w.SetGravity(Vec2{X: 0, Y: -100})

	id := w.CreateCircleBody(Vec2{X: 500, Y: 400}, CircleDef{
		Radius: 6, Mass: 0.02, Friction: 0.05, Elasticity: 0.3, AllowsRotation: true,
	})

	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60.0)
	}

	pos, ok := w.Position(id)
	if !ok {
		t.Fatal("body handle lost after stepping")
	}
	if pos.Y >= 400 {
		t.Errorf("body did not fall: y = %v, want < 400", pos.Y)
	}
	if math.Abs(pos.X-500) > 0.001 {
		t.Errorf("body drifted horizontally: x = %v, want 500", pos.X)
	}
}

func TestFrameContainsFallingBody(t *testing.T) {
	b := testBounds()
	w := NewChipmunkWorld(b, Material{Friction: 0.5, Elasticity: 0.1})
	w.SetGravity(Vec2{X: 0, Y: -300})

	id := w.CreateCircleBody(Vec2{X: 500, Y: 600}, CircleDef{
		Radius: 6, Mass: 0.02, Friction: 0.05, Elasticity: 0.3, AllowsRotation: true,
	})

	// Long enough to fall, bounce, and settle on the bottom edge.
	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}

	pos, ok := w.Position(id)
	if !ok {
		t.Fatal("body handle lost after stepping")
	}
	if pos.Y < b.MinY || pos.Y > b.MaxY {
		t.Errorf("body escaped frame vertically: y = %v", pos.Y)
	}
	if pos.X < b.MinX || pos.X > b.MaxX {
		t.Errorf("body escaped frame horizontally: x = %v", pos.X)
	}

	vel, _ := w.Velocity(id)
	if math.Abs(vel.Y) > 20 {
		t.Errorf("body still moving fast after settling: vy = %v", vel.Y)
	}
}

func TestLinearDampingSlowsBody(t *testing.T) {
	w := NewChipmunkWorld(testBounds(), Material{Friction: 0.5, Elasticity: 0.1})
	w.SetGravity(Vec2{})

	damped := w.CreateCircleBody(Vec2{X: 200, Y: 400}, CircleDef{
		Radius: 6, Mass: 0.02, LinearDamping: 0.5, AllowsRotation: true,
	})
	free := w.CreateCircleBody(Vec2{X: 200, Y: 200}, CircleDef{
		Radius: 6, Mass: 0.02, AllowsRotation: true,
	})

	w.SetVelocity(damped, Vec2{X: 100})
	w.SetVelocity(free, Vec2{X: 100})

	// One second of steps; 50% loss per second should halve the speed.
	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	dv, _ := w.Velocity(damped)
	fv, _ := w.Velocity(free)

	if math.Abs(dv.X-50) > 1 {
		t.Errorf("damped speed = %v, want ~50", dv.X)
	}
	if math.Abs(fv.X-100) > 1 {
		t.Errorf("undamped speed = %v, want ~100", fv.X)
	}
}

func TestSetVelocityLaunchesBody(t *testing.T) {
	w := NewChipmunkWorld(testBounds(), Material{})
	w.SetGravity(Vec2{})

	id := w.CreateCircleBody(Vec2{X: 500, Y: 400}, CircleDef{Radius: 6, Mass: 0.02})
	w.SetVelocity(id, Vec2{X: 60, Y: -30})

	vel, ok := w.Velocity(id)
	if !ok {
		t.Fatal("body handle lost after SetVelocity")
	}
	if math.Abs(vel.X-60) > 0.001 || math.Abs(vel.Y+30) > 0.001 {
		t.Errorf("velocity = %v, want (60, -30)", vel)
	}

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}
	pos, _ := w.Position(id)
	if pos.X <= 500 {
		t.Errorf("body did not move with its set velocity: x = %v", pos.X)
	}

	// Unknown handles are ignored.
	w.SetVelocity(BodyID(9999), Vec2{X: 1})
}

func TestDestroyBodyReleasesHandle(t *testing.T) {
	w := NewChipmunkWorld(testBounds(), Material{})

	id := w.CreateCircleBody(Vec2{X: 100, Y: 100}, CircleDef{Radius: 5, Mass: 0.02})
	if w.BodyCount() != 1 {
		t.Fatalf("body count = %d, want 1", w.BodyCount())
	}

	w.DestroyBody(id)

	if _, ok := w.Position(id); ok {
		t.Error("destroyed handle still reports a position")
	}
	if _, ok := w.Velocity(id); ok {
		t.Error("destroyed handle still reports a velocity")
	}
	if w.BodyCount() != 0 {
		t.Errorf("body count = %d, want 0", w.BodyCount())
	}

	// Destroying again must be a no-op.
	w.DestroyBody(id)
	w.Step(1.0 / 60.0)
}

func TestBoxBodyMoveAndResize(t *testing.T) {
	w := NewChipmunkWorld(testBounds(), Material{})

	id := w.CreateBoxBody(Vec2{X: 500, Y: 300}, 320, 90, Material{Friction: 0.2})

	w.MoveBody(id, Vec2{X: 400, Y: 250})
	pos, ok := w.Position(id)
	if !ok {
		t.Fatal("box handle lost after move")
	}
	if math.Abs(pos.X-400) > 0.001 || math.Abs(pos.Y-250) > 0.001 {
		t.Errorf("box position = %v, want (400, 250)", pos)
	}

	// Resizing keeps the position and the handle.
	w.ResizeBox(id, 160, 45)
	pos, ok = w.Position(id)
	if !ok {
		t.Fatal("box handle lost after resize")
	}
	if math.Abs(pos.X-400) > 0.001 || math.Abs(pos.Y-250) > 0.001 {
		t.Errorf("box moved during resize: %v", pos)
	}

	// Resize on a circle handle is a no-op.
	circle := w.CreateCircleBody(Vec2{X: 100, Y: 100}, CircleDef{Radius: 5, Mass: 0.02})
	w.ResizeBox(circle, 10, 10)
}

func TestResizedBoxStillCollides(t *testing.T) {
	w := NewChipmunkWorld(testBounds(), Material{Friction: 0.5, Elasticity: 0.1})
	w.SetGravity(Vec2{X: 0, Y: -300})

	box := w.CreateBoxBody(Vec2{X: 500, Y: 300}, 320, 90, Material{Friction: 0.2})
	w.ResizeBox(box, 320, 45)

	ball := w.CreateCircleBody(Vec2{X: 500, Y: 500}, CircleDef{
		Radius: 6, Mass: 0.02, Friction: 0.05, Elasticity: 0.1, AllowsRotation: true,
	})

	for i := 0; i < 600; i++ {
		w.Step(1.0 / 60.0)
	}

	// Box top after resize is at y = 300 + 45/2; the ball should rest on
	// it rather than fall through to the frame bottom.
	pos, _ := w.Position(ball)
	if pos.Y < 310 {
		t.Errorf("ball fell through resized box: y = %v", pos.Y)
	}
}
