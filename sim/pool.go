package sim

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/KIM3310/ecotide/physics"
)

// Droplet tuning constants. Droplets are light, slippery, and slightly
// bouncy so a pile of them reads as fluid.
const (
	MaxDroplets = 1000

	dropletRadiusMin  = 5.0
	dropletRadiusMax  = 8.0
	dropletMass       = 0.02
	dropletFriction   = 0.05
	dropletBounce     = 0.3
	dropletDamping    = 0.1
	pruneMargin       = 250.0
	seedDropletCount  = 300
	seedSpreadX       = 150.0
	seedMinAboveFloor = 20.0
	seedMaxAboveFloor = 150.0
)

// Droplet marks a meltwater particle and carries its creation order and
// visual radius.
type Droplet struct {
	Seq    uint64
	Radius float64
}

// BodyRef links a droplet entity to its physics body.
type BodyRef struct {
	ID physics.BodyID
}

// DropletView is a render-ready particle snapshot.
type DropletView struct {
	Pos    physics.Vec2
	Radius float64
}

// DropletState is the restorable form of one droplet: enough to recreate
// the body mid-flight.
type DropletState struct {
	Pos    physics.Vec2
	Vel    physics.Vec2
	Radius float64
}

// Pool owns droplet identity: it is the only creator and destroyer of
// droplet entities and their physics bodies. The cap is enforced here and
// nowhere else.
type Pool struct {
	world  ecs.World
	mapper *ecs.Map2[Droplet, BodyRef]
	filter *ecs.Filter2[Droplet, BodyRef]
	phys   physics.World
	rng    *rand.Rand

	count   int
	nextSeq uint64
}

// NewPool creates an empty pool backed by the given physics world.
func NewPool(phys physics.World, rng *rand.Rand) *Pool {
	p := &Pool{
		world: ecs.NewWorld(),
		phys:  phys,
		rng:   rng,
	}
	p.mapper = ecs.NewMap2[Droplet, BodyRef](&p.world)
	p.filter = ecs.NewFilter2[Droplet, BodyRef](&p.world)
	return p
}

// Count returns the number of live droplets.
func (p *Pool) Count() int {
	return p.count
}

// Spawn creates one droplet at pos. At the cap it does nothing and
// reports false; rejection is silent by design of the toy, so callers that
// care about it count the return value.
func (p *Pool) Spawn(pos physics.Vec2) bool {
	if p.count >= MaxDroplets {
		return false
	}

	radius := dropletRadiusMin + p.rng.Float64()*(dropletRadiusMax-dropletRadiusMin)
	id := p.phys.CreateCircleBody(pos, physics.CircleDef{
		Radius:         radius,
		Mass:           dropletMass,
		Friction:       dropletFriction,
		Elasticity:     dropletBounce,
		LinearDamping:  dropletDamping,
		AllowsRotation: true,
	})

	droplet := Droplet{Seq: p.nextSeq, Radius: radius}
	ref := BodyRef{ID: id}
	p.mapper.NewEntity(&droplet, &ref)

	p.nextSeq++
	p.count++
	return true
}

// SpawnState recreates a droplet from saved state, keeping its radius and
// velocity. The cap applies as in Spawn.
func (p *Pool) SpawnState(s DropletState) bool {
	if p.count >= MaxDroplets {
		return false
	}

	radius := s.Radius
	if radius < dropletRadiusMin || radius > dropletRadiusMax {
		radius = dropletRadiusMin
	}
	id := p.phys.CreateCircleBody(s.Pos, physics.CircleDef{
		Radius:         radius,
		Mass:           dropletMass,
		Friction:       dropletFriction,
		Elasticity:     dropletBounce,
		LinearDamping:  dropletDamping,
		AllowsRotation: true,
	})
	p.phys.SetVelocity(id, s.Vel)

	droplet := Droplet{Seq: p.nextSeq, Radius: radius}
	ref := BodyRef{ID: id}
	p.mapper.NewEntity(&droplet, &ref)

	p.nextSeq++
	p.count++
	return true
}

// SeedPuddle scatters the starting droplets across the bottom of the play
// area and returns how many were created.
func (p *Pool) SeedPuddle(b physics.Bounds) int {
	created := 0
	for i := 0; i < seedDropletCount; i++ {
		pos := physics.Vec2{
			X: b.CenterX() + (p.rng.Float64()*2-1)*seedSpreadX,
			Y: b.MinY + seedMinAboveFloor + p.rng.Float64()*(seedMaxAboveFloor-seedMinAboveFloor),
		}
		if p.Spawn(pos) {
			created++
		}
	}
	return created
}

// PruneOutOfBounds removes droplets that escaped the play area by more than
// the margin on the left, right, or bottom. There is deliberately no upper
// cutoff: droplets thrown above the frame come back down. Droplets whose
// body the engine no longer knows are removed as well.
func (p *Pool) PruneOutOfBounds(b physics.Bounds) int {
	type deadInfo struct {
		entity ecs.Entity
		body   physics.BodyID
	}
	var toRemove []deadInfo

	query := p.filter.Query()
	for query.Next() {
		entity := query.Entity()
		_, ref := query.Get()

		pos, ok := p.phys.Position(ref.ID)
		if !ok {
			toRemove = append(toRemove, deadInfo{entity: entity, body: 0})
			continue
		}
		if pos.X < b.MinX-pruneMargin || pos.X > b.MaxX+pruneMargin || pos.Y < b.MinY-pruneMargin {
			toRemove = append(toRemove, deadInfo{entity: entity, body: ref.ID})
		}
	}

	for _, dead := range toRemove {
		if dead.body != 0 {
			p.phys.DestroyBody(dead.body)
		}
		p.world.RemoveEntity(dead.entity)
		p.count--
	}

	return len(toRemove)
}

// Clear destroys every droplet and its body.
func (p *Pool) Clear() {
	type deadInfo struct {
		entity ecs.Entity
		body   physics.BodyID
	}
	var toRemove []deadInfo

	query := p.filter.Query()
	for query.Next() {
		entity := query.Entity()
		_, ref := query.Get()
		toRemove = append(toRemove, deadInfo{entity: entity, body: ref.ID})
	}

	for _, dead := range toRemove {
		p.phys.DestroyBody(dead.body)
		p.world.RemoveEntity(dead.entity)
	}
	p.count = 0
}

// Snapshot appends a view of every droplet to dst and returns it. Droplets
// whose body position is unknown are skipped; the next prune collects them.
func (p *Pool) Snapshot(dst []DropletView) []DropletView {
	query := p.filter.Query()
	for query.Next() {
		droplet, ref := query.Get()
		pos, ok := p.phys.Position(ref.ID)
		if !ok {
			continue
		}
		dst = append(dst, DropletView{Pos: pos, Radius: droplet.Radius})
	}
	return dst
}

// States appends the restorable state of every droplet to dst and returns
// it. Droplets with an unknown body are skipped.
func (p *Pool) States(dst []DropletState) []DropletState {
	query := p.filter.Query()
	for query.Next() {
		droplet, ref := query.Get()
		pos, ok := p.phys.Position(ref.ID)
		if !ok {
			continue
		}
		vel, _ := p.phys.Velocity(ref.ID)
		dst = append(dst, DropletState{Pos: pos, Vel: vel, Radius: droplet.Radius})
	}
	return dst
}

// Speeds appends every droplet's speed to dst and returns it.
func (p *Pool) Speeds(dst []float64) []float64 {
	query := p.filter.Query()
	for query.Next() {
		_, ref := query.Get()
		vel, ok := p.phys.Velocity(ref.ID)
		if !ok {
			continue
		}
		dst = append(dst, math.Hypot(vel.X, vel.Y))
	}
	return dst
}
