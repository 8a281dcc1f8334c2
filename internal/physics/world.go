// Package physics is a small rigid-body world: dynamic bodies pulled by a
// gravity field, kinematic movers and static colliders, with contact
// callbacks and ray queries.
package physics

import (
	"log/slog"

	"spherewalk/internal/components"
	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 5.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(pos.X / CellSize),
		Y: int(pos.Y / CellSize),
		Z: int(pos.Z / CellSize),
	}
}

type PhysicsWorld struct {
	Field      *gravity.Field
	Objects    []*engine.GameObject // dynamic rigidbodies
	Kinematics []*engine.GameObject // kinematic rigidbodies (moving platforms)
	Statics    []*engine.GameObject // no rigidbody (walls, floor)
	grid       map[CellKey][]*engine.GameObject

	// Collision tracking for callbacks, normals point toward pair.A
	activeCollisions  map[CollisionPair][]rl.Vector3
	currentCollisions map[CollisionPair][]rl.Vector3

	log          *slog.Logger
	lastSleeping int
}

func NewPhysicsWorld(field *gravity.Field) *PhysicsWorld {
	return &PhysicsWorld{
		Field:             field,
		Objects:           make([]*engine.GameObject, 0),
		Kinematics:        make([]*engine.GameObject, 0),
		Statics:           make([]*engine.GameObject, 0),
		grid:              make(map[CellKey][]*engine.GameObject),
		activeCollisions:  make(map[CollisionPair][]rl.Vector3),
		currentCollisions: make(map[CollisionPair][]rl.Vector3),
		log:               logger.For("physics"),
	}
}

func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	if _, ok := shapeOf(g); !ok {
		p.log.Warn("object has no collider, ignored", "object", g.Name)
		return
	}
	rb := engine.GetComponent[*components.Rigidbody](g)
	switch {
	case rb == nil:
		p.Statics = append(p.Statics, g)
	case rb.IsKinematic:
		p.Kinematics = append(p.Kinematics, g)
	default:
		p.Objects = append(p.Objects, g)
	}
	p.log.Debug("body registered", "object", g.Name, "uid", g.UID)
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	p.Objects = removeFrom(p.Objects, g)
	p.Kinematics = removeFrom(p.Kinematics, g)
	p.Statics = removeFrom(p.Statics, g)
	for pair := range p.activeCollisions {
		if pair.A == g || pair.B == g {
			delete(p.activeCollisions, pair)
		}
	}
}

func removeFrom(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

// SleepingCount returns how many dynamic bodies are asleep.
func (p *PhysicsWorld) SleepingCount() int {
	n := 0
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && rb.IsSleeping {
			n++
		}
	}
	return n
}

// Update advances the world by one fixed step.
func (p *PhysicsWorld) Update(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	p.currentCollisions = make(map[CollisionPair][]rl.Vector3)

	// 1. Apply field gravity and integrate
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !obj.Active {
			continue
		}

		applyGravity := rb.GravityActive(deltaTime)
		if rb.IsSleeping {
			continue
		}
		if applyGravity && p.Field != nil {
			g := p.Field.Gravity(obj.WorldPosition())
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(g, deltaTime))
		}

		obj.Transform.Position = rl.Vector3Add(
			obj.Transform.Position,
			rl.Vector3Scale(rb.Velocity, deltaTime),
		)

		rb.TrySleep(deltaTime)
	}

	// 2. Dynamic vs dynamic, broad phase by spatial hashing
	p.rebuildGrid()
	checked := make(map[CollisionPair]bool)
	for _, obj := range p.Objects {
		for _, other := range p.getNeighborObjects(obj) {
			if obj == other {
				continue
			}
			key := makePair(obj, other)
			if checked[key] {
				continue
			}
			checked[key] = true
			p.resolveDynamicPair(obj, other)
		}
	}

	// 3. Kinematic vs dynamic (platforms carry and push)
	for _, kinematic := range p.Kinematics {
		for _, obj := range p.Objects {
			p.resolveAgainstSolid(obj, kinematic)
		}
	}

	// 4. Dynamic vs static
	for _, obj := range p.Objects {
		for _, static := range p.Statics {
			p.resolveAgainstSolid(obj, static)
		}
	}

	// 5. Dispatch collision callbacks
	p.dispatchCollisionCallbacks()

	if n := p.SleepingCount(); n != p.lastSleeping {
		p.log.Debug("sleep state changed", "sleeping", n, "dynamic", len(p.Objects))
		p.lastSleeping = n
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		if !obj.Active {
			continue
		}
		cell := posToCell(obj.WorldPosition())
		p.grid[cell] = append(p.grid[cell], obj)
	}
}

// getNeighborObjects returns all objects in same cell and 26 neighboring cells
func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.WorldPosition())
	var neighbors []*engine.GameObject

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := CellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, p.grid[key]...)
			}
		}
	}
	return neighbors
}
