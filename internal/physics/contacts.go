package physics

import (
	"cmp"
	"slices"

	"spherewalk/internal/components"
	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionPair represents two objects that are colliding
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (smaller UID first)
func makePair(a, b *engine.GameObject) CollisionPair {
	if a.UID > b.UID {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

// recordCollision marks a collision pair as active this step. normal pushes
// a out of b. Sleeping bodies wake when the impact is significant.
func (p *PhysicsWorld) recordCollision(a, b *engine.GameObject, normal rl.Vector3) {
	pair := makePair(a, b)
	if pair.A != a {
		normal = rl.Vector3Negate(normal)
	}
	p.currentCollisions[pair] = append(p.currentCollisions[pair], normal)

	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	// Only wake if relative velocity is significant (> 2x sleep threshold)
	relSpeed := rl.Vector3Length(rl.Vector3Subtract(rbA.Velocity, rbB.Velocity))
	if relSpeed > components.SleepVelocityThreshold*2 {
		if rbA.IsSleeping {
			rbA.Wake()
		}
		if rbB.IsSleeping {
			rbB.Wake()
		}
	}
}

func sortedPairs(m map[CollisionPair][]rl.Vector3) []CollisionPair {
	pairs := make([]CollisionPair, 0, len(m))
	for pair := range m {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(x, y CollisionPair) int {
		if c := cmp.Compare(x.A.UID, y.A.UID); c != 0 {
			return c
		}
		return cmp.Compare(x.B.UID, y.B.UID)
	})
	return pairs
}

// dispatchCollisionCallbacks sends enter, stay and exit notifications in a
// stable order.
func (p *PhysicsWorld) dispatchCollisionCallbacks() {
	for _, pair := range sortedPairs(p.currentCollisions) {
		normals := p.currentCollisions[pair]
		flipped := make([]rl.Vector3, len(normals))
		for i, n := range normals {
			flipped[i] = rl.Vector3Negate(n)
		}

		if _, was := p.activeCollisions[pair]; !was {
			notify(pair.A, func(h engine.CollisionHandler) {
				h.OnCollisionEnter(engine.Collision{Other: pair.B, Normals: normals})
			})
			notify(pair.B, func(h engine.CollisionHandler) {
				h.OnCollisionEnter(engine.Collision{Other: pair.A, Normals: flipped})
			})
			continue
		}
		notify(pair.A, func(h engine.CollisionHandler) {
			h.OnCollisionStay(engine.Collision{Other: pair.B, Normals: normals})
		})
		notify(pair.B, func(h engine.CollisionHandler) {
			h.OnCollisionStay(engine.Collision{Other: pair.A, Normals: flipped})
		})
	}

	for _, pair := range sortedPairs(p.activeCollisions) {
		if _, still := p.currentCollisions[pair]; still {
			continue
		}
		notify(pair.A, func(h engine.CollisionHandler) { h.OnCollisionExit(pair.B) })
		notify(pair.B, func(h engine.CollisionHandler) { h.OnCollisionExit(pair.A) })
	}

	// Swap buffers
	p.activeCollisions = p.currentCollisions
}

// notify calls fn on every collision handler attached to obj
func notify(obj *engine.GameObject, fn func(engine.CollisionHandler)) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			fn(handler)
		}
	}
}
