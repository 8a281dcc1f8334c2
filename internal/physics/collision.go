package physics

import (
	"math"

	"spherewalk/internal/components"
	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// penetration returns the direction that pushes a out of b and the depth.
func penetration(a, b *engine.GameObject) (rl.Vector3, float32, bool) {
	sa, okA := shapeOf(a)
	sb, okB := shapeOf(b)
	if !okA || !okB {
		return rl.Vector3{}, 0, false
	}

	switch {
	case sa.sphere != nil && sb.sphere != nil:
		return sphereVsSphere(sa.sphere, sb.sphere)
	case sa.sphere != nil:
		obb := boxOBB(sb.box)
		center, radius := sa.sphere.GetCenter(), sa.sphere.GetWorldRadius()
		if !sphereBounds(center, radius).Intersects(obb.Bounds()) {
			return rl.Vector3{}, 0, false
		}
		return obb.PenetrateSphere(center, radius)
	case sb.sphere != nil:
		obb := boxOBB(sa.box)
		center, radius := sb.sphere.GetCenter(), sb.sphere.GetWorldRadius()
		if !sphereBounds(center, radius).Intersects(obb.Bounds()) {
			return rl.Vector3{}, 0, false
		}
		n, depth, ok := obb.PenetrateSphere(center, radius)
		return rl.Vector3Negate(n), depth, ok
	}

	// Box vs Box - use OBB for rotated collision
	obbA, obbB := boxOBB(sa.box), boxOBB(sb.box)
	if !obbA.Bounds().Intersects(obbB.Bounds()) {
		return rl.Vector3{}, 0, false
	}
	pushOut := obbA.ResolveOBB(obbB)
	depth := rl.Vector3Length(pushOut)
	if depth < epsilon {
		return rl.Vector3{}, 0, false
	}
	return rl.Vector3Scale(pushOut, 1/depth), depth, true
}

func sphereVsSphere(a, b *components.SphereCollider) (rl.Vector3, float32, bool) {
	diff := rl.Vector3Subtract(a.GetCenter(), b.GetCenter())
	distSq := rl.Vector3LengthSqr(diff)
	minDist := a.GetWorldRadius() + b.GetWorldRadius()
	if distSq >= minDist*minDist {
		return rl.Vector3{}, 0, false
	}
	dist := float32(math.Sqrt(float64(distSq)))
	if dist < epsilon {
		return rl.Vector3{X: 0, Y: 1, Z: 0}, minDist, true
	}
	return rl.Vector3Scale(diff, 1/dist), minDist - dist, true
}

// resolveDynamicPair handles collision between two dynamic rigidbodies
func (p *PhysicsWorld) resolveDynamicPair(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	// Skip if both objects are sleeping
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	normal, depth, ok := penetration(a, b)
	if !ok {
		return
	}
	p.recordCollision(a, b, normal)

	// Split the push based on mass ratio
	totalMass := rbA.Mass + rbB.Mass
	ratioA := rbB.Mass / totalMass
	ratioB := rbA.Mass / totalMass

	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(normal, depth*ratioA))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(normal, depth*ratioB))

	// Relative velocity
	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, normal)

	// Only resolve if objects are moving toward each other
	if velAlongNormal > 0 {
		return
	}

	// Restitution (bounciness)
	e := (rbA.Bounciness + rbB.Bounciness) / 2

	// Impulse magnitude
	j := -(1 + e) * velAlongNormal
	j /= (1/rbA.Mass + 1/rbB.Mass)

	impulse := rl.Vector3Scale(normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))
}

// resolveAgainstSolid pushes a dynamic body out of a kinematic or static
// collider. The solid never moves; its velocity, if any, is what the
// dynamic body bounces against.
func (p *PhysicsWorld) resolveAgainstSolid(obj, solid *engine.GameObject) {
	if !obj.Active || !solid.Active {
		return
	}
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil {
		return
	}

	normal, depth, ok := penetration(obj, solid)
	if !ok {
		return
	}
	p.recordCollision(obj, solid, normal)

	var surfaceVel rl.Vector3
	if srb := engine.GetComponent[*components.Rigidbody](solid); srb != nil {
		surfaceVel = srb.Velocity
		if rb.IsSleeping && rl.Vector3LengthSqr(surfaceVel) > 0 {
			rb.Wake()
		}
	}

	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(normal, depth))
	rb.Velocity = removeApproach(rb.Velocity, surfaceVel, normal, rb.Bounciness, rb.Friction)
}
