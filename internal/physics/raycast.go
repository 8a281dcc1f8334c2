package physics

import (
	"math"

	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast returns the closest collider hit within maxDistance on a layer in
// layerMask. Colliders that contain the origin are skipped, so a body can
// probe from its own center.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32, layerMask uint32) (RaycastHit, bool) {
	if rl.Vector3LengthSqr(direction) == 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)
	closest := RaycastHit{Distance: maxDistance}
	hit := false

	for _, list := range [3][]*engine.GameObject{p.Objects, p.Kinematics, p.Statics} {
		for _, obj := range list {
			if !obj.Active || layerMask&(1<<(obj.Layer&31)) == 0 {
				continue
			}
			s, ok := shapeOf(obj)
			if !ok || s.contains(origin) {
				continue
			}

			var h RaycastHit
			if s.sphere != nil {
				h, ok = raycastSphere(origin, direction, s.sphere.GetCenter(), s.sphere.GetWorldRadius(), closest.Distance)
			} else {
				h, ok = raycastBox(origin, direction, boxOBB(s.box), closest.Distance)
			}
			if ok && h.Distance <= closest.Distance {
				h.GameObject = obj
				closest = h
				hit = true
			}
		}
	}

	return closest, hit
}

func raycastBox(origin, direction rl.Vector3, obb OBB, maxDistance float32) (RaycastHit, bool) {
	local := AABB{Min: rl.Vector3Negate(obb.HalfSize), Max: obb.HalfSize}
	t, n, ok := local.RayIntersect(obb.Local(origin), obb.LocalDirection(direction), maxDistance)
	if !ok {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Point:    rl.Vector3Add(origin, rl.Vector3Scale(direction, t)),
		Normal:   obb.WorldDirection(n),
		Distance: t,
	}, true
}

func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	oc := rl.Vector3Subtract(origin, center)
	b := rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := -b - float32(math.Sqrt(float64(discriminant)))
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
