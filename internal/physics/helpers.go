package physics

import (
	"spherewalk/internal/components"
	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 0.0001

// shape is the narrow-phase view of a collider.
type shape struct {
	sphere *components.SphereCollider
	box    *components.BoxCollider
}

func shapeOf(g *engine.GameObject) (shape, bool) {
	if s := engine.GetComponent[*components.SphereCollider](g); s != nil {
		return shape{sphere: s}, true
	}
	if b := engine.GetComponent[*components.BoxCollider](g); b != nil {
		return shape{box: b}, true
	}
	return shape{}, false
}

func boxOBB(b *components.BoxCollider) OBB {
	return OBB{
		Center:   b.GetCenter(),
		HalfSize: rl.Vector3Scale(b.GetWorldSize(), 0.5),
		Axes:     b.GetGameObject().WorldAxes(),
	}
}

// contains reports whether point lies inside the collider.
func (s shape) contains(point rl.Vector3) bool {
	if s.sphere != nil {
		r := s.sphere.GetWorldRadius()
		return rl.Vector3DistanceSqr(point, s.sphere.GetCenter()) <= r*r
	}
	return boxOBB(s.box).Contains(point)
}

// removeApproach cancels the part of v moving into the surface along n and
// applies restitution and tangential friction. relative is the surface velocity.
func removeApproach(v, relative, n rl.Vector3, bounciness, friction float32) rl.Vector3 {
	rel := rl.Vector3Subtract(v, relative)
	vn := rl.Vector3DotProduct(rel, n)
	if vn >= 0 {
		return v
	}
	normal := rl.Vector3Scale(n, vn)
	tangent := rl.Vector3Subtract(rel, normal)
	rel = rl.Vector3Add(
		rl.Vector3Scale(tangent, 1-friction),
		rl.Vector3Scale(normal, -bounciness),
	)
	return rl.Vector3Add(rel, relative)
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
