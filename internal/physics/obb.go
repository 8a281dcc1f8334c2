package physics

import (
	"math"

	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, size, and euler rotation (degrees)
func NewOBB(center, size, rotation rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
		Axes:     engine.RotationAxes(rotation),
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2},
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	// Vector from A's center to B's center
	t := rl.Vector3Subtract(b.Center, a.Center)

	// We need to test 15 axes:
	// - 3 face normals from A
	// - 3 face normals from B
	// - 9 cross products of edges (A's edges x B's edges)

	// Test A's face normals
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}

	// Test B's face normals
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}

	// Test cross products of edges
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			// Skip near-zero axes (parallel edges)
			if rl.Vector3Length(axis) > 0.0001 {
				axis = rl.Vector3Normalize(axis)
				if !overlapOnAxis(a, b, axis, t) {
					return false
				}
			}
		}
	}

	return true
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	// Project the half-sizes of both boxes onto the axis
	aProjection := a.HalfSize.X*absf(rl.Vector3DotProduct(a.Axes[0], axis)) +
		a.HalfSize.Y*absf(rl.Vector3DotProduct(a.Axes[1], axis)) +
		a.HalfSize.Z*absf(rl.Vector3DotProduct(a.Axes[2], axis))

	bProjection := b.HalfSize.X*absf(rl.Vector3DotProduct(b.Axes[0], axis)) +
		b.HalfSize.Y*absf(rl.Vector3DotProduct(b.Axes[1], axis)) +
		b.HalfSize.Z*absf(rl.Vector3DotProduct(b.Axes[2], axis))

	// Project the distance between centers onto the axis
	distance := absf(rl.Vector3DotProduct(t, axis))

	// If the distance is greater than the sum of projections, there's a separating axis
	return distance <= aProjection+bProjection
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	if !a.IntersectsOBB(b) {
		return rl.Vector3Zero()
	}

	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv rl.Vector3

	// Test all 15 axes and find the one with minimum penetration
	testAxis := func(axis rl.Vector3) {
		if rl.Vector3Length(axis) < 0.0001 {
			return
		}
		axis = rl.Vector3Normalize(axis)

		aProj := a.HalfSize.X*absf(rl.Vector3DotProduct(a.Axes[0], axis)) +
			a.HalfSize.Y*absf(rl.Vector3DotProduct(a.Axes[1], axis)) +
			a.HalfSize.Z*absf(rl.Vector3DotProduct(a.Axes[2], axis))

		bProj := b.HalfSize.X*absf(rl.Vector3DotProduct(b.Axes[0], axis)) +
			b.HalfSize.Y*absf(rl.Vector3DotProduct(b.Axes[1], axis)) +
			b.HalfSize.Z*absf(rl.Vector3DotProduct(b.Axes[2], axis))

		dist := rl.Vector3DotProduct(t, axis)
		penetration := aProj + bProj - absf(dist)

		if penetration < minPenetration {
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}

	// Test A's face normals
	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}

	// Test B's face normals
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}

	// Test cross products of edges
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
		}
	}

	return mtv
}

// Contains reports whether point is inside or on the box.
func (o OBB) Contains(point rl.Vector3) bool {
	d := rl.Vector3Subtract(point, o.Center)
	return absf(rl.Vector3DotProduct(d, o.Axes[0])) <= o.HalfSize.X &&
		absf(rl.Vector3DotProduct(d, o.Axes[1])) <= o.HalfSize.Y &&
		absf(rl.Vector3DotProduct(d, o.Axes[2])) <= o.HalfSize.Z
}

// Local converts a world point into the box frame, relative to its center.
func (o OBB) Local(point rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(point, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// LocalDirection converts a world direction into the box frame.
func (o OBB) LocalDirection(dir rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: rl.Vector3DotProduct(dir, o.Axes[0]),
		Y: rl.Vector3DotProduct(dir, o.Axes[1]),
		Z: rl.Vector3DotProduct(dir, o.Axes[2]),
	}
}

// WorldDirection converts a box-frame direction into world space.
func (o OBB) WorldDirection(local rl.Vector3) rl.Vector3 {
	out := rl.Vector3Scale(o.Axes[0], local.X)
	out = rl.Vector3Add(out, rl.Vector3Scale(o.Axes[1], local.Y))
	return rl.Vector3Add(out, rl.Vector3Scale(o.Axes[2], local.Z))
}

// PenetrateSphere returns the direction to push a sphere out of the box and
// how far. A center inside the box is pushed out through the nearest face.
func (o OBB) PenetrateSphere(center rl.Vector3, radius float32) (rl.Vector3, float32, bool) {
	local := o.Local(center)
	closest := rl.Vector3{
		X: clampf(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
	diff := rl.Vector3Subtract(local, closest)
	distSq := rl.Vector3LengthSqr(diff)
	if distSq >= radius*radius {
		return rl.Vector3{}, 0, false
	}

	if distSq > epsilon*epsilon {
		dist := float32(math.Sqrt(float64(distSq)))
		normal := o.WorldDirection(rl.Vector3Scale(diff, 1/dist))
		return normal, radius - dist, true
	}

	// Center inside: leave through the face with the least depth
	depths := [3]float32{
		o.HalfSize.X - absf(local.X),
		o.HalfSize.Y - absf(local.Y),
		o.HalfSize.Z - absf(local.Z),
	}
	coords := [3]float32{local.X, local.Y, local.Z}
	best := 0
	for i := 1; i < 3; i++ {
		if depths[i] < depths[best] {
			best = i
		}
	}
	normal := o.Axes[best]
	if coords[best] < 0 {
		normal = rl.Vector3Negate(normal)
	}
	return normal, depths[best] + radius, true
}

// Bounds returns the world-space AABB enclosing the box.
func (o OBB) Bounds() AABB {
	var half rl.Vector3
	for i, h := range [3]float32{o.HalfSize.X, o.HalfSize.Y, o.HalfSize.Z} {
		half.X += absf(o.Axes[i].X) * h
		half.Y += absf(o.Axes[i].Y) * h
		half.Z += absf(o.Axes[i].Z) * h
	}
	return AABB{
		Min: rl.Vector3Subtract(o.Center, half),
		Max: rl.Vector3Add(o.Center, half),
	}
}
