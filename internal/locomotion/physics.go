// Package locomotion drives a sphere agent across arbitrary geometry under a
// position-dependent gravity field: running, multi-stage jumps, climbing and
// riding moving platforms. Rigid-body integration, collision detection and
// ray queries are supplied by the caller through the Physics interface.
package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// BodyID identifies a rigid body in the physics collaborator. Zero means
// "no body", which is what static geometry reports.
type BodyID uint64

// Layer is a physics layer index in [0, 31].
type Layer uint8

// Pose is a body's world transform as an origin and orthonormal axes.
type Pose struct {
	Position rl.Vector3
	Axes     [3]rl.Vector3
}

// IdentityPose returns a pose at position with world-aligned axes.
func IdentityPose(position rl.Vector3) Pose {
	return Pose{
		Position: position,
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// TransformPoint maps a point from the pose's local space into world space.
func (p Pose) TransformPoint(local rl.Vector3) rl.Vector3 {
	out := p.Position
	out = rl.Vector3Add(out, rl.Vector3Scale(p.Axes[0], local.X))
	out = rl.Vector3Add(out, rl.Vector3Scale(p.Axes[1], local.Y))
	out = rl.Vector3Add(out, rl.Vector3Scale(p.Axes[2], local.Z))
	return out
}

// InverseTransformPoint maps a world-space point into the pose's local space.
func (p Pose) InverseTransformPoint(world rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(world, p.Position)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, p.Axes[0]),
		Y: rl.Vector3DotProduct(d, p.Axes[1]),
		Z: rl.Vector3DotProduct(d, p.Axes[2]),
	}
}

// Body is what the controller needs to know about a connected rigid body.
type Body struct {
	Mass      float32
	Kinematic bool
	Pose      Pose
}

// RayHit is the closest surface found by a ray probe.
type RayHit struct {
	Normal   rl.Vector3
	Distance float32
	Body     BodyID
	Layer    Layer
}

// Manifold is one collision between the agent and another collider in a
// single step. Normals point away from the other collider.
type Manifold struct {
	Body    BodyID
	Layer   Layer
	Normals []rl.Vector3
}

// Physics is the rigid-body collaborator driving the agent. All queries are
// read-only; SetVelocity is the only write and happens once per tick.
type Physics interface {
	Position() rl.Vector3
	Velocity() rl.Vector3
	SetVelocity(v rl.Vector3)
	Mass() float32

	// Body reports the mass, kinematic flag and world pose of a body.
	// It is called at most once per tick per body.
	Body(id BodyID) (Body, bool)

	Raycast(origin, direction rl.Vector3, maxDistance float32, mask LayerMask) (RayHit, bool)
}

// InputSpace supplies a reference orientation, usually the camera, for
// player-relative movement.
type InputSpace interface {
	Right() rl.Vector3
	Forward() rl.Vector3
}

// Input is one sample of player intent.
type Input struct {
	Move  rl.Vector2 // x = right, y = forward; clamped to unit length
	Jump  bool       // edge: true on the frame the button went down
	Climb bool       // level: true while held
	Space InputSpace // nil uses world axes
}
