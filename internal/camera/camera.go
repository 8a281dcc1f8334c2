// Package camera provides a third-person camera that orbits a target and
// follows a changing up axis, so it stays usable on walls and planets.
package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type FollowCamera struct {
	Target    rl.Vector3
	Up        rl.Vector3
	Pitch     float32 // degrees, negative looks down
	Distance  float32
	LookSpeed float32 // degrees per pixel of mouse motion
	ZoomSpeed float32
	UpBlend   float32 // fraction of the remaining up change applied per second

	// forward is the horizontal look direction, kept perpendicular to Up
	forward rl.Vector3
}

const (
	minPitch    = -80
	maxPitch    = 60
	minDistance = 2
	maxDistance = 40
)

func New(target rl.Vector3) *FollowCamera {
	return &FollowCamera{
		Target:    target,
		Up:        rl.Vector3{X: 0, Y: 1, Z: 0},
		Pitch:     -25,
		Distance:  8,
		LookSpeed: 0.2,
		ZoomSpeed: 1,
		UpBlend:   5,
		forward:   rl.Vector3{X: 0, Y: 0, Z: -1},
	}
}

// Orbit turns the camera by a mouse delta in pixels.
func (c *FollowCamera) Orbit(dx, dy float32) {
	yaw := -dx * c.LookSpeed * rl.Deg2rad
	c.forward = rl.Vector3Normalize(rl.Vector3RotateByAxisAngle(c.forward, c.Up, yaw))

	c.Pitch -= dy * c.LookSpeed
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < minPitch {
		c.Pitch = minPitch
	}
}

// Zoom moves the camera closer for positive wheel values.
func (c *FollowCamera) Zoom(wheel float32) {
	c.Distance -= wheel * c.ZoomSpeed
	if c.Distance < minDistance {
		c.Distance = minDistance
	}
	if c.Distance > maxDistance {
		c.Distance = maxDistance
	}
}

// Follow moves the pivot to target and eases the camera's up toward up.
func (c *FollowCamera) Follow(target, up rl.Vector3, deltaTime float32) {
	c.Target = target
	if rl.Vector3LengthSqr(up) == 0 {
		return
	}
	t := c.UpBlend * deltaTime
	if t > 1 {
		t = 1
	}
	blended := rl.Vector3Lerp(c.Up, rl.Vector3Normalize(up), t)
	if rl.Vector3LengthSqr(blended) < 1e-6 {
		// Opposite axes: snap rather than pass through zero
		blended = up
	}
	c.Up = rl.Vector3Normalize(blended)
	c.realignForward()
}

// realignForward keeps forward perpendicular to Up with minimal rotation.
func (c *FollowCamera) realignForward() {
	f := rl.Vector3Subtract(c.forward, rl.Vector3Scale(c.Up, rl.Vector3DotProduct(c.forward, c.Up)))
	if rl.Vector3LengthSqr(f) < 1e-6 {
		// Looking straight along up: pick any perpendicular
		f = rl.Vector3CrossProduct(c.Up, rl.Vector3{X: 1, Y: 0, Z: 0})
		if rl.Vector3LengthSqr(f) < 1e-6 {
			f = rl.Vector3CrossProduct(c.Up, rl.Vector3{X: 0, Y: 0, Z: 1})
		}
	}
	c.forward = rl.Vector3Normalize(f)
}

// Forward is the horizontal look direction.
func (c *FollowCamera) Forward() rl.Vector3 {
	return c.forward
}

// Right is perpendicular to Forward and Up.
func (c *FollowCamera) Right() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3CrossProduct(c.forward, c.Up))
}

// Position is where the eye sits behind and above the target.
func (c *FollowCamera) Position() rl.Vector3 {
	p := float64(c.Pitch) * math.Pi / 180
	view := rl.Vector3Add(
		rl.Vector3Scale(c.forward, float32(math.Cos(p))),
		rl.Vector3Scale(c.Up, float32(math.Sin(p))),
	)
	return rl.Vector3Subtract(c.Target, rl.Vector3Scale(view, c.Distance))
}

func (c *FollowCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         c.Up,
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}
}
