package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// platformRider tracks the attachment point on a connected body so the
// agent inherits the body's motion, rotation included.
type platformRider struct {
	sampled BodyID
	world   rl.Vector3
	local   rl.Vector3
}

// follow returns the velocity of the attachment point since the previous
// sample and re-samples it at position. A body seen for the first time
// contributes nothing.
func (r *platformRider) follow(id, previous BodyID, pose Pose, position rl.Vector3, dt float32) rl.Vector3 {
	var velocity rl.Vector3
	if id == previous && id == r.sampled {
		moved := pose.TransformPoint(r.local)
		velocity = rl.Vector3Scale(rl.Vector3Subtract(moved, r.world), 1/dt)
	}
	r.sampled = id
	r.world = position
	r.local = pose.InverseTransformPoint(position)
	return velocity
}

// updateConnection computes this tick's connection velocity. Light dynamic
// bodies are ignored so the agent is not dragged by a pebble.
func (c *Controller) updateConnection(dt float32) {
	c.connectionVelocity = rl.Vector3{}
	id := c.contacts.connected
	if id == 0 {
		return
	}
	b, ok := c.body.Body(id)
	if !ok {
		return
	}
	if !b.Kinematic && b.Mass < c.body.Mass() {
		return
	}
	c.connectionVelocity = c.rider.follow(id, c.previousConnected, b.Pose, c.position, dt)
}
