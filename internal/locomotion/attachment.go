package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// resolveAttachment decides whether the agent counts as grounded this tick
// and which normal it moves along. Sources are tried in priority order and
// the first that applies wins.
func (c *Controller) resolveAttachment() bool {
	switch {
	case c.checkClimbing():
		return true
	case c.contacts.groundCount > 0:
		c.contactNormal = c.contacts.groundNormal
		if c.contacts.groundCount > 1 {
			c.contactNormal = rl.Vector3Normalize(c.contactNormal)
		}
		return true
	case c.snapToGround():
		return true
	case c.checkSteepContacts():
		return true
	}
	c.contactNormal = c.upAxis
	return false
}

func (c *Controller) checkClimbing() bool {
	if !c.climbing() {
		return false
	}
	normal := c.contacts.climbNormal
	if c.contacts.climbCount > 1 {
		normal = rl.Vector3Normalize(normal)
		// A merged normal that reads as ground means two facing walls; grab one
		if rl.Vector3DotProduct(c.upAxis, normal) >= c.th.minGroundDot {
			normal = c.contacts.lastClimbNormal
		}
	}
	c.contacts.groundCount = 1
	c.contactNormal = normal
	return true
}

// snapToGround keeps an agent that just left the ground glued to it when a
// surface is close below.
func (c *Controller) snapToGround() bool {
	if c.stepsSinceLastGrounded > 1 || c.stepsSinceLastJump <= 2 {
		return false
	}
	speed := rl.Vector3Length(c.velocity)
	if speed > c.cfg.MaxSnapSpeed {
		return false
	}

	down := rl.Vector3Negate(c.upAxis)
	hit, ok := c.body.Raycast(c.position, down, c.cfg.ProbeDistance, c.cfg.ProbeMask)
	if !ok {
		return false
	}
	if rl.Vector3DotProduct(c.upAxis, hit.Normal) < c.th.minDot(hit.Layer) {
		return false
	}

	c.contacts.groundCount = 1
	c.contactNormal = hit.Normal

	// Only redirect velocity that leaves the surface; velocity into it is left alone
	if dot := rl.Vector3DotProduct(c.velocity, hit.Normal); dot > 0 {
		along := rl.Vector3Subtract(c.velocity, rl.Vector3Scale(hit.Normal, dot))
		c.velocity = rl.Vector3Scale(rl.Vector3Normalize(along), speed)
	}

	c.contacts.connected = hit.Body
	return true
}

// checkSteepContacts turns an agent wedged between several steep surfaces
// into a grounded one when the walls average out to a walkable slope.
func (c *Controller) checkSteepContacts() bool {
	if c.contacts.steepCount < 2 {
		return false
	}
	c.contacts.steepNormal = rl.Vector3Normalize(c.contacts.steepNormal)
	if rl.Vector3DotProduct(c.upAxis, c.contacts.steepNormal) < c.th.minGroundDot {
		return false
	}
	c.contacts.groundCount = 1
	c.contactNormal = c.contacts.steepNormal
	return true
}
