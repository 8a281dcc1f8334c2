package locomotion

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// JumpKind says which surface a jump was launched from.
type JumpKind int

const (
	JumpGround JumpKind = iota
	JumpSteep
	JumpAir
)

func (k JumpKind) String() string {
	switch k {
	case JumpGround:
		return "ground"
	case JumpSteep:
		return "steep"
	case JumpAir:
		return "air"
	}
	return "unknown"
}

// jumpSpeed is the launch speed reaching height under gravity of the given
// magnitude, less whatever speed already points along the jump.
func jumpSpeed(gravityMagnitude, height, alignedSpeed float32) float32 {
	speed := float32(math.Sqrt(float64(2 * gravityMagnitude * height)))
	if alignedSpeed > 0 {
		speed = max(speed-alignedSpeed, 0)
	}
	return speed
}

// jump applies a jump impulse if any jump source is available. It reports
// whether a jump happened.
func (c *Controller) jump(g rl.Vector3) bool {
	var direction rl.Vector3
	var kind JumpKind
	switch {
	case c.onGround():
		direction = c.contactNormal
		kind = JumpGround
	case c.onSteep():
		direction = c.contacts.steepNormal
		c.jumpPhase = 0
		kind = JumpSteep
	case c.cfg.MaxAirJumps > 0 && c.jumpPhase <= c.cfg.MaxAirJumps:
		// Walking off a ledge uses up the ground jump
		if c.jumpPhase == 0 {
			c.jumpPhase = 1
		}
		direction = c.contactNormal
		kind = JumpAir
	default:
		return false
	}

	c.stepsSinceLastJump = 0
	c.jumpPhase++

	direction = rl.Vector3Normalize(rl.Vector3Add(direction, c.upAxis))
	aligned := rl.Vector3DotProduct(c.velocity, direction)
	speed := jumpSpeed(rl.Vector3Length(g), c.cfg.JumpHeight, aligned)
	c.velocity = rl.Vector3Add(c.velocity, rl.Vector3Scale(direction, speed))

	c.log.Debug("jump", "kind", kind.String(), "phase", c.jumpPhase, "speed", speed)
	c.Jumped.Invoke(kind)
	return true
}
