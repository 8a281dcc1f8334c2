package locomotion

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/logger"
)

var ErrNilCollaborator = errors.New("locomotion: nil gravity field or physics body")

// State is a snapshot of the controller taken at the end of the most recent
// completed tick. Rendering reads it between ticks.
type State struct {
	Grounded           bool
	Climbing           bool
	OnSteep            bool
	JumpPhase          int
	Up                 rl.Vector3
	ContactNormal      rl.Vector3
	Velocity           rl.Vector3
	ConnectionVelocity rl.Vector3
	Connected          BodyID
}

// Controller is the locomotion state machine for one agent.
type Controller struct {
	field *gravity.Field
	body  Physics
	cfg   Config
	th    thresholds
	log   *slog.Logger

	// Latched between input samples and consumed by the next tick
	move            rl.Vector2
	desiredJump     bool
	desiresClimbing bool
	space           InputSpace

	upAxis      rl.Vector3
	rightAxis   rl.Vector3
	forwardAxis rl.Vector3

	position           rl.Vector3
	velocity           rl.Vector3
	connectionVelocity rl.Vector3
	contactNormal      rl.Vector3

	contacts          contactState
	previousConnected BodyID
	rider             platformRider

	stepsSinceLastGrounded int
	stepsSinceLastJump     int
	jumpPhase              int

	state State

	// Jumped fires after a jump impulse is applied.
	Jumped engine.EventWithArg[JumpKind]
	// Landed fires on the first grounded tick after being airborne.
	Landed engine.Event
}

// New builds a controller bound to a gravity field and a physics body.
// The field must have at least one source or a fallback up axis.
func New(field *gravity.Field, body Physics, cfg Config) (*Controller, error) {
	if field == nil || body == nil {
		return nil, ErrNilCollaborator
	}
	if err := field.Validate(); err != nil {
		return nil, fmt.Errorf("locomotion: %w", err)
	}
	c := &Controller{
		field: field,
		body:  body,
		log:   logger.For("locomotion"),
	}
	c.SetConfig(cfg)

	_, c.upAxis = field.GravityAndUp(body.Position(), rl.Vector3{})
	c.contactNormal = c.upAxis
	c.state.Up = c.upAxis
	c.state.ContactNormal = c.upAxis
	return c, nil
}

// SetConfig replaces the tuning. Values are clamped into range.
func (c *Controller) SetConfig(cfg Config) {
	c.cfg = cfg.Sanitize()
	c.th = newThresholds(c.cfg)
}

func (c *Controller) Config() Config {
	return c.cfg
}

// OnInput samples player intent. It may run at any rate; jump requests are
// latched until the next tick consumes them.
func (c *Controller) OnInput(_ float32, in Input) {
	c.move = clampMagnitude(in.Move, 1)
	c.desiredJump = c.desiredJump || in.Jump
	c.desiresClimbing = in.Climb
	c.space = in.Space
}

// OnFixedTick advances the controller by one physics step. Call it before
// the physics world integrates, after collision callbacks of the previous
// step were delivered through EvaluateCollision.
func (c *Controller) OnFixedTick(dt float32) {
	if dt <= 0 {
		return
	}

	c.position = c.body.Position()
	c.velocity = c.body.Velocity()
	if !isFinite(c.velocity) || !isFinite(c.position) {
		c.log.Warn("skipping tick with non-finite body state",
			"position", c.position, "velocity", c.velocity)
		c.contacts.reset()
		return
	}

	var g rl.Vector3
	g, c.upAxis = c.field.GravityAndUp(c.position, c.upAxis)
	c.updateInputAxes()

	c.updateState(dt)
	c.adjustVelocity(dt)

	if c.desiredJump {
		c.desiredJump = false
		c.jump(g)
	}

	c.applyForces(g, dt)
	c.body.SetVelocity(c.velocity)

	c.snapshot()
	c.clearState()
}

func (c *Controller) updateInputAxes() {
	right := rl.Vector3{X: 1}
	forward := rl.Vector3{Z: 1}
	if c.space != nil {
		right = c.space.Right()
		forward = c.space.Forward()
	}
	c.rightAxis = projectDirectionOnPlane(right, c.upAxis)
	c.forwardAxis = projectDirectionOnPlane(forward, c.upAxis)
}

func (c *Controller) updateState(dt float32) {
	c.stepsSinceLastGrounded++
	c.stepsSinceLastJump++

	wasGrounded := c.state.Grounded
	if c.resolveAttachment() {
		c.stepsSinceLastGrounded = 0
		if c.stepsSinceLastJump > 1 {
			c.jumpPhase = 0
		}
		if !wasGrounded {
			c.log.Debug("landed", "normal", c.contactNormal)
			c.Landed.Invoke()
		}
	}

	c.updateConnection(dt)
}

func (c *Controller) adjustVelocity(dt float32) {
	var acceleration, speed float32
	var xAxis, zAxis rl.Vector3
	if c.climbing() {
		acceleration = c.cfg.MaxClimbAcceleration
		speed = c.cfg.MaxClimbSpeed
		xAxis = rl.Vector3CrossProduct(c.contactNormal, c.upAxis)
		zAxis = c.upAxis
	} else {
		acceleration = c.cfg.MaxAirAcceleration
		speed = c.cfg.MaxSpeed
		if c.onGround() {
			acceleration = c.cfg.MaxAcceleration
			if c.desiresClimbing {
				speed = c.cfg.MaxClimbSpeed
			}
		}
		xAxis = c.rightAxis
		zAxis = c.forwardAxis
	}
	xAxis = projectDirectionOnPlane(xAxis, c.contactNormal)
	zAxis = projectDirectionOnPlane(zAxis, c.contactNormal)

	relative := rl.Vector3Subtract(c.velocity, c.connectionVelocity)
	currentX := rl.Vector3DotProduct(relative, xAxis)
	currentZ := rl.Vector3DotProduct(relative, zAxis)

	maxSpeedChange := acceleration * dt
	newX := moveTowards(currentX, c.move.X*speed, maxSpeedChange)
	newZ := moveTowards(currentZ, c.move.Y*speed, maxSpeedChange)

	c.velocity = rl.Vector3Add(c.velocity, rl.Vector3Add(
		rl.Vector3Scale(xAxis, newX-currentX),
		rl.Vector3Scale(zAxis, newZ-currentZ),
	))
}

// climbGrip scales the climb acceleration used to press into a wall.
const climbGrip = 0.9

func (c *Controller) applyForces(g rl.Vector3, dt float32) {
	switch {
	case c.climbing():
		c.velocity = rl.Vector3Subtract(c.velocity,
			rl.Vector3Scale(c.contactNormal, c.cfg.MaxClimbAcceleration*climbGrip*dt))
	case c.onGround() && rl.Vector3LengthSqr(c.velocity) < 0.01:
		// Resting on a slope: cancel the along-slope pull so the agent does not creep
		c.velocity = rl.Vector3Add(c.velocity,
			rl.Vector3Scale(c.contactNormal, rl.Vector3DotProduct(g, c.contactNormal)*dt))
	case c.desiresClimbing && c.onGround():
		pull := rl.Vector3Subtract(g, rl.Vector3Scale(c.contactNormal, c.cfg.MaxClimbAcceleration*climbGrip))
		c.velocity = rl.Vector3Add(c.velocity, rl.Vector3Scale(pull, dt))
	default:
		c.velocity = rl.Vector3Add(c.velocity, rl.Vector3Scale(g, dt))
	}
}

func (c *Controller) snapshot() {
	c.state = State{
		Grounded:           c.onGround(),
		Climbing:           c.climbing(),
		OnSteep:            c.onSteep(),
		JumpPhase:          c.jumpPhase,
		Up:                 c.upAxis,
		ContactNormal:      c.contactNormal,
		Velocity:           c.velocity,
		ConnectionVelocity: c.connectionVelocity,
		Connected:          c.contacts.connected,
	}
}

func (c *Controller) clearState() {
	c.previousConnected = c.contacts.connected
	c.contacts.reset()
	c.contactNormal = rl.Vector3{}
	c.connectionVelocity = rl.Vector3{}
}

func (c *Controller) onGround() bool { return c.contacts.groundCount > 0 }
func (c *Controller) onSteep() bool  { return c.contacts.steepCount > 0 }

func (c *Controller) climbing() bool {
	return c.contacts.climbCount > 0 && c.stepsSinceLastJump > 2
}

// Grounded reports whether the agent was on the ground at the end of the
// last tick.
func (c *Controller) Grounded() bool { return c.state.Grounded }

// Climbing reports whether the agent was climbing at the end of the last tick.
func (c *Controller) Climbing() bool { return c.state.Climbing }

func (c *Controller) OnSteep() bool  { return c.state.OnSteep }
func (c *Controller) JumpPhase() int { return c.state.JumpPhase }

// Up is the local up axis used by the last tick.
func (c *Controller) Up() rl.Vector3 { return c.state.Up }

func (c *Controller) State() State { return c.state }
