package components

import (
	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

// Float-to-sleep: gravity stops after FloatDelay seconds below FloatSpeedSqr
const (
	FloatSpeedSqr = 0.0001
	FloatDelay    = 1.0
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity    rl.Vector3
	Mass        float32
	Bounciness  float32 // 0 = no bounce, 1 = perfect bounce
	Friction    float32 // 0 = ice, 1 = stops immediately
	UseGravity  bool    // sample the world gravity field every step
	IsKinematic bool    // moves by script, never pushed by physics

	// FloatToSleep stops applying gravity to a body that has been still for
	// a while, so it hovers wherever it came to rest.
	FloatToSleep bool

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	CanSleep   bool // whether this object can sleep (default true)
	sleepTimer float32
	floatTimer float32
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:       1.0,
		Bounciness: 0.5,
		Friction:   0.1,
		UseGravity: true,
		CanSleep:   true,
	}
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
	r.floatTimer = 0
}

// GravityActive reports whether gravity should be applied this step and
// advances the float-to-sleep timer.
func (r *Rigidbody) GravityActive(deltaTime float32) bool {
	if !r.UseGravity {
		return false
	}
	if !r.FloatToSleep {
		return true
	}
	if r.IsSleeping {
		r.floatTimer = 0
		return false
	}
	if rl.Vector3LengthSqr(r.Velocity) < FloatSpeedSqr {
		r.floatTimer += deltaTime
		return r.floatTimer < FloatDelay
	}
	r.floatTimer = 0
	return true
}

// Floating reports whether the body is hovering with gravity suspended.
func (r *Rigidbody) Floating() bool {
	return r.FloatToSleep && r.floatTimer >= FloatDelay
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	if rl.Vector3Length(r.Velocity) < SleepVelocityThreshold {
		r.sleepTimer += deltaTime

		// Extra damping when nearly at rest to reduce jitter
		r.Velocity = rl.Vector3Scale(r.Velocity, 0.9)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
