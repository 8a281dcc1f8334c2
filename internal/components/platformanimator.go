package components

import (
	"math"

	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlatformAnimator moves a kinematic object along a scripted path: a
// back-and-forth slide, a horizontal orbit, a spin about its local up, or
// any mix of the three. It runs on the fixed step and writes the resulting
// velocity into the object's Rigidbody so contacts see a moving surface.
type PlatformAnimator struct {
	engine.BaseComponent
	StartPosition rl.Vector3
	StartRotation rl.Vector3

	Travel       rl.Vector3 // slide offset at the far end of the path
	TravelTime   float32    // seconds for one leg of the slide
	OrbitRadius  float32
	OrbitSpeed   float32 // radians per second
	Phase        float32
	SpinSpeed    float32 // degrees per second about the local Y axis
	Smooth       bool    // ease in and out at the ends of the slide
	time         float32
	rb           *Rigidbody
	hasStartPose bool
}

func NewPlatformAnimator() *PlatformAnimator {
	return &PlatformAnimator{TravelTime: 1}
}

func (p *PlatformAnimator) Start() {
	g := p.GetGameObject()
	if g == nil {
		return
	}
	if !p.hasStartPose {
		p.StartPosition = g.Transform.Position
		p.StartRotation = g.Transform.Rotation
		p.hasStartPose = true
	}
	p.rb = engine.GetComponent[*Rigidbody](g)
}

// OffsetAt returns the raw path offset at time t. The object sits at
// StartPosition + OffsetAt(t) - OffsetAt(0), so the authored position is
// where the path begins.
func (p *PlatformAnimator) OffsetAt(t float32) rl.Vector3 {
	var offset rl.Vector3

	if p.TravelTime > 0 && rl.Vector3LengthSqr(p.Travel) > 0 {
		// Triangle wave in [0, 1]
		leg := float64(t / p.TravelTime)
		s := 1 - float32(math.Abs(math.Mod(leg, 2)-1))
		if p.Smooth {
			s = s * s * (3 - 2*s)
		}
		offset = rl.Vector3Scale(p.Travel, s)
	}

	if p.OrbitRadius != 0 {
		a := float64(t*p.OrbitSpeed + p.Phase)
		offset.X += float32(math.Cos(a)) * p.OrbitRadius
		offset.Z += float32(math.Sin(a)) * p.OrbitRadius
	}
	return offset
}

func (p *PlatformAnimator) FixedUpdate(deltaTime float32) {
	g := p.GetGameObject()
	if g == nil || deltaTime <= 0 {
		return
	}
	if !p.hasStartPose {
		p.Start()
	}

	p.time += deltaTime
	prev := g.Transform.Position
	g.Transform.Position = rl.Vector3Add(p.StartPosition, rl.Vector3Subtract(p.OffsetAt(p.time), p.OffsetAt(0)))

	if p.SpinSpeed != 0 {
		y := math.Mod(float64(p.StartRotation.Y+p.SpinSpeed*p.time), 360)
		g.Transform.Rotation.Y = float32(y)
	}

	if p.rb != nil {
		p.rb.Velocity = rl.Vector3Scale(rl.Vector3Subtract(g.Transform.Position, prev), 1/deltaTime)
	}
}
