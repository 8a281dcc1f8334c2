package gravity

import rl "github.com/gen2brain/raylib-go/raylib"

// Plane pulls toward a half-space. Below the plane the full strength applies,
// above it the pull fades linearly and reaches zero at Range.
type Plane struct {
	origin   rl.Vector3
	up       rl.Vector3
	strength float32
	rng      float32
}

// NewPlane creates a plane source. up does not need to be normalized.
func NewPlane(origin, up rl.Vector3, strength, rng float32) *Plane {
	p := &Plane{origin: origin, strength: strength}
	p.SetUp(up)
	p.SetRange(rng)
	return p
}

// SetUp changes the plane's up direction. A zero vector keeps the old one.
func (p *Plane) SetUp(up rl.Vector3) {
	if rl.Vector3LengthSqr(up) < epsilon*epsilon {
		if rl.Vector3LengthSqr(p.up) == 0 {
			p.up = rl.Vector3{X: 0, Y: 1, Z: 0}
		}
		return
	}
	p.up = rl.Vector3Normalize(up)
}

// SetRange sets the falloff distance, clamped to be non-negative.
func (p *Plane) SetRange(rng float32) {
	if rng < 0 {
		rng = 0
	}
	p.rng = rng
}

// SetOrigin moves the plane along with whatever it is attached to.
func (p *Plane) SetOrigin(origin rl.Vector3) { p.origin = origin }

func (p *Plane) Origin() rl.Vector3 { return p.origin }
func (p *Plane) Up() rl.Vector3     { return p.up }
func (p *Plane) Strength() float32  { return p.strength }
func (p *Plane) Range() float32     { return p.rng }

func (p *Plane) Gravity(position rl.Vector3) rl.Vector3 {
	// Only the distance along up matters
	distance := rl.Vector3DotProduct(p.up, rl.Vector3Subtract(position, p.origin))
	if distance > p.rng {
		return rl.Vector3Zero()
	}

	g := -p.strength
	if distance > 0 {
		g *= 1 - distance/p.rng
	}
	return rl.Vector3Scale(p.up, g)
}
