package gravity

import rl "github.com/gen2brain/raylib-go/raylib"

// SphereParams describes the radial bands of a Sphere source.
type SphereParams struct {
	Center             rl.Vector3
	Strength           float32
	InnerFalloffRadius float32
	InnerRadius        float32
	OuterRadius        float32
	OuterFalloffRadius float32
}

// DefaultSphereParams mirrors a small planet: full pull between 5 and 10,
// fading to zero at 1 and 15.
func DefaultSphereParams() SphereParams {
	return SphereParams{
		Strength:           9.81,
		InnerFalloffRadius: 1,
		InnerRadius:        5,
		OuterRadius:        10,
		OuterFalloffRadius: 15,
	}
}

// Sphere pulls toward a center point. Inside [InnerRadius, OuterRadius] the
// magnitude is Strength/distance; it fades linearly to zero across the inner
// and outer falloff bands and is zero beyond them.
type Sphere struct {
	params             SphereParams
	innerFalloffFactor float32
	outerFalloffFactor float32
}

// NewSphere creates a sphere source with clamped parameters.
func NewSphere(params SphereParams) *Sphere {
	s := &Sphere{}
	s.Configure(params)
	return s
}

// Configure replaces the parameters. Radii are clamped so that
// 0 <= innerFalloff <= inner <= outer <= outerFalloff.
func (s *Sphere) Configure(params SphereParams) {
	params.InnerFalloffRadius = max(params.InnerFalloffRadius, 0)
	params.InnerRadius = max(params.InnerRadius, params.InnerFalloffRadius)
	params.OuterRadius = max(params.OuterRadius, params.InnerRadius)
	params.OuterFalloffRadius = max(params.OuterFalloffRadius, params.OuterRadius)
	s.params = params

	// A zero-width band is never entered, so its factor is unused
	s.innerFalloffFactor = 0
	if w := params.InnerRadius - params.InnerFalloffRadius; w > 0 {
		s.innerFalloffFactor = 1 / w
	}
	s.outerFalloffFactor = 0
	if w := params.OuterFalloffRadius - params.OuterRadius; w > 0 {
		s.outerFalloffFactor = 1 / w
	}
}

// Params returns the clamped parameters.
func (s *Sphere) Params() SphereParams {
	return s.params
}

// SetCenter moves the source without touching the bands.
func (s *Sphere) SetCenter(center rl.Vector3) {
	s.params.Center = center
}

func (s *Sphere) Gravity(position rl.Vector3) rl.Vector3 {
	p := s.params
	toCenter := rl.Vector3Subtract(p.Center, position)
	distance := rl.Vector3Length(toCenter)
	if distance > p.OuterFalloffRadius || distance < p.InnerFalloffRadius || distance < epsilon {
		return rl.Vector3Zero()
	}

	g := p.Strength / distance
	if distance > p.OuterRadius {
		g *= 1 - (distance-p.OuterRadius)*s.outerFalloffFactor
	} else if distance < p.InnerRadius {
		g *= 1 - (p.InnerRadius-distance)*s.innerFalloffFactor
	}

	return rl.Vector3Scale(toCenter, g/distance)
}
