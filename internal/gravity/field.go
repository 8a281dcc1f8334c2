package gravity

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// epsilon is the magnitude below which a gravity vector has no usable direction.
const epsilon = 1e-4

// ErrNoGravity is returned when a field has no sources and no fallback axis,
// so no up axis can ever be derived.
var ErrNoGravity = errors.New("gravity: no sources registered and no fallback up axis")

// Field sums an ordered set of sources. It holds no agent state and can be
// shared by every consumer that needs gravity or an up axis.
type Field struct {
	sources  []Source
	fallback rl.Vector3
}

// NewField creates a field whose up axis falls back to fallbackUp wherever the
// net gravity vanishes. A zero fallbackUp is allowed as long as sources exist.
func NewField(fallbackUp rl.Vector3, sources ...Source) *Field {
	f := &Field{}
	f.SetFallbackUp(fallbackUp)
	for _, s := range sources {
		f.Add(s)
	}
	return f
}

// SetFallbackUp sets the axis returned by Up when gravity is degenerate.
func (f *Field) SetFallbackUp(up rl.Vector3) {
	if rl.Vector3LengthSqr(up) < epsilon*epsilon {
		f.fallback = rl.Vector3Zero()
		return
	}
	f.fallback = rl.Vector3Normalize(up)
}

// FallbackUp returns the configured fallback axis (zero if none).
func (f *Field) FallbackUp() rl.Vector3 {
	return f.fallback
}

// Add registers a source. Adding the same source twice is a no-op.
func (f *Field) Add(s Source) {
	if s == nil {
		return
	}
	for _, existing := range f.sources {
		if existing == s {
			return
		}
	}
	f.sources = append(f.sources, s)
}

// Remove unregisters a source. Returns false if it was not registered.
func (f *Field) Remove(s Source) bool {
	for i, existing := range f.sources {
		if existing == s {
			f.sources = append(f.sources[:i], f.sources[i+1:]...)
			return true
		}
	}
	return false
}

// Sources returns a copy of the registered sources in registration order.
func (f *Field) Sources() []Source {
	out := make([]Source, len(f.sources))
	copy(out, f.sources)
	return out
}

// Validate reports ErrNoGravity when neither a source nor a fallback axis
// exists. Call it once at startup.
func (f *Field) Validate() error {
	if len(f.sources) == 0 && rl.Vector3LengthSqr(f.fallback) == 0 {
		return ErrNoGravity
	}
	return nil
}

// Gravity returns the summed acceleration at position.
func (f *Field) Gravity(position rl.Vector3) rl.Vector3 {
	g := rl.Vector3Zero()
	for _, s := range f.sources {
		g = rl.Vector3Add(g, s.Gravity(position))
	}
	return g
}

// Up returns the unit axis opposing gravity at position, or the configured
// fallback where gravity is negligible.
func (f *Field) Up(position rl.Vector3) rl.Vector3 {
	_, up := f.GravityAndUp(position, f.fallback)
	return up
}

// UpOr is like Up but uses fallback, typically the previous tick's axis,
// before the configured one.
func (f *Field) UpOr(position, fallback rl.Vector3) rl.Vector3 {
	_, up := f.GravityAndUp(position, fallback)
	return up
}

// GravityAndUp evaluates the sources once and returns both the acceleration
// and the up axis derived from it.
func (f *Field) GravityAndUp(position, fallback rl.Vector3) (rl.Vector3, rl.Vector3) {
	g := f.Gravity(position)
	length := rl.Vector3Length(g)
	if length >= epsilon {
		return g, rl.Vector3Scale(g, -1/length)
	}
	if rl.Vector3LengthSqr(fallback) >= epsilon*epsilon {
		return g, rl.Vector3Normalize(fallback)
	}
	if rl.Vector3LengthSqr(f.fallback) > 0 {
		return g, f.fallback
	}
	return g, rl.Vector3{X: 0, Y: 1, Z: 0}
}
