// Package gravity evaluates composite, position-dependent gravity fields.
package gravity

import rl "github.com/gen2brain/raylib-go/raylib"

// Source contributes a gravity acceleration at a world position.
// Implementations must be pure: no side effects and no state changes during
// evaluation.
type Source interface {
	Gravity(position rl.Vector3) rl.Vector3
}

// Uniform is a constant acceleration everywhere in the world.
type Uniform struct {
	Acceleration rl.Vector3
}

// NewUniform creates a uniform source pulling along acceleration.
func NewUniform(acceleration rl.Vector3) *Uniform {
	return &Uniform{Acceleration: acceleration}
}

func (u *Uniform) Gravity(position rl.Vector3) rl.Vector3 {
	return u.Acceleration
}
