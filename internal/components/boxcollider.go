package components

import (
	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3 // local-space offset, rotated with the object
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size:   size,
		Offset: rl.Vector3{},
	}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	g := b.GetGameObject()
	if b.Offset == (rl.Vector3{}) {
		return g.WorldPosition()
	}
	axes := g.WorldAxes()
	center := g.WorldPosition()
	center = rl.Vector3Add(center, rl.Vector3Scale(axes[0], b.Offset.X))
	center = rl.Vector3Add(center, rl.Vector3Scale(axes[1], b.Offset.Y))
	center = rl.Vector3Add(center, rl.Vector3Scale(axes[2], b.Offset.Z))
	return center
}

// GetWorldSize returns the collider size multiplied by the object's world scale.
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	scale := b.GetGameObject().WorldScale()
	return rl.Vector3{
		X: absf(b.Size.X * scale.X),
		Y: absf(b.Size.Y * scale.Y),
		Z: absf(b.Size.Z * scale.Z),
	}
}
