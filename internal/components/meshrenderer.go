package components

import (
	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
)

// MeshRenderer draws a unit cube or sphere scaled to Size and tinted with
// Color. Size is the full extent for cubes and the radius (X) for spheres.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
	}
}

// Draw renders with a shared unit model for the mesh type.
func (m *MeshRenderer) Draw(cube, sphere rl.Model) {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	model := cube
	size := m.Size
	if m.MeshType == MeshSphere {
		model = sphere
		size = rl.Vector3{X: m.Size.X, Y: m.Size.X, Z: m.Size.X}
	}

	scale := g.WorldScale()
	scaleMatrix := rl.MatrixScale(size.X*scale.X, size.Y*scale.Y, size.Z*scale.Z)
	rotMatrix := engine.RotationMatrix(g.WorldRotation())
	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// Combine: scale -> rotate -> translate
	model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
	rl.DrawModel(model, rl.Vector3Zero(), 1.0, m.Color)
}
