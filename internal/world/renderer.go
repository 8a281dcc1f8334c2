package world

import (
	"spherewalk/internal/components"
	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws every MeshRenderer in the scene from two shared unit
// models, plus optional gravity and agent gizmos.
type Renderer struct {
	cube       rl.Model
	sphere     rl.Model
	loaded     bool
	ShowGizmos bool
	culled     int
}

func NewRenderer() *Renderer {
	return &Renderer{ShowGizmos: true}
}

// Initialize uploads the unit meshes. It needs an open window.
func (r *Renderer) Initialize() {
	r.cube = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
	r.sphere = rl.LoadModelFromMesh(rl.GenMeshSphere(1, 16, 16))
	r.loaded = true
}

// Culled is the number of objects skipped by frustum culling last frame.
func (r *Renderer) Culled() int {
	return r.culled
}

// Draw renders the world. Call it between BeginMode3D and EndMode3D.
func (r *Renderer) Draw(w *World, camera rl.Camera3D, aspect float32) {
	if !r.loaded {
		return
	}
	frustum := ExtractFrustum(camera, aspect)
	r.culled = 0

	for _, g := range w.Scene.GameObjects {
		mr := engine.GetComponent[*components.MeshRenderer](g)
		if mr == nil || !g.Active {
			continue
		}
		if !frustum.ContainsSphere(g.WorldPosition(), boundingRadius(mr, g)) {
			r.culled++
			continue
		}
		if g == w.Agent && w.Controller() != nil {
			base := mr.Color
			mr.Color = agentTint(base, w.Controller().State())
			mr.Draw(r.cube, r.sphere)
			mr.Color = base
			continue
		}
		if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil && !rb.IsKinematic {
			base := mr.Color
			mr.Color = bodyTint(base, rb)
			mr.Draw(r.cube, r.sphere)
			mr.Color = base
			continue
		}
		mr.Draw(r.cube, r.sphere)
	}

	if r.ShowGizmos {
		drawGravityGizmos(w.Field)
		if c := w.Controller(); c != nil {
			drawAgentGizmos(w.Agent.WorldPosition(), c.State())
		}
	}
}

func boundingRadius(mr *components.MeshRenderer, g *engine.GameObject) float32 {
	s := g.WorldScale()
	scale := max(absf(s.X), absf(s.Y), absf(s.Z))
	if mr.MeshType == components.MeshSphere {
		return mr.Size.X * scale
	}
	return rl.Vector3Length(mr.Size) * 0.5 * scale
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// bodyTint marks resting dynamic bodies: gray when asleep, yellow while
// floating with gravity suspended.
func bodyTint(base rl.Color, rb *components.Rigidbody) rl.Color {
	switch {
	case rb.IsSleeping:
		return rl.Gray
	case rb.Floating():
		return rl.Yellow
	}
	return base
}

// agentTint shows the locomotion state: climbing is purple, airborne is a
// washed out version of the base color.
func agentTint(base rl.Color, s locomotion.State) rl.Color {
	switch {
	case s.Climbing:
		return rl.Purple
	case s.Grounded:
		return base
	}
	return rl.Color{
		R: base.R/2 + 127,
		G: base.G/2 + 127,
		B: base.B/2 + 127,
		A: base.A,
	}
}

func drawGravityGizmos(field *gravity.Field) {
	for _, src := range field.Sources() {
		switch s := src.(type) {
		case *gravity.Sphere:
			p := s.Params()
			rl.DrawSphereWires(p.Center, p.InnerRadius, 8, 12, rl.Fade(rl.SkyBlue, 0.4))
			rl.DrawSphereWires(p.Center, p.OuterRadius, 8, 12, rl.Fade(rl.Blue, 0.3))
			rl.DrawSphereWires(p.Center, p.OuterFalloffRadius, 8, 12, rl.Fade(rl.DarkBlue, 0.15))
		case *gravity.Plane:
			top := rl.Vector3Add(s.Origin(), rl.Vector3Scale(s.Up(), s.Range()))
			rl.DrawLine3D(s.Origin(), top, rl.Orange)
			rl.DrawSphere(s.Origin(), 0.1, rl.Orange)
		}
	}
}

func drawAgentGizmos(pos rl.Vector3, s locomotion.State) {
	rl.DrawLine3D(pos, rl.Vector3Add(pos, rl.Vector3Scale(s.Up, 1.5)), rl.Green)
	rl.DrawLine3D(pos, rl.Vector3Add(pos, s.ContactNormal), rl.Yellow)
	rl.DrawLine3D(pos, rl.Vector3Add(pos, rl.Vector3Scale(s.Velocity, 0.25)), rl.Red)
}

func (r *Renderer) Unload() {
	if !r.loaded {
		return
	}
	rl.UnloadModel(r.cube)
	rl.UnloadModel(r.sphere)
	r.loaded = false
}
