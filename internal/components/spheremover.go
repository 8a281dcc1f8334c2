package components

import (
	"errors"

	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/locomotion"
	"spherewalk/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNoRigidbody = errors.New("sphere mover needs a Rigidbody on the same object")

// InputSampler produces one input sample per rendered frame.
type InputSampler func() locomotion.Input

// SphereMover binds a locomotion controller to its GameObject. It serves
// as the controller's physics collaborator, feeds collision manifolds into
// it and drives both of its entry points.
type SphereMover struct {
	engine.BaseComponent
	Config locomotion.Config
	Field  *gravity.Field

	// Sample is polled once per frame; nil means no player input.
	Sample InputSampler
	// Space orients player input, usually the camera.
	Space locomotion.InputSpace

	controller *locomotion.Controller
	rb         *Rigidbody
}

func NewSphereMover(field *gravity.Field, cfg locomotion.Config) *SphereMover {
	return &SphereMover{
		Config: cfg,
		Field:  field,
	}
}

// Init builds the controller. Start calls it when the owner has not.
func (m *SphereMover) Init() error {
	if m.controller != nil {
		return nil
	}
	g := m.GetGameObject()
	if g == nil {
		return ErrNoRigidbody
	}
	m.rb = engine.GetComponent[*Rigidbody](g)
	if m.rb == nil {
		return ErrNoRigidbody
	}
	// The controller owns gravity for the agent
	m.rb.UseGravity = false
	m.rb.CanSleep = false

	c, err := locomotion.New(m.Field, m, m.Config)
	if err != nil {
		return err
	}
	m.controller = c
	return nil
}

func (m *SphereMover) Start() {
	if err := m.Init(); err != nil {
		logger.For("components").Error("sphere mover disabled", "object", m.GetGameObject().Name, "err", err)
	}
}

// Controller returns the bound controller, nil before Init succeeds.
func (m *SphereMover) Controller() *locomotion.Controller {
	return m.controller
}

func (m *SphereMover) Update(deltaTime float32) {
	if m.controller == nil || m.Sample == nil {
		return
	}
	in := m.Sample()
	if in.Space == nil {
		in.Space = m.Space
	}
	m.controller.OnInput(deltaTime, in)
}

func (m *SphereMover) FixedUpdate(deltaTime float32) {
	if m.controller == nil {
		return
	}
	m.controller.OnFixedTick(deltaTime)
}

func (m *SphereMover) OnCollisionEnter(c engine.Collision) {
	m.evaluate(c)
}

func (m *SphereMover) OnCollisionStay(c engine.Collision) {
	m.evaluate(c)
}

func (m *SphereMover) OnCollisionExit(other *engine.GameObject) {}

func (m *SphereMover) evaluate(c engine.Collision) {
	if m.controller == nil || c.Other == nil {
		return
	}
	m.controller.EvaluateCollision(locomotion.Manifold{
		Body:    BodyID(c.Other),
		Layer:   locomotion.Layer(c.Other.Layer),
		Normals: c.Normals,
	})
}

// BodyID maps a GameObject to the controller's body identity. Objects
// without a Rigidbody are static geometry and report zero.
func BodyID(g *engine.GameObject) locomotion.BodyID {
	if g == nil || engine.GetComponent[*Rigidbody](g) == nil {
		return 0
	}
	return locomotion.BodyID(g.UID)
}

// locomotion.Physics

func (m *SphereMover) Position() rl.Vector3 {
	return m.GetGameObject().WorldPosition()
}

func (m *SphereMover) Velocity() rl.Vector3 {
	return m.rb.Velocity
}

func (m *SphereMover) SetVelocity(v rl.Vector3) {
	m.rb.Velocity = v
}

func (m *SphereMover) Mass() float32 {
	return m.rb.Mass
}

func (m *SphereMover) Body(id locomotion.BodyID) (locomotion.Body, bool) {
	scene := m.GetGameObject().Scene
	if scene == nil {
		return locomotion.Body{}, false
	}
	g := scene.FindByUID(uint64(id))
	if g == nil {
		return locomotion.Body{}, false
	}
	body := locomotion.Body{
		Kinematic: true,
		Pose: locomotion.Pose{
			Position: g.WorldPosition(),
			Axes:     g.WorldAxes(),
		},
	}
	if rb := engine.GetComponent[*Rigidbody](g); rb != nil {
		body.Mass = rb.Mass
		body.Kinematic = rb.IsKinematic
	}
	return body, true
}

func (m *SphereMover) Raycast(origin, direction rl.Vector3, maxDistance float32, mask locomotion.LayerMask) (locomotion.RayHit, bool) {
	scene := m.GetGameObject().Scene
	if scene == nil || scene.World == nil {
		return locomotion.RayHit{}, false
	}
	hit, ok := scene.World.Raycast(origin, direction, maxDistance, uint32(mask))
	if !ok {
		return locomotion.RayHit{}, false
	}
	return locomotion.RayHit{
		Normal:   hit.Normal,
		Distance: hit.Distance,
		Body:     BodyID(hit.GameObject),
		Layer:    locomotion.Layer(hit.GameObject.Layer),
	}, true
}
