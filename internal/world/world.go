// Package world assembles a playable level: scene graph, physics world,
// gravity field and the sphere agent.
package world

import (
	"fmt"
	"log/slog"

	"spherewalk/internal/components"
	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/locomotion"
	"spherewalk/internal/logger"
	"spherewalk/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type World struct {
	Scene   *engine.Scene
	Physics *physics.PhysicsWorld
	Field   *gravity.Field
	Agent   *engine.GameObject
	Mover   *components.SphereMover
	log     *slog.Logger

	anchors []sourceAnchor
}

// sourceAnchor keeps a gravity source centered on a scene object.
type sourceAnchor struct {
	source gravity.Source
	object *engine.GameObject
}

// Load reads a level file and builds a world from it.
func Load(path string, cfg locomotion.Config) (*World, error) {
	lf, err := LoadLevel(path)
	if err != nil {
		return nil, err
	}
	return Build(lf, cfg)
}

// Build creates every object of the level, spawns the agent and starts the
// scene. It fails when the level has no usable gravity.
func Build(lf *LevelFile, cfg locomotion.Config) (*World, error) {
	field, err := lf.BuildField()
	if err != nil {
		return nil, err
	}
	if err := field.Validate(); err != nil {
		return nil, err
	}

	name := lf.Name
	if name == "" {
		name = "Main"
	}
	w := &World{
		Scene:   engine.NewScene(name),
		Physics: physics.NewPhysicsWorld(field),
		Field:   field,
		log:     logger.For("world"),
	}
	w.Scene.World = w

	for _, def := range lf.Objects {
		g, err := buildObject(def)
		if err != nil {
			return nil, err
		}
		w.addObject(g)
	}

	if err := w.spawnAgent(lf.Agent, cfg); err != nil {
		return nil, err
	}
	if err := w.attachSources(lf.Gravity.Sources); err != nil {
		return nil, err
	}

	w.Scene.Start()
	w.syncAnchors()
	w.log.Info("level loaded",
		"level", name,
		"objects", len(w.Scene.GameObjects),
		"sources", len(field.Sources()),
	)
	return w, nil
}

func (w *World) spawnAgent(def AgentDef, cfg locomotion.Config) error {
	color, err := lookupColor(def.Color)
	if err != nil {
		return fmt.Errorf("agent: %w", err)
	}

	if def.Layer > 31 {
		return fmt.Errorf("agent: %w: %d", ErrLayerRange, def.Layer)
	}
	g := engine.NewGameObject(def.Name)
	g.Tags = []string{"agent"}
	g.Layer = def.Layer
	g.Transform.Position = vec3(def.Position)

	rb := components.NewRigidbody()
	rb.Mass = def.Mass
	rb.Bounciness = 0
	rb.Friction = 0
	g.AddComponent(components.NewSphereCollider(def.Radius))
	g.AddComponent(rb)
	g.AddComponent(components.NewMeshRenderer(components.MeshSphere, color, rl.Vector3{X: def.Radius}))

	mover := components.NewSphereMover(w.Field, cfg)
	g.AddComponent(mover)
	w.addObject(g)

	if err := mover.Init(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	w.Agent = g
	w.Mover = mover
	return nil
}

// attachSources binds sources with an attach name to their objects. Field
// sources are in level order.
func (w *World) attachSources(defs []SourceDef) error {
	sources := w.Field.Sources()
	for i, def := range defs {
		if def.Attach == "" || i >= len(sources) {
			continue
		}
		obj := w.Scene.FindByName(def.Attach)
		if obj == nil {
			return fmt.Errorf("gravity source %d: %w %q", i, ErrUnknownObject, def.Attach)
		}
		w.anchors = append(w.anchors, sourceAnchor{source: sources[i], object: obj})
	}
	return nil
}

// syncAnchors moves attached sources to their objects' current positions.
func (w *World) syncAnchors() {
	for _, a := range w.anchors {
		pos := a.object.WorldPosition()
		switch s := a.source.(type) {
		case *gravity.Sphere:
			s.SetCenter(pos)
		case *gravity.Plane:
			s.SetOrigin(pos)
		}
	}
}

func (w *World) addObject(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	for _, c := range g.Children {
		w.addObject(c)
	}
	if engine.GetComponent[*components.SphereCollider](g) != nil ||
		engine.GetComponent[*components.BoxCollider](g) != nil {
		w.Physics.AddObject(g)
	}
}

// Controller returns the agent's locomotion controller.
func (w *World) Controller() *locomotion.Controller {
	if w.Mover == nil {
		return nil
	}
	return w.Mover.Controller()
}

// Update runs per-frame logic such as input sampling.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// FixedUpdate advances one simulation step: scripted motion and the
// controller first, then attached gravity sources, then integration and
// contact dispatch.
func (w *World) FixedUpdate(deltaTime float32) {
	w.Scene.FixedUpdate(deltaTime)
	w.syncAnchors()
	w.Physics.Update(deltaTime)
}

// --- engine.WorldAccess ---

// GetCollidableObjects returns all GameObjects that have a collider.
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if engine.GetComponent[*components.SphereCollider](g) != nil ||
			engine.GetComponent[*components.BoxCollider](g) != nil {
			result = append(result, g)
		}
	}
	return result
}

// SpawnObject adds g to the running scene and starts it.
func (w *World) SpawnObject(g *engine.GameObject) {
	w.addObject(g)
	g.Start()
}

// Destroy removes g from the scene and the physics world.
func (w *World) Destroy(g *engine.GameObject) {
	w.Physics.RemoveObject(g)
	w.Scene.RemoveGameObject(g)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, layerMask uint32) (engine.RaycastResult, bool) {
	hit, ok := w.Physics.Raycast(origin, direction, maxDistance, layerMask)
	if !ok {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: hit.GameObject,
		Point:      hit.Point,
		Normal:     hit.Normal,
		Distance:   hit.Distance,
	}, true
}
