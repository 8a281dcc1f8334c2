package world

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"spherewalk/internal/components"
	"spherewalk/internal/config"
	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const flatLevel = `
name: flat
gravity:
  sources:
    - type: uniform
      acceleration: [0, -9.81, 0]
agent:
  position: [0, 0.6, 0]
  color: Red
objects:
  - name: Ground
    tags: [ground]
    position: [0, -0.5, 0]
    components:
      - type: MeshRenderer
        mesh: cube
        size: [20, 1, 20]
        color: Gray
      - type: BoxCollider
        size: [20, 1, 20]
`

func mustBuild(t *testing.T, src string) *World {
	t.Helper()
	lf, err := ParseLevel([]byte(src))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	w, err := Build(lf, locomotion.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return w
}

func step(w *World, n int) {
	for i := 0; i < n; i++ {
		w.FixedUpdate(0.01)
	}
}

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestParseLevelAgentDefaults(t *testing.T) {
	lf, err := ParseLevel([]byte("objects: []\n"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lf.Agent.Name != "Agent" || lf.Agent.Radius != 0.5 || lf.Agent.Mass != 1 {
		t.Errorf("Expected agent defaults, got %+v", lf.Agent)
	}

	if _, err := ParseLevel([]byte("objects: [")); err == nil {
		t.Error("Expected malformed level to fail")
	}
}

func TestBuildField(t *testing.T) {
	lf, err := ParseLevel([]byte(`
gravity:
  fallbackUp: [0, 0, 1]
  sources:
    - type: plane
      origin: [0, 0, 0]
      up: [0, 2, 0]
      range: 4
    - type: sphere
      center: [10, 0, 0]
      strength: 20
      innerRadius: 2
      outerRadius: 4
`))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	field, err := lf.BuildField()
	if err != nil {
		t.Fatalf("BuildField: %v", err)
	}
	sources := field.Sources()
	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(sources))
	}

	plane, ok := sources[0].(*gravity.Plane)
	if !ok {
		t.Fatalf("Expected *gravity.Plane, got %T", sources[0])
	}
	if plane.Strength() != 9.81 || plane.Range() != 4 || plane.Up() != (rl.Vector3{Y: 1}) {
		t.Errorf("Unexpected plane strength %v range %v up %v", plane.Strength(), plane.Range(), plane.Up())
	}

	sphere, ok := sources[1].(*gravity.Sphere)
	if !ok {
		t.Fatalf("Expected *gravity.Sphere, got %T", sources[1])
	}
	p := sphere.Params()
	if p.Center != (rl.Vector3{X: 10}) || p.Strength != 20 || p.InnerRadius != 2 || p.OuterRadius != 4 {
		t.Errorf("Unexpected sphere params %+v", p)
	}
	// Unset radii keep their defaults, clamped into order
	if p.InnerFalloffRadius != 1 || p.OuterFalloffRadius != 15 {
		t.Errorf("Expected default falloff radii 1 and 15, got %v and %v", p.InnerFalloffRadius, p.OuterFalloffRadius)
	}
	if field.FallbackUp() != (rl.Vector3{Z: 1}) {
		t.Errorf("Expected fallback (0, 0, 1), got %v", field.FallbackUp())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  error
	}{
		{
			name:  "unknown source",
			level: "gravity:\n  sources:\n    - type: vortex\n",
			want:  ErrUnknownSource,
		},
		{
			name:  "no gravity",
			level: "gravity:\n  fallbackUp: [0, 0, 0]\n",
			want:  gravity.ErrNoGravity,
		},
		{
			name:  "unknown color",
			level: "objects:\n  - name: Box\n    components:\n      - type: MeshRenderer\n        color: Teal\n",
			want:  ErrUnknownColor,
		},
		{
			name:  "unknown agent color",
			level: "agent:\n  color: Teal\n",
			want:  ErrUnknownColor,
		},
		{
			name:  "unknown component",
			level: "objects:\n  - name: Box\n    components:\n      - type: Light\n",
			want:  ErrUnknownComponent,
		},
		{
			name:  "attach to missing object",
			level: "gravity:\n  sources:\n    - type: sphere\n      attach: Moon\n",
			want:  ErrUnknownObject,
		},
		{
			name:  "object layer out of range",
			level: "objects:\n  - name: Box\n    layer: 33\n",
			want:  ErrLayerRange,
		},
		{
			name:  "agent layer out of range",
			level: "agent:\n  layer: 40\n",
			want:  ErrLayerRange,
		},
		{
			name:  "unknown mesh",
			level: "objects:\n  - name: Box\n    components:\n      - type: MeshRenderer\n        mesh: torus\n",
			want:  ErrUnknownMesh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lf, err := ParseLevel([]byte(tt.level))
			if err != nil {
				t.Fatalf("ParseLevel: %v", err)
			}
			_, err = Build(lf, locomotion.DefaultConfig())
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBuildScriptErrors(t *testing.T) {
	for _, level := range []string{
		"objects:\n  - name: P\n    components:\n      - type: Script\n        name: NoSuchScript\n",
		"objects:\n  - name: P\n    components:\n      - type: Script\n        name: PlatformAnimator\n        props:\n          travelTime: 0\n",
	} {
		lf, err := ParseLevel([]byte(level))
		if err != nil {
			t.Fatalf("ParseLevel: %v", err)
		}
		if _, err := Build(lf, locomotion.DefaultConfig()); err == nil {
			t.Errorf("Expected script error for level %q", level)
		}
	}
}

func TestLookupColor(t *testing.T) {
	tests := []struct {
		in   string
		want rl.Color
		err  bool
	}{
		{"", rl.White, false},
		{"Gold", rl.Gold, false},
		{"#102030", rl.Color{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"#10203040", rl.Color{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"#1020", rl.Color{}, true},
		{"gold", rl.Color{}, true},
	}
	for _, tt := range tests {
		got, err := lookupColor(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("lookupColor(%q) error = %v, wantErr %v", tt.in, err, tt.err)
			continue
		}
		if got != tt.want {
			t.Errorf("lookupColor(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(flatLevel), 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}
	w, err := Load(path, locomotion.DefaultConfig())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.Scene.Name != "flat" {
		t.Errorf("Expected scene name flat, got %s", w.Scene.Name)
	}
	ground := w.Scene.FindByName("Ground")
	if ground == nil || !ground.HasTag("ground") {
		t.Fatal("Expected tagged ground object")
	}
	if len(w.Physics.Statics) != 1 || len(w.Physics.Objects) != 1 {
		t.Errorf("Expected 1 static and 1 dynamic, got %d and %d", len(w.Physics.Statics), len(w.Physics.Objects))
	}
	if got := len(w.GetCollidableObjects()); got != 2 {
		t.Errorf("Expected 2 collidable objects, got %d", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), locomotion.DefaultConfig()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestAgentSettlesOnGround(t *testing.T) {
	w := mustBuild(t, flatLevel)
	landed := 0
	w.Controller().Landed.AddListener(func() { landed++ })

	step(w, 50)

	c := w.Controller()
	if !c.Grounded() {
		t.Fatal("Expected agent grounded")
	}
	if y := w.Agent.Transform.Position.Y; !near(y, 0.5, 0.02) {
		t.Errorf("Expected agent resting at y 0.5, got %v", y)
	}
	if landed != 1 {
		t.Errorf("Expected 1 landing, got %d", landed)
	}
	if up := c.Up(); up != (rl.Vector3{Y: 1}) {
		t.Errorf("Expected up (0, 1, 0), got %v", up)
	}
}

func TestAgentJumpsFromGround(t *testing.T) {
	w := mustBuild(t, flatLevel)
	step(w, 50)

	var kinds []locomotion.JumpKind
	w.Controller().Jumped.AddListener(func(k locomotion.JumpKind) { kinds = append(kinds, k) })

	jump := true
	w.Mover.Sample = func() locomotion.Input {
		in := locomotion.Input{Jump: jump}
		jump = false
		return in
	}
	w.Update(0.016)
	w.FixedUpdate(0.01)

	if len(kinds) != 1 || kinds[0] != locomotion.JumpGround {
		t.Fatalf("Expected one ground jump, got %v", kinds)
	}
	rb := engine.GetComponent[*components.Rigidbody](w.Agent)
	if rb.Velocity.Y < 6 {
		t.Errorf("Expected upward velocity near 6.26, got %v", rb.Velocity.Y)
	}

	step(w, 10)
	if w.Controller().Grounded() {
		t.Error("Expected agent airborne after jumping")
	}
}

func TestAgentRidesPlatform(t *testing.T) {
	w := mustBuild(t, `
gravity:
  sources:
    - type: uniform
      acceleration: [0, -9.81, 0]
agent:
  position: [0, 0.55, 0]
objects:
  - name: Platform
    position: [0, -0.5, 0]
    components:
      - type: BoxCollider
        size: [6, 1, 6]
      - type: Rigidbody
        isKinematic: true
      - type: Script
        name: PlatformAnimator
        props:
          travel: [4, 0, 0]
          travelTime: 2
`)
	platform := w.Scene.FindByName("Platform")
	if len(w.Physics.Kinematics) != 1 {
		t.Fatalf("Expected 1 kinematic body, got %d", len(w.Physics.Kinematics))
	}

	step(w, 100)

	if px := platform.Transform.Position.X; !near(px, 2, 0.01) {
		t.Fatalf("Expected platform at x 2, got %v", px)
	}
	if !w.Controller().Grounded() {
		t.Error("Expected agent grounded on the platform")
	}
	if ax := w.Agent.Transform.Position.X; ax < 1.2 {
		t.Errorf("Expected agent carried along, got x %v", ax)
	}
	if w.Controller().State().Connected != locomotion.BodyID(platform.UID) {
		t.Errorf("Expected connection to the platform, got %d", w.Controller().State().Connected)
	}
}

func TestAgentLandsOnPlanetSide(t *testing.T) {
	w := mustBuild(t, `
gravity:
  sources:
    - type: sphere
      center: [0, 0, 0]
agent:
  position: [7, 0, 0]
objects:
  - name: Planet
    components:
      - type: SphereCollider
        radius: 5
`)
	// 9.81/7 toward the center before anything moves
	g := w.Field.Gravity(w.Agent.WorldPosition())
	if !near(g.X, -9.81/7, 1e-4) {
		t.Fatalf("Expected gravity.X %v, got %v", -9.81/7, g.X)
	}

	step(w, 400)

	c := w.Controller()
	if !c.Grounded() {
		t.Fatal("Expected agent grounded on the planet")
	}
	pos := w.Agent.Transform.Position
	if !near(rl.Vector3Length(pos), 5.5, 0.05) {
		t.Errorf("Expected agent 5.5 from the center, got %v", rl.Vector3Length(pos))
	}
	up := c.Up()
	if !near(up.X, 1, 1e-3) {
		t.Errorf("Expected up along +X, got %v", up)
	}
}

func TestWorldRaycastAndDestroy(t *testing.T) {
	w := mustBuild(t, flatLevel)

	hit, ok := w.Raycast(rl.Vector3{X: 3, Y: 5}, rl.Vector3{Y: -1}, 10, engine.AllLayers)
	if !ok || hit.GameObject.Name != "Ground" {
		t.Fatalf("Expected to hit the ground, got %v %v", ok, hit.GameObject)
	}
	if !near(hit.Distance, 5, 1e-4) {
		t.Errorf("Expected distance 5, got %v", hit.Distance)
	}

	crate := engine.NewGameObject("Crate")
	crate.Transform.Position = rl.Vector3{X: 3, Y: 2}
	crate.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	w.SpawnObject(crate)

	hit, ok = w.Raycast(rl.Vector3{X: 3, Y: 5}, rl.Vector3{Y: -1}, 10, engine.AllLayers)
	if !ok || hit.GameObject != crate {
		t.Fatalf("Expected to hit the crate, got %v", hit.GameObject)
	}

	w.Destroy(crate)
	if w.Scene.FindByUID(crate.UID) != nil {
		t.Error("Expected crate removed from the scene")
	}
	hit, _ = w.Raycast(rl.Vector3{X: 3, Y: 5}, rl.Vector3{Y: -1}, 10, engine.AllLayers)
	if hit.GameObject == crate {
		t.Error("Expected crate removed from physics")
	}
}

func TestAgentTint(t *testing.T) {
	base := rl.Color{R: 200, G: 0, B: 0, A: 255}
	if got := agentTint(base, locomotion.State{Grounded: true}); got != base {
		t.Errorf("Expected base color when grounded, got %v", got)
	}
	if got := agentTint(base, locomotion.State{Grounded: true, Climbing: true}); got != rl.Purple {
		t.Errorf("Expected purple when climbing, got %v", got)
	}
	got := agentTint(base, locomotion.State{})
	if got.R != 227 || got.G != 127 || got.A != 255 {
		t.Errorf("Expected washed out color when airborne, got %v", got)
	}
}

func TestBodyTint(t *testing.T) {
	base := rl.Brown
	rb := components.NewRigidbody()
	if got := bodyTint(base, rb); got != base {
		t.Errorf("Expected base color for an awake body, got %v", got)
	}

	rb.FloatToSleep = true
	for i := 0; i < 5; i++ {
		rb.GravityActive(0.25)
	}
	if got := bodyTint(base, rb); got != rl.Yellow {
		t.Errorf("Expected yellow for a floating body, got %v", got)
	}

	rb.IsSleeping = true
	if got := bodyTint(base, rb); got != rl.Gray {
		t.Errorf("Expected gray for a sleeping body, got %v", got)
	}
}

func TestFrustumCulling(t *testing.T) {
	cam := rl.Camera3D{
		Position:   rl.Vector3{},
		Target:     rl.Vector3{Z: -1},
		Up:         rl.Vector3{Y: 1},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
	f := ExtractFrustum(cam, 16.0/9.0)

	if !f.ContainsPoint(rl.Vector3{Z: -10}) {
		t.Error("Expected point ahead to be visible")
	}
	if f.ContainsPoint(rl.Vector3{Z: 10}) {
		t.Error("Expected point behind to be culled")
	}
	if f.ContainsSphere(rl.Vector3{X: 100, Z: -10}, 1) {
		t.Error("Expected sphere far to the side to be culled")
	}
	if !f.ContainsSphere(rl.Vector3{Z: 1}, 2) {
		t.Error("Expected sphere straddling the camera to be visible")
	}
}

func TestShippedLevelSettles(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "config.yaml"))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	w, err := Load(cfg.Level, cfg.Controller)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(w.Field.Sources()) != 3 {
		t.Errorf("Expected plane and two sphere sources, got %d", len(w.Field.Sources()))
	}
	if len(w.Physics.Kinematics) != 4 {
		t.Errorf("Expected 4 moving bodies, got %d", len(w.Physics.Kinematics))
	}

	step(w, 150)
	if !w.Controller().Grounded() {
		t.Error("Expected agent grounded after settling")
	}
	if y := w.Agent.Transform.Position.Y; !near(y, 0.5, 0.05) {
		t.Errorf("Expected agent resting at y 0.5, got %v", y)
	}
}

func TestAttachedSourceFollowsObject(t *testing.T) {
	w := mustBuild(t, `
gravity:
  sources:
    - type: uniform
      acceleration: [0, -9.81, 0]
    - type: sphere
      attach: Moon
      center: [100, 100, 100]
    - type: plane
      attach: Moon
      up: [0, 1, 0]
      range: 2
agent:
  position: [0, 0.6, 0]
objects:
  - name: Ground
    position: [0, -0.5, 0]
    components:
      - type: BoxCollider
        size: [20, 1, 20]
  - name: Moon
    position: [30, 5, 0]
    components:
      - type: SphereCollider
        radius: 1
      - type: Rigidbody
        isKinematic: true
        useGravity: false
      - type: Script
        name: PlatformAnimator
        props:
          travel: [0, 0, 4]
          travelTime: 1
`)
	sources := w.Field.Sources()
	sphere := sources[1].(*gravity.Sphere)
	plane := sources[2].(*gravity.Plane)

	if got := sphere.Params().Center; got != (rl.Vector3{X: 30, Y: 5}) {
		t.Errorf("Expected sphere centered on the moon at build, got %v", got)
	}

	step(w, 25)
	moon := w.Scene.FindByName("Moon").Transform.Position
	if !near(moon.Z, 1, 1e-3) {
		t.Fatalf("Expected moon moved to z 1, got %v", moon)
	}
	if got := sphere.Params().Center; got != moon {
		t.Errorf("Expected sphere center %v, got %v", moon, got)
	}
	if got := plane.Origin(); got != moon {
		t.Errorf("Expected plane origin %v, got %v", moon, got)
	}
}
