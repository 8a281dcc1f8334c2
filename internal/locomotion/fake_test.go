package locomotion

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spherewalk/internal/gravity"
)

const step = float32(0.01)

var (
	up    = rl.Vector3{X: 0, Y: 1, Z: 0}
	wallX = rl.Vector3{X: 1, Y: 0, Z: 0}
)

// fakePhysics is a scripted Physics: it never integrates, tests move it.
type fakePhysics struct {
	pos  rl.Vector3
	vel  rl.Vector3
	mass float32

	bodies    map[BodyID]Body
	bodyCalls map[BodyID]int

	hit      *RayHit
	rayCalls int
	setCalls int
}

func newFakePhysics() *fakePhysics {
	return &fakePhysics{
		pos:       rl.Vector3{Y: 1},
		mass:      1,
		bodies:    map[BodyID]Body{},
		bodyCalls: map[BodyID]int{},
	}
}

func (f *fakePhysics) Position() rl.Vector3     { return f.pos }
func (f *fakePhysics) Velocity() rl.Vector3     { return f.vel }
func (f *fakePhysics) SetVelocity(v rl.Vector3) { f.vel = v; f.setCalls++ }
func (f *fakePhysics) Mass() float32            { return f.mass }

func (f *fakePhysics) Body(id BodyID) (Body, bool) {
	f.bodyCalls[id]++
	b, ok := f.bodies[id]
	return b, ok
}

func (f *fakePhysics) Raycast(origin, direction rl.Vector3, maxDistance float32, mask LayerMask) (RayHit, bool) {
	f.rayCalls++
	if f.hit == nil {
		return RayHit{}, false
	}
	return *f.hit, true
}

func earthField() *gravity.Field {
	return gravity.NewField(rl.Vector3{}, gravity.NewUniform(rl.Vector3{Y: -9.81}))
}

func newTestController(t *testing.T, cfg Config) (*Controller, *fakePhysics) {
	t.Helper()
	body := newFakePhysics()
	c, err := New(earthField(), body, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, body
}

// airborne runs n ticks with no contacts and zero velocity so the step
// counters move past the post-jump window.
func airborne(c *Controller, body *fakePhysics, n int) {
	for i := 0; i < n; i++ {
		body.vel = rl.Vector3{}
		c.OnFixedTick(step)
	}
	body.vel = rl.Vector3{}
}

func touch(c *Controller, id BodyID, normals ...rl.Vector3) {
	c.EvaluateCollision(Manifold{Body: id, Normals: normals})
}

func approx(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(tol) {
		t.Errorf("%s: expected %v, got %v", field, want, got)
	}
}

func vecApprox(t *testing.T, got, want rl.Vector3, tol float32, field string) {
	t.Helper()
	approx(t, got.X, want.X, tol, field+".X")
	approx(t, got.Y, want.Y, tol, field+".Y")
	approx(t, got.Z, want.Z, tol, field+".Z")
}
