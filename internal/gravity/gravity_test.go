package gravity

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func approx(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math.Abs(float64(got-want)) > float64(tol) {
		t.Fatalf("%s = %.6f, want %.6f (tol=%.6f)", field, got, want, tol)
	}
}

func vecApprox(t *testing.T, got, want rl.Vector3, tol float32, field string) {
	t.Helper()
	if rl.Vector3Distance(got, want) > tol {
		t.Fatalf("%s = %+v, want %+v", field, got, want)
	}
}

func TestSphereCoreBandFollowsInverseDistance(t *testing.T) {
	s := NewSphere(SphereParams{
		Strength:           9.81,
		InnerFalloffRadius: 1,
		InnerRadius:        5,
		OuterRadius:        10,
		OuterFalloffRadius: 15,
	})

	pos := rl.Vector3{X: 7, Y: 0, Z: 0}
	g := s.Gravity(pos)

	approx(t, rl.Vector3Length(g), 9.81/7, 1e-5, "|g|")
	vecApprox(t, rl.Vector3Normalize(g), rl.Vector3{X: -1}, 1e-5, "direction")
}

func TestSphereStrictlyDecreasingInCoreBand(t *testing.T) {
	s := NewSphere(DefaultSphereParams())

	prev := float32(math.MaxFloat32)
	for d := float32(5); d <= 10; d += 0.25 {
		mag := rl.Vector3Length(s.Gravity(rl.Vector3{Y: d}))
		if mag >= prev {
			t.Fatalf("|g| at %.2f = %.6f, not below previous %.6f", d, mag, prev)
		}
		prev = mag
	}
}

func TestSphereContinuousAcrossBands(t *testing.T) {
	p := DefaultSphereParams()
	s := NewSphere(p)
	const h = 1e-3

	for _, r := range []float32{p.InnerFalloffRadius, p.InnerRadius, p.OuterRadius, p.OuterFalloffRadius} {
		below := rl.Vector3Length(s.Gravity(rl.Vector3{X: r - h}))
		above := rl.Vector3Length(s.Gravity(rl.Vector3{X: r + h}))
		if math.Abs(float64(below-above)) > 0.01 {
			t.Errorf("discontinuity at r=%.2f: %.6f vs %.6f", r, below, above)
		}
	}
}

func TestSphereZeroOutsideFalloff(t *testing.T) {
	s := NewSphere(DefaultSphereParams())

	for _, d := range []float32{0, 0.5, 15.5, 100} {
		if g := s.Gravity(rl.Vector3{Z: d}); rl.Vector3Length(g) != 0 {
			t.Errorf("gravity at %.1f = %+v, want zero", d, g)
		}
	}
}

func TestSphereConfigureClampsRadii(t *testing.T) {
	s := NewSphere(SphereParams{
		Strength:           1,
		InnerFalloffRadius: -3,
		InnerRadius:        4,
		OuterRadius:        2,
		OuterFalloffRadius: 1,
	})
	p := s.Params()

	if p.InnerFalloffRadius != 0 {
		t.Errorf("Expected innerFalloff 0, got %f", p.InnerFalloffRadius)
	}
	if p.OuterRadius != 4 {
		t.Errorf("Expected outer clamped to inner (4), got %f", p.OuterRadius)
	}
	if p.OuterFalloffRadius != 4 {
		t.Errorf("Expected outerFalloff clamped to outer (4), got %f", p.OuterFalloffRadius)
	}

	// Zero-width outer band must not produce NaN at its edge
	g := s.Gravity(rl.Vector3{X: 4})
	if math.IsNaN(float64(g.X)) {
		t.Fatal("gravity is NaN at a zero-width band edge")
	}
}

func TestPlaneFalloff(t *testing.T) {
	p := NewPlane(rl.Vector3{}, rl.Vector3{Y: 2}, 9.81, 4)

	vecApprox(t, p.Gravity(rl.Vector3{Y: -3}), rl.Vector3{Y: -9.81}, 1e-5, "below plane")
	vecApprox(t, p.Gravity(rl.Vector3{Y: 0}), rl.Vector3{Y: -9.81}, 1e-5, "on plane")
	vecApprox(t, p.Gravity(rl.Vector3{X: 5, Y: 2}), rl.Vector3{Y: -9.81 * 0.5}, 1e-5, "half range")
	vecApprox(t, p.Gravity(rl.Vector3{Y: 4.01}), rl.Vector3{}, 1e-6, "beyond range")
}

func TestPlaneNegativeRangeClamped(t *testing.T) {
	p := NewPlane(rl.Vector3{}, rl.Vector3{Y: 1}, 9.81, -2)
	if p.Range() != 0 {
		t.Fatalf("Expected range 0, got %f", p.Range())
	}
	if g := p.Gravity(rl.Vector3{Y: 0.1}); rl.Vector3Length(g) != 0 {
		t.Errorf("Expected zero gravity above a zero-range plane, got %+v", g)
	}
}

func TestFieldSumsSourcesAndDerivesUp(t *testing.T) {
	f := NewField(rl.Vector3{Y: 1},
		NewUniform(rl.Vector3{Y: -4}),
		NewUniform(rl.Vector3{X: -3}),
	)

	g, up := f.GravityAndUp(rl.Vector3{}, rl.Vector3{})
	vecApprox(t, g, rl.Vector3{X: -3, Y: -4}, 1e-6, "gravity")
	vecApprox(t, up, rl.Vector3{X: 0.6, Y: 0.8}, 1e-6, "up")
}

func TestFieldFallbackOutsideEverySource(t *testing.T) {
	fallback := rl.Vector3{Z: 1}
	f := NewField(fallback,
		NewSphere(DefaultSphereParams()),
		NewPlane(rl.Vector3{}, rl.Vector3{Y: 1}, 9.81, 2),
	)

	far := rl.Vector3{Y: 50}
	if g := f.Gravity(far); rl.Vector3Length(g) != 0 {
		t.Fatalf("Expected zero gravity far away, got %+v", g)
	}
	vecApprox(t, f.Up(far), fallback, 1e-6, "up")

	prev := rl.Vector3{X: 1}
	vecApprox(t, f.UpOr(far, prev), prev, 1e-6, "up with caller fallback")
}

func TestFieldAddRemove(t *testing.T) {
	f := NewField(rl.Vector3{Y: 1})
	u := NewUniform(rl.Vector3{Y: -1})

	f.Add(u)
	f.Add(u)
	if len(f.Sources()) != 1 {
		t.Fatalf("Expected 1 source, got %d", len(f.Sources()))
	}

	if !f.Remove(u) {
		t.Error("Remove should report a registered source")
	}
	if f.Remove(u) {
		t.Error("Remove should report false for an unknown source")
	}
	if g := f.Gravity(rl.Vector3{}); rl.Vector3Length(g) != 0 {
		t.Errorf("Expected zero gravity after removal, got %+v", g)
	}
}

func TestFieldValidate(t *testing.T) {
	if err := NewField(rl.Vector3{}).Validate(); !errors.Is(err, ErrNoGravity) {
		t.Errorf("Expected ErrNoGravity, got %v", err)
	}
	if err := NewField(rl.Vector3{Y: 1}).Validate(); err != nil {
		t.Errorf("Fallback axis alone should validate, got %v", err)
	}
	if err := NewField(rl.Vector3{}, NewUniform(rl.Vector3{Y: -1})).Validate(); err != nil {
		t.Errorf("A source alone should validate, got %v", err)
	}
}
