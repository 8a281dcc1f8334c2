// Stress test for the physics world: many spheres falling onto a planet
// under a radial gravity field.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"time"

	"spherewalk/internal/components"
	"spherewalk/internal/engine"
	"spherewalk/internal/gravity"
	"spherewalk/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	steps := flag.Int("steps", 300, "fixed steps per run")
	dt := flag.Float64("dt", 0.01, "fixed step in seconds")
	flag.Parse()

	// Test various object counts
	testCounts := []int{100, 250, 500, 1000, 2000}

	for _, count := range testCounts {
		runPlanet(count, *steps, float32(*dt))
	}
}

func runPlanet(count, steps int, dt float32) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	params := gravity.DefaultSphereParams()
	params.OuterRadius = 30
	params.OuterFalloffRadius = 40
	field := gravity.NewField(rl.Vector3{}, gravity.NewSphere(params))
	world := physics.NewPhysicsWorld(field)

	planet := engine.NewGameObject("Planet")
	planet.AddComponent(components.NewSphereCollider(5))
	world.AddObject(planet)

	// Spawn in a shell around the planet, wider for larger counts
	outer := float32(10) + float32(count)/100
	for i := 0; i < count; i++ {
		g := engine.NewGameObject(fmt.Sprintf("Body_%d", i))
		g.Transform.Position = randomShellPoint(rng, 7, outer)
		g.AddComponent(components.NewSphereCollider(0.25 + rng.Float32()*0.25))
		rb := components.NewRigidbody()
		rb.Friction = 0.3
		rb.Bounciness = 0.2
		g.AddComponent(rb)
		world.AddObject(g)
	}

	start := time.Now()
	var worst time.Duration
	for i := 0; i < steps; i++ {
		stepStart := time.Now()
		world.Update(dt)
		if d := time.Since(stepStart); d > worst {
			worst = d
		}
	}
	total := time.Since(start)
	avg := total / time.Duration(steps)

	fmt.Printf("%5d bodies: avg %8v | worst %8v | %4d sleeping after %.1fs\n",
		count, avg.Round(time.Microsecond), worst.Round(time.Microsecond),
		world.SleepingCount(), float32(steps)*dt)
}

func randomShellPoint(rng *rand.Rand, inner, outer float32) rl.Vector3 {
	// Uniform direction from a normalized Gaussian sample
	dir := rl.Vector3{
		X: float32(rng.NormFloat64()),
		Y: float32(rng.NormFloat64()),
		Z: float32(rng.NormFloat64()),
	}
	if rl.Vector3LengthSqr(dir) < 1e-6 {
		dir = rl.Vector3{X: 0, Y: 1, Z: 0}
	}
	dir = rl.Vector3Normalize(dir)
	r := inner + float32(math.Sqrt(rng.Float64()))*(outer-inner)
	return rl.Vector3Scale(dir, r)
}
