package components

import (
	"errors"

	"spherewalk/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var errBadTravelTime = errors.New("travelTime must be positive")

func init() {
	engine.RegisterScript("PlatformAnimator", platformAnimatorFactory)
}

func platformAnimatorFactory(props map[string]any) (engine.Component, error) {
	travel := engine.PropVector3(props, "travel", [3]float32{})
	p := NewPlatformAnimator()
	p.Travel = rl.Vector3{X: travel[0], Y: travel[1], Z: travel[2]}
	p.TravelTime = engine.PropFloat(props, "travelTime", 1)
	p.OrbitRadius = engine.PropFloat(props, "orbitRadius", 0)
	p.OrbitSpeed = engine.PropFloat(props, "orbitSpeed", 1)
	p.Phase = engine.PropFloat(props, "phase", 0)
	p.SpinSpeed = engine.PropFloat(props, "spinSpeed", 0)
	if smooth, ok := props["smooth"].(bool); ok {
		p.Smooth = smooth
	}
	if p.TravelTime <= 0 {
		return nil, errBadTravelTime
	}
	return p, nil
}
