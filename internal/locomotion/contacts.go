package locomotion

import rl "github.com/gen2brain/raylib-go/raylib"

// steepMinDot is the lowest up-dot still counted as a wall; anything below
// faces downward and is ignored.
const steepMinDot = -0.01

// contactState accumulates one step's contacts. It lives for exactly one
// tick and is reset when the tick completes.
type contactState struct {
	groundCount int
	steepCount  int
	climbCount  int

	groundNormal    rl.Vector3
	steepNormal     rl.Vector3
	climbNormal     rl.Vector3
	lastClimbNormal rl.Vector3

	connected BodyID
}

func (s *contactState) reset() {
	*s = contactState{}
}

// classify buckets one contact normal. Ground and steep are exclusive;
// climbable overlaps with steep.
func (s *contactState) classify(t thresholds, up, normal rl.Vector3, body BodyID, layer Layer, wantsClimb bool, climbMask LayerMask) {
	upDot := rl.Vector3DotProduct(up, normal)
	if upDot >= t.minDot(layer) {
		s.groundCount++
		s.groundNormal = rl.Vector3Add(s.groundNormal, normal)
		s.connected = body
		return
	}

	if upDot > steepMinDot {
		s.steepCount++
		s.steepNormal = rl.Vector3Add(s.steepNormal, normal)
		if s.groundCount == 0 {
			s.connected = body
		}
	}

	if wantsClimb && upDot >= t.minClimbDot && climbMask.Contains(layer) {
		s.climbCount++
		s.climbNormal = rl.Vector3Add(s.climbNormal, normal)
		s.lastClimbNormal = normal
		s.connected = body
	}
}

// EvaluateCollision feeds one contact manifold into this step's
// accumulators. Call it for every enter and stay notification between ticks.
func (c *Controller) EvaluateCollision(m Manifold) {
	for _, n := range m.Normals {
		c.contacts.classify(c.th, c.upAxis, n, m.Body, m.Layer, c.desiresClimbing, c.cfg.ClimbMask)
	}
}
