package locomotion

import "math"

// Config holds the controller tuning. Angles are in degrees.
type Config struct {
	MaxSpeed             float32 `yaml:"maxSpeed"`
	MaxClimbSpeed        float32 `yaml:"maxClimbSpeed"`
	MaxAcceleration      float32 `yaml:"maxAcceleration"`
	MaxAirAcceleration   float32 `yaml:"maxAirAcceleration"`
	MaxClimbAcceleration float32 `yaml:"maxClimbAcceleration"`

	JumpHeight  float32 `yaml:"jumpHeight"`
	MaxAirJumps int     `yaml:"maxAirJumps"`

	MaxGroundAngle float32 `yaml:"maxGroundAngle"`
	MaxStairsAngle float32 `yaml:"maxStairsAngle"`
	MaxClimbAngle  float32 `yaml:"maxClimbAngle"`

	MaxSnapSpeed  float32 `yaml:"maxSnapSpeed"`
	ProbeDistance float32 `yaml:"probeDistance"`

	ProbeMask  LayerMask `yaml:"probeMask"`
	StairsMask LayerMask `yaml:"stairsMask"`
	ClimbMask  LayerMask `yaml:"climbMask"`
}

func DefaultConfig() Config {
	return Config{
		MaxSpeed:             10,
		MaxClimbSpeed:        2,
		MaxAcceleration:      10,
		MaxAirAcceleration:   1,
		MaxClimbAcceleration: 20,
		JumpHeight:           2,
		MaxAirJumps:          0,
		MaxGroundAngle:       25,
		MaxStairsAngle:       50,
		MaxClimbAngle:        140,
		MaxSnapSpeed:         100,
		ProbeDistance:        1,
		ProbeMask:            AllLayers,
		StairsMask:           NoLayers,
		ClimbMask:            AllLayers,
	}
}

// Sanitize clamps every field into its valid range and returns the result.
// Out-of-range values are corrected here, never rejected.
func (c Config) Sanitize() Config {
	c.MaxSpeed = clamp(c.MaxSpeed, 0, 100)
	c.MaxClimbSpeed = clamp(c.MaxClimbSpeed, 0, 100)
	c.MaxAcceleration = clamp(c.MaxAcceleration, 0, 100)
	c.MaxAirAcceleration = clamp(c.MaxAirAcceleration, 0, 100)
	c.MaxClimbAcceleration = clamp(c.MaxClimbAcceleration, 0, 100)
	c.JumpHeight = clamp(c.JumpHeight, 0, 10)
	c.MaxAirJumps = min(max(c.MaxAirJumps, 0), 5)
	c.MaxGroundAngle = clamp(c.MaxGroundAngle, 0, 90)
	c.MaxStairsAngle = clamp(c.MaxStairsAngle, 0, 90)
	c.MaxClimbAngle = clamp(c.MaxClimbAngle, 90, 180)
	c.MaxSnapSpeed = clamp(c.MaxSnapSpeed, 0, 100)
	c.ProbeDistance = max(c.ProbeDistance, 0)
	return c
}

// thresholds are the cosine forms of the configured angles.
type thresholds struct {
	minGroundDot float32
	minStairsDot float32
	minClimbDot  float32
	stairsMask   LayerMask
}

func newThresholds(c Config) thresholds {
	return thresholds{
		minGroundDot: cosDeg(c.MaxGroundAngle),
		minStairsDot: cosDeg(c.MaxStairsAngle),
		minClimbDot:  cosDeg(c.MaxClimbAngle),
		stairsMask:   c.StairsMask,
	}
}

// minDot returns the ground threshold for a surface on layer.
func (t thresholds) minDot(layer Layer) float32 {
	if t.stairsMask.Contains(layer) {
		return t.minStairsDot
	}
	return t.minGroundDot
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(deg) * math.Pi / 180))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
