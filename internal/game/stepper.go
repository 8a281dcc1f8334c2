package game

// FixedStepper turns variable frame times into a whole number of fixed
// simulation steps. Leftover time carries into the next frame.
type FixedStepper struct {
	Step     float32
	MaxSteps int

	acc float32
}

func NewFixedStepper(step float32, maxSteps int) *FixedStepper {
	return &FixedStepper{Step: step, MaxSteps: maxSteps}
}

// Advance adds frameTime to the accumulator and calls fn once per whole step.
// It returns the number of steps taken. When MaxSteps is reached the backlog
// is dropped so a long stall does not cause a spiral of catch-up frames.
func (s *FixedStepper) Advance(frameTime float32, fn func(dt float32)) int {
	if s.Step <= 0 || frameTime <= 0 {
		return 0
	}
	s.acc += frameTime
	steps := 0
	for s.acc >= s.Step {
		if s.MaxSteps > 0 && steps >= s.MaxSteps {
			s.acc = 0
			break
		}
		fn(s.Step)
		s.acc -= s.Step
		steps++
	}
	return steps
}

// Alpha is the fraction of a step left in the accumulator.
func (s *FixedStepper) Alpha() float32 {
	if s.Step <= 0 {
		return 0
	}
	return s.acc / s.Step
}

// Reset drops any accumulated time.
func (s *FixedStepper) Reset() {
	s.acc = 0
}
