// Headless run of a level with scripted input, for checking controller
// tuning without a window.
package main

import (
	"flag"
	"os"

	"spherewalk/internal/config"
	"spherewalk/internal/locomotion"
	"spherewalk/internal/logger"
	"spherewalk/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the settings file")
	level := flag.String("level", "", "level file, overrides the settings file")
	steps := flag.Int("steps", 1000, "fixed steps to simulate")
	moveX := flag.Float64("move-x", 0, "constant sideways input in [-1, 1]")
	moveY := flag.Float64("move-y", 1, "constant forward input in [-1, 1]")
	jumpEvery := flag.Int("jump-every", 150, "press jump every N steps, 0 never")
	climb := flag.Bool("climb", false, "hold climb the whole run")
	reportEvery := flag.Int("report-every", 100, "log agent state every N steps")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	loadErr := err
	if err != nil {
		cfg = config.Default()
	}
	log := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if loadErr != nil {
		log.Warn("using default settings", "err", loadErr)
	}
	if *level != "" {
		cfg.Level = *level
	}

	w, err := world.Load(cfg.Level, cfg.Controller)
	if err != nil {
		log.Error("load level", "level", cfg.Level, "err", err)
		os.Exit(1)
	}

	step := 0
	w.Mover.Sample = func() locomotion.Input {
		return locomotion.Input{
			Move:  rl.Vector2{X: float32(*moveX), Y: float32(*moveY)},
			Jump:  *jumpEvery > 0 && step > 0 && step%*jumpEvery == 0,
			Climb: *climb,
		}
	}

	c := w.Controller()
	jumps, landings := 0, 0
	c.Jumped.AddListener(func(kind locomotion.JumpKind) {
		jumps++
		log.Debug("jumped", "step", step, "kind", kind.String())
	})
	c.Landed.AddListener(func() {
		landings++
		log.Debug("landed", "step", step)
	})

	dt := cfg.Simulation.FixedStep
	for step = 0; step < *steps; step++ {
		// One input sample per step, as if rendering at the fixed rate
		w.Update(dt)
		w.FixedUpdate(dt)

		if *reportEvery > 0 && (step+1)%*reportEvery == 0 {
			s := c.State()
			p := w.Agent.Transform.Position
			log.Info("agent",
				"step", step+1,
				"pos", []float32{p.X, p.Y, p.Z},
				"speed", rl.Vector3Length(s.Velocity),
				"grounded", s.Grounded,
				"climbing", s.Climbing,
				"steep", s.OnSteep,
				"jumpPhase", s.JumpPhase,
				"up", []float32{s.Up.X, s.Up.Y, s.Up.Z},
			)
		}
	}

	log.Info("done", "steps", *steps, "jumps", jumps, "landings", landings,
		"sleeping", w.Physics.SleepingCount())
}
