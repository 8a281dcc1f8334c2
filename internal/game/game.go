// Package game runs the interactive demo: window, follow camera, fixed-step
// simulation and the debug HUD.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"spherewalk/internal/camera"
	"spherewalk/internal/config"
	"spherewalk/internal/logger"
	"spherewalk/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type frameTiming struct {
	steps    int
	updateMs float64
	drawMs   float64
	culled   int
}

type Game struct {
	Config   *config.Config
	World    *world.World
	Renderer *world.Renderer
	Camera   *camera.FollowCamera
	HUD      *HUD

	stepper *FixedStepper
	timing  frameTiming
	log     *slog.Logger
}

func New(cfg *config.Config) *Game {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Game{
		Config:   cfg,
		Renderer: world.NewRenderer(),
		HUD:      NewHUD(cfg.Controller),
		stepper:  NewFixedStepper(cfg.Simulation.FixedStep, cfg.Simulation.MaxStepsPerFrame),
		log:      logger.For("game"),
	}
}

// Run opens the window and blocks until it is closed. It fails only if the
// level cannot be loaded at startup.
func (g *Game) Run() error {
	win := g.Config.Window
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(win.TargetFPS)
	rl.DisableCursor()
	initRayguiStyle()

	if err := g.load(); err != nil {
		return err
	}

	// Models need the GL context created by InitWindow
	g.Renderer.Initialize()
	defer g.Renderer.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
	return nil
}

// load builds the world from the configured level and wires the agent to
// the keyboard and the camera.
func (g *Game) load() error {
	w, err := world.Load(g.Config.Level, g.Config.Controller)
	if err != nil {
		return fmt.Errorf("load level %s: %w", g.Config.Level, err)
	}
	g.World = w

	pos := w.Agent.Transform.Position
	if g.Camera == nil {
		g.Camera = camera.New(pos)
	}
	g.Camera.Follow(pos, w.Controller().Up(), 1)

	w.Mover.Sample = sampleKeyboard
	w.Mover.Space = g.Camera
	g.HUD.Watch(w.Controller())
	g.HUD.tuning = tuningFrom(w.Controller().Config())
	g.stepper.Reset()
	return nil
}

func (g *Game) reload() {
	if err := g.load(); err != nil {
		g.log.Error("reload failed, keeping current level", "err", err)
		return
	}
	g.log.Info("level reloaded", "level", g.Config.Level)
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsCursorHidden() {
		mouse := rl.GetMouseDelta()
		g.Camera.Orbit(mouse.X, mouse.Y)
	}
	g.Camera.Zoom(rl.GetMouseWheelMove())

	// Input is sampled every frame; the simulation runs at the fixed rate
	g.World.Update(deltaTime)
	g.timing.steps = g.stepper.Advance(deltaTime, g.World.FixedUpdate)

	c := g.World.Controller()
	g.Camera.Follow(g.World.Agent.Transform.Position, c.Up(), deltaTime)

	if rl.IsKeyPressed(rl.KeyF1) {
		g.HUD.Visible = !g.HUD.Visible
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.Renderer.ShowGizmos = !g.Renderer.ShowGizmos
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		// Free the cursor to use the sliders
		if rl.IsCursorHidden() {
			rl.EnableCursor()
		} else {
			rl.DisableCursor()
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reload()
	}

	g.timing.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	cam := g.Camera.GetRaylibCamera()
	aspect := float32(rl.GetScreenWidth()) / float32(max(rl.GetScreenHeight(), 1))

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(cam)
	g.Renderer.Draw(g.World, cam, aspect)
	rl.EndMode3D()
	g.timing.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0
	g.timing.culled = g.Renderer.Culled()

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	rl.DrawText("WASD to move, Space to jump, Shift to climb, Mouse to look", 10, 10, 20, rl.LightGray)
	rl.DrawText("F1 HUD, G gizmos, R reload, Tab cursor", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	g.HUD.Draw(g.World.Controller(), g.timing)
}
