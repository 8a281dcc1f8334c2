package game

import (
	"fmt"
	"math"

	"spherewalk/internal/locomotion"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Indigo dark theme
var (
	colorBgDark        = rl.NewColor(10, 10, 15, 255)
	colorBgPanel       = rl.NewColor(18, 18, 24, 235)
	colorBgElement     = rl.NewColor(28, 28, 38, 255)
	colorBgHover       = rl.NewColor(38, 38, 52, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorAccentLight   = rl.NewColor(167, 139, 250, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))
	gui.SetStyle(gui.DEFAULT, gui.LINE_COLOR, gui.NewColorPropertyValue(rl.NewColor(40, 40, 55, 255)))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// eventLog keeps the most recent controller events, oldest first.
type eventLog struct {
	entries []string
	limit   int
}

func newEventLog(limit int) *eventLog {
	return &eventLog{limit: limit}
}

func (l *eventLog) Add(entry string) {
	if l.limit <= 0 {
		return
	}
	if len(l.entries) == l.limit {
		copy(l.entries, l.entries[1:])
		l.entries = l.entries[:len(l.entries)-1]
	}
	l.entries = append(l.entries, entry)
}

func (l *eventLog) Entries() []string {
	return l.entries
}

// tuning is the subset of the controller config exposed as sliders.
type tuning struct {
	JumpHeight  float32
	MaxAirJumps float32
	MaxSpeed    float32
}

func tuningFrom(cfg locomotion.Config) tuning {
	return tuning{
		JumpHeight:  cfg.JumpHeight,
		MaxAirJumps: float32(cfg.MaxAirJumps),
		MaxSpeed:    cfg.MaxSpeed,
	}
}

// apply writes the slider values into cfg. Air jumps snap to whole numbers.
func (t tuning) apply(cfg locomotion.Config) locomotion.Config {
	cfg.JumpHeight = t.JumpHeight
	cfg.MaxAirJumps = int(math.Round(float64(t.MaxAirJumps)))
	cfg.MaxSpeed = t.MaxSpeed
	return cfg
}

// HUD is the debug overlay: controller state, tuning sliders and a short
// event history.
type HUD struct {
	Visible bool

	tuning tuning
	events *eventLog
}

func NewHUD(cfg locomotion.Config) *HUD {
	return &HUD{
		Visible: true,
		tuning:  tuningFrom(cfg),
		events:  newEventLog(6),
	}
}

// Watch subscribes the HUD to the controller's jump and landing events.
func (h *HUD) Watch(c *locomotion.Controller) {
	c.Jumped.AddListener(func(kind locomotion.JumpKind) {
		h.events.Add(fmt.Sprintf("%.2fs jump (%s)", rl.GetTime(), kind))
	})
	c.Landed.AddListener(func() {
		h.events.Add(fmt.Sprintf("%.2fs landed", rl.GetTime()))
	})
}

// Draw renders the panel and pushes slider changes into the controller.
func (h *HUD) Draw(c *locomotion.Controller, timing frameTiming) {
	if !h.Visible || c == nil {
		return
	}
	const x, y, w = float32(10), float32(90), float32(260)
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: 420}, colorBgPanel)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: 420}, 1, colorAccent)

	s := c.State()
	row := y + 10
	label := func(text string, color rl.Color) {
		rl.DrawText(text, int32(x+10), int32(row), 16, color)
		row += 20
	}
	flag := func(name string, on bool) {
		color := colorTextMuted
		if on {
			color = colorAccentLight
		}
		label(fmt.Sprintf("%-10s %v", name, on), color)
	}

	label("Controller", colorTextPrimary)
	flag("grounded", s.Grounded)
	flag("climbing", s.Climbing)
	flag("steep", s.OnSteep)
	label(fmt.Sprintf("jump phase %d", s.JumpPhase), colorTextSecondary)
	label(fmt.Sprintf("speed      %.2f", rl.Vector3Length(s.Velocity)), colorTextSecondary)
	label(fmt.Sprintf("up (%.2f, %.2f, %.2f)", s.Up.X, s.Up.Y, s.Up.Z), colorTextSecondary)

	row += 6
	label("Tuning", colorTextPrimary)
	before := h.tuning
	slider := func(name string, value, lo, hi float32, format string) float32 {
		label(name, colorTextSecondary)
		bounds := rl.Rectangle{X: x + 10, Y: row, Width: w - 70, Height: 16}
		v := gui.Slider(bounds, "", fmt.Sprintf(format, value), value, lo, hi)
		row += 24
		return v
	}
	h.tuning.JumpHeight = slider("jump height", h.tuning.JumpHeight, 0, 10, "%.1f")
	h.tuning.MaxAirJumps = slider("air jumps", h.tuning.MaxAirJumps, 0, 5, "%.0f")
	h.tuning.MaxSpeed = slider("max speed", h.tuning.MaxSpeed, 0, 30, "%.1f")
	if h.tuning != before {
		c.SetConfig(h.tuning.apply(c.Config()))
	}

	row += 6
	label("Events", colorTextPrimary)
	for _, e := range h.events.Entries() {
		label(e, colorTextMuted)
	}

	row = y + 430
	label(fmt.Sprintf("steps %d  update %.2f ms  draw %.2f ms", timing.steps, timing.updateMs, timing.drawMs), rl.Lime)
	label(fmt.Sprintf("culled %d", timing.culled), rl.Lime)
}
