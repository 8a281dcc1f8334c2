package game

import (
	"spherewalk/internal/locomotion"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// sampleKeyboard reads WASD for movement, Space for jump and Shift or E to
// climb. The mover fills in the camera as the input space.
func sampleKeyboard() locomotion.Input {
	var move rl.Vector2
	if rl.IsKeyDown(rl.KeyW) {
		move.Y++
	}
	if rl.IsKeyDown(rl.KeyS) {
		move.Y--
	}
	if rl.IsKeyDown(rl.KeyD) {
		move.X++
	}
	if rl.IsKeyDown(rl.KeyA) {
		move.X--
	}
	return locomotion.Input{
		Move:  move,
		Jump:  rl.IsKeyPressed(rl.KeySpace),
		Climb: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyE),
	}
}
