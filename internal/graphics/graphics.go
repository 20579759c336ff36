// Package graphics owns the window and the main loop, keeping raylib's
// lifecycle out of the rest of the engine.
package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	defaultWidth  = 1280
	defaultHeight = 720
	targetFPS     = 60
)

// Run opens the window and drives the frame loop. Each frame it calls
// update with the elapsed seconds since the previous frame (the dt every
// per-frame kernel consumes), then clears the screen and calls draw.
// Returns when the window is closed.
func Run(title string, update func(dt float32), draw func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWidth, defaultHeight, title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(targetFPS)

	for !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 20, 26, 255))
		draw()
		rl.EndDrawing()
	}
}
