package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws runtime counters in the top-right corner: FPS, heap
// allocation, and per-frame simulation stats (active particles, mesh
// triangles). All lines are off by default.
type Overlay struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowSimStats  bool
	particleCount int
	triangleCount int

	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastSimText  string
	lastMemStats runtime.MemStats
}

// New returns an overlay with all lines hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetSimStats records the current frame's simulation counters for display.
// Cheap to call every frame; the text is only rebuilt every updateInterval
// frames.
func (o *Overlay) SetSimStats(particles, triangles int) {
	o.particleCount = particles
	o.triangleCount = triangles
}

// Draw renders the enabled overlay lines. Call after the 3D scene in the
// draw loop so the text sits on top.
func (o *Overlay) Draw() {
	o.frameCount++
	update := (o.frameCount % updateInterval) == 0
	if o.ShowFPS && o.lastFpsText == "" {
		update = true
	}
	if o.ShowMemAlloc && o.lastMemText == "" {
		update = true
	}
	if o.ShowSimStats && o.lastSimText == "" {
		update = true
	}

	y := int32(padding)

	if o.ShowFPS {
		if update {
			o.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(o.lastFpsText, y, rl.Green)
		y += lineHeight
	}

	if o.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&o.lastMemStats)
			mb := float64(o.lastMemStats.Alloc) / (1024 * 1024)
			o.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(o.lastMemText, y, rl.Green)
		y += lineHeight
	}

	if o.ShowSimStats {
		if update {
			o.lastSimText = fmt.Sprintf("Particles: %d  Tris: %d", o.particleCount, o.triangleCount)
		}
		drawRight(o.lastSimText, y, rl.SkyBlue)
	}
}

// drawRight draws one text line right-aligned against the screen edge.
func drawRight(text string, y int32, color rl.Color) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	x := int32(rl.GetScreenWidth()) - w - padding
	rl.DrawText(text, x, y, fontSize, color)
}
