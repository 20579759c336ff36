// Package scene holds the 3D camera rig and editor grid. Update runs camera
// logic for the selected mode; Draw renders the world between BeginMode3D
// and EndMode3D. Based on raylib's camera examples.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// CameraMode selects how Update moves the camera.
type CameraMode int

const (
	// ModeFree lets the user fly with mouse and keyboard.
	ModeFree CameraMode = iota
	// ModeOrbit slowly circles the camera target.
	ModeOrbit
)

// Scene holds the camera rig and grid state. One Scene per window.
type Scene struct {
	Camera      rl.Camera3D
	Mode        CameraMode
	GridVisible bool
	cursorDone  bool
}

// New returns a scene with a perspective camera looking at the origin:
// position (14, 12, 14), up (0,1,0), fovy 45°. Grid is visible by default.
func New() *Scene {
	s := &Scene{GridVisible: true}
	s.Camera.Position = rl.NewVector3(14, 12, 14)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// ViewPos returns the camera position as a neutral array for the renderer.
func (s *Scene) ViewPos() [3]float32 {
	return [3]float32{s.Camera.Position.X, s.Camera.Position.Y, s.Camera.Position.Z}
}

// Update runs once per frame and moves the camera for the current mode.
// In ModeFree the cursor is captured for camera control.
func (s *Scene) Update() {
	switch s.Mode {
	case ModeFree:
		if !s.cursorDone {
			rl.DisableCursor()
			s.cursorDone = true
		}
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	case ModeOrbit:
		if s.cursorDone {
			rl.EnableCursor()
			s.cursorDone = false
		}
		rl.UpdateCamera(&s.Camera, rl.CameraOrbital)
	}
}

// Draw renders the grid (when visible) and the world via drawWorld inside a
// single 3D mode block. Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw(drawWorld func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	if drawWorld != nil {
		drawWorld()
	}
	rl.EndMode3D()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and
// axis lines through the origin (X=red, Y=green, Z=blue). Start/end vectors
// are reused to avoid per-frame allocations.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), 0, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), 0, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
