package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGravityIntegration(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{0, -10, 0})
	b := NewBody(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(b)

	w.Step(0.5)
	// Euler: v = -5, p = 10 - 2.5.
	assert.InDelta(t, -5, b.Velocity.Y(), 1e-5)
	assert.InDelta(t, 7.5, b.Position.Y(), 1e-5)
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := NewWorld()
	floor := NewBody(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 1, 10}, 1, true)
	w.AddBody(floor)
	for i := 0; i < 10; i++ {
		w.Step(0.1)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, floor.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, floor.Velocity)
}

func TestDynamicBodyLandsOnStatic(t *testing.T) {
	w := NewWorld()
	floor := NewBody(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 1, 10}, 1, true)
	crate := NewBody(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(floor)
	w.AddBody(crate)

	for i := 0; i < 240; i++ {
		w.Step(1.0 / 60)
	}
	// Resting on the floor: floor top at 0.5, crate half height 0.5.
	assert.InDelta(t, 1.0, crate.Position.Y(), 0.05)
	assert.InDelta(t, 0, crate.Velocity.Y(), 1e-3)
}

func TestEqualMassesSplitCorrection(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	a := NewBody(mgl32.Vec3{-0.4, 0, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	b := NewBody(mgl32.Vec3{0.4, 0, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(a)
	w.AddBody(b)

	w.Step(1.0 / 60)
	// Overlap of 0.2 split evenly: each moves 0.1 apart along X.
	assert.InDelta(t, -0.5, a.Position.X(), 1e-4)
	assert.InDelta(t, 0.5, b.Position.X(), 1e-4)
}

func TestNonOverlappingPairUntouched(t *testing.T) {
	w := NewWorld()
	w.SetGravity(mgl32.Vec3{})
	a := NewBody(mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	b := NewBody(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{1, 1, 1}, 1, false)
	w.AddBody(a)
	w.AddBody(b)
	w.Step(0.1)
	assert.Equal(t, float32(-5), a.Position.X())
	assert.Equal(t, float32(5), b.Position.X())
}
