package steering

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeekClosesDistance(t *testing.T) {
	a := NewAgent(mgl32.Vec3{0, 0, 0}, 4, 10, 1)
	target := mgl32.Vec3{10, 0, 0}

	start := target.Sub(a.Position).Len()
	for i := 0; i < 120; i++ {
		a.Apply(a.Seek(target), 1.0/60)
	}
	end := target.Sub(a.Position).Len()
	assert.Less(t, end, start)
}

func TestSeekAtTargetIsZeroForce(t *testing.T) {
	a := NewAgent(mgl32.Vec3{1, 2, 3}, 4, 10, 1)
	assert.Equal(t, mgl32.Vec3{}, a.Seek(mgl32.Vec3{1, 2, 3}))
}

func TestFleeOpposesSeek(t *testing.T) {
	a := NewAgent(mgl32.Vec3{0, 0, 0}, 4, 10, 1)
	target := mgl32.Vec3{5, 0, 0}
	seek := a.Seek(target)
	flee := a.Flee(target)
	// With zero velocity the two desired directions are exact opposites.
	assert.InDelta(t, -seek.X(), flee.X(), 1e-5)
	assert.InDelta(t, -seek.Y(), flee.Y(), 1e-5)
	assert.InDelta(t, -seek.Z(), flee.Z(), 1e-5)
}

func TestArriveStopsAtTarget(t *testing.T) {
	a := NewAgent(mgl32.Vec3{0, 0, 0}, 4, 20, 1)
	target := mgl32.Vec3{6, 0, 0}

	for i := 0; i < 600; i++ {
		a.Apply(a.Arrive(target, 2), 1.0/60)
	}
	assert.InDelta(t, 6, a.Position.X(), 0.2)
	assert.Less(t, a.Velocity.Len(), float32(0.5))
}

func TestSpeedNeverExceedsMax(t *testing.T) {
	a := NewAgent(mgl32.Vec3{0, 0, 0}, 3, 100, 1)
	target := mgl32.Vec3{100, 0, 0}
	for i := 0; i < 300; i++ {
		a.Apply(a.Seek(target), 1.0/60)
		require.LessOrEqual(t, a.Velocity.Len(), float32(3)*1.0001)
	}
}

func TestForceClampedToMaxForce(t *testing.T) {
	a := NewAgent(mgl32.Vec3{0, 0, 0}, 10, 2, 1)
	a.Apply(mgl32.Vec3{1000, 0, 0}, 1)
	// Force clamped to 2, so after one second the speed is at most 2.
	assert.LessOrEqual(t, a.Velocity.Len(), float32(2)*1.0001)
}

func TestWanderIsDeterministicAndMoves(t *testing.T) {
	run := func(seed int64) mgl32.Vec3 {
		a := NewAgent(mgl32.Vec3{0, 0, 0}, 3, 6, seed)
		for i := 0; i < 180; i++ {
			a.Apply(a.Wander(2, 1, 0.3), 1.0/60)
		}
		return a.Position
	}
	assert.Equal(t, run(5), run(5))
	assert.NotEqual(t, run(5), run(6))

	end := run(5)
	assert.Greater(t, end.Len(), float32(0.1))
	// Wander steers in the XZ plane only.
	assert.Zero(t, end.Y())
}

func TestNegativeDtIsNoOp(t *testing.T) {
	a := NewAgent(mgl32.Vec3{1, 1, 1}, 3, 6, 1)
	a.Apply(mgl32.Vec3{5, 0, 0}, -1)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, a.Position)
	assert.Equal(t, mgl32.Vec3{}, a.Velocity)
}
