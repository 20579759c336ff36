package particles

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 0
	_, err := New(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.Lifetime = 0
	_, err = New(opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.Rate = -1
	_, err = New(opts)
	assert.Error(t, err)
}

func TestBurstWithinCapacity(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 16
	e, err := New(opts)
	require.NoError(t, err)

	e.EmitBurst(10)
	assert.Equal(t, 10, e.ActiveCount())
}

func TestEmissionCappedAtCapacity(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 8
	e, err := New(opts)
	require.NoError(t, err)

	// Emitting past capacity drops the excess; no error, no growth.
	e.EmitBurst(100)
	assert.Equal(t, 8, e.ActiveCount())
	assert.Equal(t, 8, e.Capacity())
}

func TestRateDrivenEmission(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 64
	opts.Rate = 10 // per second
	opts.Lifetime = 100
	e, err := New(opts)
	require.NoError(t, err)

	// One second of updates at 10/s emits 10 particles.
	for i := 0; i < 10; i++ {
		e.Update(0.1)
	}
	assert.Equal(t, 10, e.ActiveCount())
}

func TestExpiryFreesSlotForReuse(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 1
	opts.Rate = 0
	opts.Lifetime = 1
	e, err := New(opts)
	require.NoError(t, err)

	e.EmitBurst(1)
	require.Equal(t, 1, e.ActiveCount())

	// Advancing past the lifetime in one update deactivates the particle.
	e.Update(1.5)
	assert.Equal(t, 0, e.ActiveCount())

	// The freed slot is reusable: with capacity 1, the next emission must
	// succeed, which is only possible if the slot was returned to the pool.
	e.EmitBurst(1)
	assert.Equal(t, 1, e.ActiveCount())
}

func TestGravityIntegration(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 1
	opts.Rate = 0
	opts.Lifetime = 100
	opts.SpawnRadius = 0
	opts.InitialVelocity = mgl32.Vec3{}
	opts.VelocityJitter = mgl32.Vec3{}
	opts.Forces = Forces{Gravity: mgl32.Vec3{0, -10, 0}}
	e, err := New(opts)
	require.NoError(t, err)

	e.EmitBurst(1)
	e.Update(0.5)
	require.Equal(t, 1, e.ActiveCount())

	// Explicit Euler: v = -10*0.5 = -5; p = v*dt = -2.5 on Y.
	tr := e.Transforms()[0]
	y := tr.Col(3).Y()
	assert.InDelta(t, -2.5, y, 1e-4)
}

func TestInstanceAttributes(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 4
	opts.Rate = 0
	opts.Lifetime = 2
	opts.StartSize = 1
	opts.EndSize = 0
	opts.ColorCount = 3
	opts.Forces = Forces{}
	e, err := New(opts)
	require.NoError(t, err)

	e.EmitBurst(3)
	e.Update(1)
	require.Equal(t, 3, e.ActiveCount())

	colors := map[int32]bool{}
	for _, inst := range e.Instances() {
		assert.InDelta(t, 0.5, inst.AgeFraction, 1e-4, "half of lifetime elapsed")
		assert.InDelta(t, 0.5, inst.Size, 1e-4, "size interpolates with age fraction")
		colors[inst.ColorIndex] = true
	}
	assert.Len(t, colors, 3, "color indices assigned round-robin")
}

func TestUpdateIsDeterministicForSeed(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 7
	a, err := New(opts)
	require.NoError(t, err)
	b, err := New(opts)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		a.Update(1.0 / 60)
		b.Update(1.0 / 60)
	}
	assert.Equal(t, a.ActiveCount(), b.ActiveCount())
	assert.Equal(t, a.Transforms(), b.Transforms())
	assert.Equal(t, a.Instances(), b.Instances())
}

func TestTurbulenceKeepsParticlesFinite(t *testing.T) {
	opts := DefaultOptions()
	opts.Capacity = 32
	opts.Forces = Forces{
		Gravity:         mgl32.Vec3{0, -1, 0},
		Turbulence:      2,
		TurbulenceScale: 0.5,
	}
	e, err := New(opts)
	require.NoError(t, err)

	for i := 0; i < 60; i++ {
		e.Update(1.0 / 60)
	}
	for _, tr := range e.Transforms() {
		p := tr.Col(3)
		for i := 0; i < 3; i++ {
			assert.False(t, p[i] != p[i], "position component %d is NaN", i)
		}
	}
}
