package noise

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidOctaves(t *testing.T) {
	_, err := New(Options{Octaves: 0})
	assert.Error(t, err)
	_, err = New(Options{Octaves: -3})
	assert.Error(t, err)
}

func TestSingleOctaveEqualsBaseNoise(t *testing.T) {
	opts := DefaultOptions()
	opts.Octaves = 1
	g, err := New(opts)
	require.NoError(t, err)

	for _, pt := range [][2]float32{{0, 0}, {1.5, -2.25}, {10, 3.7}, {-0.01, 99}} {
		assert.InDelta(t, g.Sample2(pt[0], pt[1]), g.FBM2(pt[0], pt[1]), 1e-6,
			"one octave is the base noise at (%v,%v)", pt[0], pt[1])
	}
	assert.InDelta(t, g.Sample3(1, 2, 3), g.FBM3(1, 2, 3), 1e-6)
}

func TestDeterministicBySeed(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 42
	a, err := New(opts)
	require.NoError(t, err)
	b, err := New(opts)
	require.NoError(t, err)

	for _, pt := range [][2]float32{{0.3, 0.9}, {-4, 17}, {123.4, -56.7}} {
		assert.Equal(t, a.FBM2(pt[0], pt[1]), b.FBM2(pt[0], pt[1]))
		assert.Equal(t, a.WarpedFBM2(pt[0], pt[1], 2), b.WarpedFBM2(pt[0], pt[1], 2))
	}

	opts.Seed = 43
	c, err := New(opts)
	require.NoError(t, err)
	same := true
	for _, pt := range [][2]float32{{0.3, 0.9}, {-4, 17}, {123.4, -56.7}} {
		if a.FBM2(pt[0], pt[1]) != c.FBM2(pt[0], pt[1]) {
			same = false
		}
	}
	assert.False(t, same, "different seeds should produce different fields")
}

func TestFBMStaysNormalized(t *testing.T) {
	g, err := New(DefaultOptions())
	require.NoError(t, err)
	for x := float32(-5); x <= 5; x += 0.7 {
		for y := float32(-5); y <= 5; y += 0.7 {
			v := g.FBM2(x, y)
			assert.GreaterOrEqual(t, v, float32(-1.01))
			assert.LessOrEqual(t, v, float32(1.01))
		}
	}
}

func TestWarpedZeroStrengthIsPlainFBM(t *testing.T) {
	g, err := New(DefaultOptions())
	require.NoError(t, err)
	assert.InDelta(t, g.FBM2(2, 3), g.WarpedFBM2(2, 3, 0), 1e-6)
	assert.InDelta(t, g.FBM3(2, 3, 4), g.WarpedFBM3(2, 3, 4, 0), 1e-6)
}

func TestCurlIsDeterministicAndBounded(t *testing.T) {
	g, err := New(DefaultOptions())
	require.NoError(t, err)
	p := mgl32.Vec3{1.5, -0.25, 3}
	v1 := g.Curl3(p, 0.01)
	v2 := g.Curl3(p, 0.01)
	assert.Equal(t, v1, v2)
	// Finite-difference curl of bounded noise stays finite.
	for i := 0; i < 3; i++ {
		assert.False(t, v1[i] != v1[i], "curl component %d is NaN", i)
	}
}
