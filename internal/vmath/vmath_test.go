package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFadeEndpoints(t *testing.T) {
	assert.Equal(t, float32(1), Fade(0, 10, 20))
	assert.Equal(t, float32(1), Fade(10, 10, 20))
	assert.Equal(t, float32(0), Fade(20, 10, 20))
	assert.Equal(t, float32(0), Fade(100, 10, 20))
}

func TestFadeMonotonic(t *testing.T) {
	prev := Fade(10, 10, 20)
	for d := float32(10); d <= 20; d += 0.25 {
		v := Fade(d, 10, 20)
		assert.LessOrEqual(t, v, prev, "fade must not increase with distance (d=%v)", d)
		assert.False(t, math.IsNaN(float64(v)))
		prev = v
	}
}

func TestFadeCollapsedRange(t *testing.T) {
	// start == end must return a defined value (1), never NaN.
	v := Fade(5, 5, 5)
	assert.Equal(t, float32(1), v)
	// Inverted range is treated the same way.
	assert.Equal(t, float32(1), Fade(3, 5, 2))
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp01(-2))
	assert.Equal(t, float32(1), Clamp01(7))
	assert.Equal(t, float32(0.5), Clamp01(0.5))
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, float32(10), Lerp(10, 20, 0))
}

func TestSmoothStep(t *testing.T) {
	assert.Equal(t, float32(0), SmoothStep(-1))
	assert.Equal(t, float32(1), SmoothStep(2))
	assert.Equal(t, float32(0.5), SmoothStep(0.5))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.False(t, IsFinite(float32(math.NaN())))
	assert.False(t, IsFinite(float32(math.Inf(1))))
}
