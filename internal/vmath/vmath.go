// Package vmath holds the small scalar helpers shared by the procedural
// kernels (sdf, noise, mcubes, particles). Everything here is float32 and
// allocation-free so it can sit inside per-sample and per-frame loops.
package vmath

import "github.com/chewxy/math32"

// Clamp limits v to [lo, hi]. If lo > hi the bounds are used as given (no swap).
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Lerp linearly interpolates from a to b by t (not clamped).
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// SmoothStep is Perlin-style cubic easing: 3t^2 - 2t^3, clamped to [0,1].
func SmoothStep(t float32) float32 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// Fade returns a distance attenuation factor: 1 at distance <= start, 0 at
// distance >= end, and a monotonic linear falloff between. A degenerate range
// (end <= start) returns 1 instead of dividing by zero, so callers never see
// NaN from a collapsed fade band.
func Fade(distance, start, end float32) float32 {
	if distance <= start {
		return 1
	}
	if distance >= end {
		return 0
	}
	if end <= start {
		return 1
	}
	return 1 - (distance-start)/(end-start)
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
