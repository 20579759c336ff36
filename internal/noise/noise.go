// Package noise wraps a seeded OpenSimplex primitive with fractal Brownian
// motion, domain warping, and a curl-noise vector field. All sampling is
// deterministic for a given seed, which the terrain and particle kernels rely
// on: samples are taken independently at arbitrary points and must agree.
package noise

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Options controls the fractal shape of a Generator.
// Octaves is the number of noise layers summed (must be >= 1). Persistence
// is the amplitude decay per octave, Lacunarity the frequency growth per
// octave, Frequency the base spatial frequency applied to every sample.
type Options struct {
	Seed        int64
	Octaves     int
	Persistence float32
	Lacunarity  float32
	Frequency   float32
}

// DefaultOptions returns a sane default configuration: four octaves of
// standard fractal falloff at unit frequency.
func DefaultOptions() Options {
	return Options{
		Seed:        1,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Frequency:   1.0,
	}
}

// Generator samples seeded simplex noise and fractal sums of it.
// Generators are stateless after construction and safe for concurrent reads.
type Generator struct {
	opts Options
	base opensimplex.Noise
}

// New returns a Generator for the given options. Octaves < 1 is a
// construction error; non-positive Persistence, Lacunarity, and Frequency
// fall back to the defaults.
func New(opts Options) (*Generator, error) {
	if opts.Octaves < 1 {
		return nil, fmt.Errorf("noise: octaves must be >= 1, got %d", opts.Octaves)
	}
	if opts.Persistence <= 0 {
		opts.Persistence = 0.5
	}
	if opts.Lacunarity <= 0 {
		opts.Lacunarity = 2.0
	}
	if opts.Frequency <= 0 {
		opts.Frequency = 1.0
	}
	return &Generator{opts: opts, base: opensimplex.New(opts.Seed)}, nil
}

// Sample2 returns the raw base noise at (x, y) scaled by the base frequency.
// Output is roughly in [-1, 1].
func (g *Generator) Sample2(x, y float32) float32 {
	f := float64(g.opts.Frequency)
	return float32(g.base.Eval2(float64(x)*f, float64(y)*f))
}

// Sample3 returns the raw base noise at (x, y, z) scaled by the base frequency.
func (g *Generator) Sample3(x, y, z float32) float32 {
	f := float64(g.opts.Frequency)
	return float32(g.base.Eval3(float64(x)*f, float64(y)*f, float64(z)*f))
}

// FBM2 sums Octaves layers of 2D noise at increasing frequency and
// decreasing amplitude, normalized by the accumulated amplitude so the
// result stays in the base noise range. With Octaves == 1 the result is
// exactly Sample2.
func (g *Generator) FBM2(x, y float32) float32 {
	var sum, maxAmp float32
	amp := float32(1)
	freq := float32(1)
	for i := 0; i < g.opts.Octaves; i++ {
		sum += g.Sample2(x*freq, y*freq) * amp
		maxAmp += amp
		amp *= g.opts.Persistence
		freq *= g.opts.Lacunarity
	}
	return sum / maxAmp
}

// FBM3 is FBM2 over a 3D point.
func (g *Generator) FBM3(x, y, z float32) float32 {
	var sum, maxAmp float32
	amp := float32(1)
	freq := float32(1)
	for i := 0; i < g.opts.Octaves; i++ {
		sum += g.Sample3(x*freq, y*freq, z*freq) * amp
		maxAmp += amp
		amp *= g.opts.Persistence
		freq *= g.opts.Lacunarity
	}
	return sum / maxAmp
}

// Fixed offsets decorrelate the warp channels from each other and from the
// final evaluation.
const (
	warpOffsetX = 37.41
	warpOffsetY = -17.3
	warpOffsetZ = 101.9
)

// WarpedFBM2 evaluates FBM2 at a point offset by the noise's own output
// (domain warping), producing organic, non-axis-aligned patterns.
// strength scales the offset; 0 reduces to plain FBM2.
func (g *Generator) WarpedFBM2(x, y, strength float32) float32 {
	ox := g.FBM2(x+warpOffsetX, y)
	oy := g.FBM2(x, y+warpOffsetY)
	return g.FBM2(x+ox*strength, y+oy*strength)
}

// WarpedFBM3 is WarpedFBM2 over a 3D point.
func (g *Generator) WarpedFBM3(x, y, z, strength float32) float32 {
	ox := g.FBM3(x+warpOffsetX, y, z)
	oy := g.FBM3(x, y+warpOffsetY, z)
	oz := g.FBM3(x, y, z+warpOffsetZ)
	return g.FBM3(x+ox*strength, y+oy*strength, z+oz*strength)
}

// Curl3 returns a divergence-free 3D vector field value at p, built from the
// finite-difference curl of three decorrelated FBM potentials. Used as
// particle turbulence: divergence-free flow keeps particles swirling instead
// of clumping. eps is the finite-difference step; eps <= 0 uses a default.
func (g *Generator) Curl3(p mgl32.Vec3, eps float32) mgl32.Vec3 {
	if eps <= 0 {
		eps = 0.01
	}
	inv2e := 1 / (2 * eps)

	p1 := func(x, y, z float32) float32 { return g.FBM3(x, y, z) }
	p2 := func(x, y, z float32) float32 { return g.FBM3(x+warpOffsetX, y+warpOffsetY, z) }
	p3 := func(x, y, z float32) float32 { return g.FBM3(x, y+warpOffsetY, z+warpOffsetZ) }

	x, y, z := p.X(), p.Y(), p.Z()

	dp3dy := (p3(x, y+eps, z) - p3(x, y-eps, z)) * inv2e
	dp2dz := (p2(x, y, z+eps) - p2(x, y, z-eps)) * inv2e
	dp1dz := (p1(x, y, z+eps) - p1(x, y, z-eps)) * inv2e
	dp3dx := (p3(x+eps, y, z) - p3(x-eps, y, z)) * inv2e
	dp2dx := (p2(x+eps, y, z) - p2(x-eps, y, z)) * inv2e
	dp1dy := (p1(x, y+eps, z) - p1(x, y-eps, z)) * inv2e

	return mgl32.Vec3{dp3dy - dp2dz, dp1dz - dp3dx, dp2dx - dp1dy}
}
