// Package terrain composes the noise, sdf, and mcubes kernels into ready-made
// terrain generation: a fractal heightfield surface, optionally carved by
// warped-noise caves, meshed with marching cubes. Output is deterministic for
// a given seed.
package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/mcubes"
	"strata/internal/noise"
	"strata/internal/sdf"
)

// minHeight keeps the terrain floor above the mesh bounds so the surface
// never degenerates to the bounding box bottom.
const minHeight = 0.15

// Options controls terrain generation.
// Size is the world extent: X/Z footprint and maximum height on Y.
// Resolution is the marching-cubes grid density per axis.
// Octaves, Frequency, Lacunarity, and Gain control the fractal noise shape,
// as in the engine's height map generator. Seed == 0 is a valid fixed seed,
// not a time-based one: terrain must be reproducible across runs.
type Options struct {
	Size       mgl32.Vec3
	Resolution [3]int

	Seed       int64
	Octaves    int
	Frequency  float32
	Lacunarity float32
	Gain       float32

	// Caves carves tunnels where a domain-warped 3D noise field exceeds
	// CaveThreshold, blended over CaveBlend world units.
	Caves         bool
	CaveThreshold float32
	CaveBlend     float32
	CaveWarp      float32
}

// DefaultOptions returns a sane default configuration: a 32×8×32 world at
// one cell per world unit, four noise octaves, no caves.
func DefaultOptions() Options {
	return Options{
		Size:          mgl32.Vec3{32, 8, 32},
		Resolution:    [3]int{32, 16, 32},
		Seed:          1,
		Octaves:       4,
		Frequency:     0.08,
		Lacunarity:    2.0,
		Gain:          0.5,
		CaveThreshold: 0.35,
		CaveBlend:     0.75,
		CaveWarp:      2.0,
	}
}

// sanitize fills invalid shape parameters with defaults, in the spirit of
// the engine's height map generator: these are tuning knobs, not contracts.
func (o Options) sanitize() Options {
	d := DefaultOptions()
	if o.Size.X() <= 0 || o.Size.Y() <= 0 || o.Size.Z() <= 0 {
		o.Size = d.Size
	}
	for i := 0; i < 3; i++ {
		if o.Resolution[i] < 1 {
			o.Resolution[i] = d.Resolution[i]
		}
	}
	if o.Octaves < 1 {
		o.Octaves = d.Octaves
	}
	if o.Frequency <= 0 {
		o.Frequency = d.Frequency
	}
	if o.Lacunarity <= 0 {
		o.Lacunarity = d.Lacunarity
	}
	if o.Gain <= 0 {
		o.Gain = d.Gain
	}
	if o.CaveThreshold <= 0 {
		o.CaveThreshold = d.CaveThreshold
	}
	if o.CaveBlend <= 0 {
		o.CaveBlend = d.CaveBlend
	}
	if o.CaveWarp <= 0 {
		o.CaveWarp = d.CaveWarp
	}
	return o
}

// Field builds the terrain's signed-distance field without meshing it, so
// callers can compose it further (e.g. subtract structures) before handing
// it to the mesher. The field is a heightfield plane displaced by fractal
// noise, with optional smooth cave subtraction.
func Field(opts Options) (sdf.Field, error) {
	opts = opts.sanitize()

	surface, err := noise.New(noise.Options{
		Seed:        opts.Seed,
		Octaves:     opts.Octaves,
		Persistence: opts.Gain,
		Lacunarity:  opts.Lacunarity,
		Frequency:   opts.Frequency,
	})
	if err != nil {
		return nil, err
	}

	maxHeight := opts.Size.Y()
	// Plane through the origin with +Y normal gives distance = p.Y; displacing
	// it by -height(x,z) puts the zero set at the terrain surface.
	ground := sdf.Displace(sdf.Plane(mgl32.Vec3{0, 1, 0}, 0), func(p mgl32.Vec3) float32 {
		h := surface.FBM2(p.X(), p.Z()) // roughly [-1,1]
		h = (h + 1) * 0.5               // [0,1]
		return -(minHeight + h*(maxHeight-minHeight))
	})

	if !opts.Caves {
		return ground, nil
	}

	caves, err := noise.New(noise.Options{
		Seed:        opts.Seed + 1,
		Octaves:     3,
		Persistence: opts.Gain,
		Lacunarity:  opts.Lacunarity,
		Frequency:   opts.Frequency * 2,
	})
	if err != nil {
		return nil, err
	}
	// Negative inside a cave: where the warped noise exceeds the threshold.
	caveField := sdf.Field(func(p mgl32.Vec3) float32 {
		return opts.CaveThreshold - caves.WarpedFBM3(p.X(), p.Y(), p.Z(), opts.CaveWarp)
	})
	return sdf.SmoothSubtraction(ground, caveField, opts.CaveBlend), nil
}

// Generate meshes the terrain field over the world bounds. The bounds are
// padded half a cell below Y=0 and above the maximum height so the surface
// never coincides with the sampling lattice boundary.
func Generate(opts Options) (*mcubes.Mesh, error) {
	opts = opts.sanitize()
	field, err := Field(opts)
	if err != nil {
		return nil, err
	}

	halfX := opts.Size.X() * 0.5
	halfZ := opts.Size.Z() * 0.5
	padY := opts.Size.Y() / float32(opts.Resolution[1]) * 0.5
	return mcubes.Generate(mcubes.Field(field), mcubes.Options{
		Min:        mgl32.Vec3{-halfX, -padY, -halfZ},
		Max:        mgl32.Vec3{halfX, opts.Size.Y() + padY, halfZ},
		Resolution: opts.Resolution,
	})
}

// HeightSampler samples the surface height of the un-carved terrain
// repeatedly without rebuilding the noise generator per call. Useful for
// placing props and spawn points on the ground.
type HeightSampler struct {
	gen       *noise.Generator
	maxHeight float32
}

// NewHeightSampler builds a sampler for the given terrain options.
func NewHeightSampler(opts Options) (*HeightSampler, error) {
	opts = opts.sanitize()
	surface, err := noise.New(noise.Options{
		Seed:        opts.Seed,
		Octaves:     opts.Octaves,
		Persistence: opts.Gain,
		Lacunarity:  opts.Lacunarity,
		Frequency:   opts.Frequency,
	})
	if err != nil {
		return nil, err
	}
	return &HeightSampler{gen: surface, maxHeight: opts.Size.Y()}, nil
}

// At returns the surface height at (x, z), always in [minHeight, Size.Y].
func (s *HeightSampler) At(x, z float32) float32 {
	h := (s.gen.FBM2(x, z) + 1) * 0.5
	return minHeight + h*(s.maxHeight-minHeight)
}

// Heightmap samples the surface into a row-major w×h grid covering the
// terrain's X/Z footprint, for flat worlds and minimaps that do not need a
// full 3D mesh.
func Heightmap(opts Options, w, h int) ([]float32, error) {
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("terrain: heightmap needs at least a 2x2 grid, got %dx%d", w, h)
	}
	opts = opts.sanitize()
	s, err := NewHeightSampler(opts)
	if err != nil {
		return nil, err
	}
	out := make([]float32, w*h)
	for row := 0; row < h; row++ {
		z := (float32(row)/float32(h-1) - 0.5) * opts.Size.Z()
		for col := 0; col < w; col++ {
			x := (float32(col)/float32(w-1) - 0.5) * opts.Size.X()
			out[row*w+col] = s.At(x, z)
		}
	}
	return out, nil
}

// HeightAt samples the surface height at a single point. For repeated
// sampling build a HeightSampler instead.
func HeightAt(opts Options, x, z float32) (float32, error) {
	s, err := NewHeightSampler(opts)
	if err != nil {
		return 0, err
	}
	return s.At(x, z), nil
}
