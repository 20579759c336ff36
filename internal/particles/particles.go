// Package particles implements a fixed-capacity pooled particle emitter.
// Slots are activated and deactivated by index (no allocation after
// construction, no compaction of the pool itself); each Update is one linear
// pass over the pool that handles emission, aging, Euler integration under
// the configured forces, and writeback of per-instance transforms and render
// attributes into pre-allocated buffers shaped for instanced rendering.
package particles

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/noise"
	"strata/internal/vmath"
)

// Forces are the accelerations applied to every active particle.
// Turbulence > 0 enables curl-noise turbulence sampled at the particle
// position scaled by TurbulenceScale.
type Forces struct {
	Gravity         mgl32.Vec3
	Wind            mgl32.Vec3
	Turbulence      float32
	TurbulenceScale float32
}

// Options configures an Emitter. Capacity and Lifetime must be positive and
// Rate non-negative; these are validated at construction (programmer errors,
// not runtime conditions).
type Options struct {
	Capacity int     // pool size, fixed for the emitter's lifetime
	Rate     float32 // emissions per second
	Lifetime float32 // seconds a particle stays active

	Origin          mgl32.Vec3
	SpawnRadius     float32
	InitialVelocity mgl32.Vec3
	VelocityJitter  mgl32.Vec3 // per-axis uniform jitter added to the initial velocity

	SpinRate   float32 // radians per second added to each particle's rotation
	StartSize  float32
	EndSize    float32
	ColorCount int // number of palette entries; color indices are assigned round-robin

	Seed   int64
	Forces Forces
}

// DefaultOptions returns a small omnidirectional burst emitter.
func DefaultOptions() Options {
	return Options{
		Capacity:        256,
		Rate:            60,
		Lifetime:        2,
		SpawnRadius:     0.1,
		InitialVelocity: mgl32.Vec3{0, 2, 0},
		VelocityJitter:  mgl32.Vec3{0.5, 0.5, 0.5},
		StartSize:       0.2,
		EndSize:         0.05,
		ColorCount:      1,
		Seed:            1,
		Forces:          Forces{Gravity: mgl32.Vec3{0, -9.8, 0}},
	}
}

// Instance is one particle's render attributes for the current frame.
// AgeFraction in [0,1) drives color/size/opacity interpolation in the
// material; ColorIndex selects a palette entry.
type Instance struct {
	AgeFraction float32
	Size        float32
	Rotation    float32
	ColorIndex  int32
}

// Emitter owns a fixed pool of particle records and the output buffers the
// renderer consumes. One owner mutates it (the per-frame caller); it is not
// safe for concurrent use.
type Emitter struct {
	opts Options
	rng  *rand.Rand
	turb *noise.Generator

	accum float32

	// Pool storage, slot-indexed.
	pos      []mgl32.Vec3
	vel      []mgl32.Vec3
	age      []float32
	rot      []float32
	colorIdx []int32
	active   []bool

	free        []int // LIFO free list of inactive slot indices
	activeCount int
	nextColor   int32

	// Writeback buffers: the first ActiveCount entries are valid each frame.
	transforms []mgl32.Mat4
	instances  []Instance
}

// New validates opts and builds an emitter with all slots free.
func New(opts Options) (*Emitter, error) {
	if opts.Capacity <= 0 {
		return nil, fmt.Errorf("particles: capacity must be positive, got %d", opts.Capacity)
	}
	if opts.Lifetime <= 0 {
		return nil, fmt.Errorf("particles: lifetime must be positive, got %v", opts.Lifetime)
	}
	if opts.Rate < 0 {
		return nil, fmt.Errorf("particles: emission rate must be non-negative, got %v", opts.Rate)
	}
	if opts.ColorCount < 1 {
		opts.ColorCount = 1
	}
	if opts.StartSize <= 0 {
		opts.StartSize = 0.1
	}
	if opts.EndSize < 0 {
		opts.EndSize = 0
	}
	if opts.Forces.TurbulenceScale <= 0 {
		opts.Forces.TurbulenceScale = 1
	}

	e := &Emitter{
		opts:       opts,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		pos:        make([]mgl32.Vec3, opts.Capacity),
		vel:        make([]mgl32.Vec3, opts.Capacity),
		age:        make([]float32, opts.Capacity),
		rot:        make([]float32, opts.Capacity),
		colorIdx:   make([]int32, opts.Capacity),
		active:     make([]bool, opts.Capacity),
		free:       make([]int, 0, opts.Capacity),
		transforms: make([]mgl32.Mat4, opts.Capacity),
		instances:  make([]Instance, opts.Capacity),
	}
	for i := opts.Capacity - 1; i >= 0; i-- {
		e.free = append(e.free, i)
	}
	if opts.Forces.Turbulence > 0 {
		nopts := noise.DefaultOptions()
		nopts.Seed = opts.Seed
		nopts.Octaves = 2
		g, err := noise.New(nopts)
		if err != nil {
			return nil, err
		}
		e.turb = g
	}
	return e, nil
}

// Capacity returns the fixed pool size.
func (e *Emitter) Capacity() int { return e.opts.Capacity }

// ActiveCount returns the number of currently active particles; the first
// ActiveCount entries of Transforms and Instances are valid.
func (e *Emitter) ActiveCount() int { return e.activeCount }

// Transforms returns the per-instance world transforms written by the last
// Update, compacted so active instances are contiguous.
func (e *Emitter) Transforms() []mgl32.Mat4 { return e.transforms[:e.activeCount] }

// Instances returns the per-instance render attributes written by the last Update.
func (e *Emitter) Instances() []Instance { return e.instances[:e.activeCount] }

// Update advances the emitter by dt seconds: emission, aging/expiry,
// integration, and buffer writeback in one O(capacity) pass. Negative dt is
// treated as zero. When the pool is full, excess emissions are silently
// dropped; a full pool is a steady-state condition, not an error.
func (e *Emitter) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}

	// Emission: accumulate fractional emissions, spend whole ones. The
	// accumulator is drained whether or not a slot is free so a full pool
	// drops emissions instead of queueing them.
	e.accum += e.opts.Rate * dt
	for e.accum >= 1 {
		e.accum--
		e.emitOne()
	}

	f := e.opts.Forces
	out := 0
	for i := 0; i < e.opts.Capacity; i++ {
		if !e.active[i] {
			continue
		}
		e.age[i] += dt
		if e.age[i] >= e.opts.Lifetime {
			e.deactivate(i)
			continue
		}

		// Explicit Euler: v += a*dt, p += v*dt.
		accel := f.Gravity.Add(f.Wind)
		if e.turb != nil {
			sp := e.pos[i].Mul(f.TurbulenceScale)
			accel = accel.Add(e.turb.Curl3(sp, 0.1).Mul(f.Turbulence))
		}
		e.vel[i] = e.vel[i].Add(accel.Mul(dt))
		e.pos[i] = e.pos[i].Add(e.vel[i].Mul(dt))
		e.rot[i] += e.opts.SpinRate * dt

		ageFrac := vmath.Clamp01(e.age[i] / e.opts.Lifetime)
		size := vmath.Lerp(e.opts.StartSize, e.opts.EndSize, ageFrac)

		p := e.pos[i]
		e.transforms[out] = mgl32.Translate3D(p.X(), p.Y(), p.Z()).
			Mul4(mgl32.HomogRotate3DY(e.rot[i])).
			Mul4(mgl32.Scale3D(size, size, size))
		e.instances[out] = Instance{
			AgeFraction: ageFrac,
			Size:        size,
			Rotation:    e.rot[i],
			ColorIndex:  e.colorIdx[i],
		}
		out++
	}
	e.activeCount = out
}

// EmitBurst activates up to n particles immediately, independent of the
// rate accumulator. Emissions beyond the free slots are dropped.
func (e *Emitter) EmitBurst(n int) {
	for i := 0; i < n; i++ {
		if !e.emitOne() {
			return
		}
	}
}

// emitOne activates one free slot; returns false when the pool is full.
func (e *Emitter) emitOne() bool {
	if len(e.free) == 0 {
		return false
	}
	i := e.free[len(e.free)-1]
	e.free = e.free[:len(e.free)-1]

	e.pos[i] = e.opts.Origin.Add(e.randomInSphere(e.opts.SpawnRadius))
	e.vel[i] = e.opts.InitialVelocity.Add(mgl32.Vec3{
		e.jitter(e.opts.VelocityJitter.X()),
		e.jitter(e.opts.VelocityJitter.Y()),
		e.jitter(e.opts.VelocityJitter.Z()),
	})
	e.age[i] = 0
	e.rot[i] = e.rng.Float32() * 2 * math32.Pi
	e.colorIdx[i] = e.nextColor
	e.nextColor = (e.nextColor + 1) % int32(e.opts.ColorCount)
	e.active[i] = true
	e.activeCount++
	return true
}

// deactivate returns slot i to the free pool. Index-based, no compaction.
func (e *Emitter) deactivate(i int) {
	e.active[i] = false
	e.free = append(e.free, i)
	e.activeCount--
}

// jitter returns a uniform sample in [-extent, extent].
func (e *Emitter) jitter(extent float32) float32 {
	if extent <= 0 {
		return 0
	}
	return (e.rng.Float32()*2 - 1) * extent
}

// randomInSphere returns a uniform point in a sphere of the given radius
// (rejection sampling; the unit cube hit rate makes this a short loop).
func (e *Emitter) randomInSphere(radius float32) mgl32.Vec3 {
	if radius <= 0 {
		return mgl32.Vec3{}
	}
	for {
		v := mgl32.Vec3{
			e.rng.Float32()*2 - 1,
			e.rng.Float32()*2 - 1,
			e.rng.Float32()*2 - 1,
		}
		if v.Dot(v) <= 1 {
			return v.Mul(radius)
		}
	}
}
