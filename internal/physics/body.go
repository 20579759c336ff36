package physics

import "github.com/go-gl/mathgl/mgl32"

// Body is a rigid body with position, velocity, and an AABB derived from its
// scale. Static bodies never move and ignore gravity; they exist so dynamic
// bodies have something to land on (e.g. generated terrain tiles).
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Scale    mgl32.Vec3
	Mass     float32
	Static   bool
}

// NewBody returns a body with the given position and scale and zero
// velocity. Non-positive mass defaults to 1.
func NewBody(position, scale mgl32.Vec3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position: position,
		Scale:    scale,
		Mass:     mass,
		Static:   static,
	}
}

// aabb is a body's axis-aligned bounding box: center position, half extents
// from scale. Zero scale components default to 1.
type aabb struct {
	min, max mgl32.Vec3
}

func bodyAABB(b *Body) aabb {
	var half mgl32.Vec3
	for i := 0; i < 3; i++ {
		s := b.Scale[i]
		if s == 0 {
			s = 1
		}
		half[i] = s * 0.5
	}
	return aabb{min: b.Position.Sub(half), max: b.Position.Add(half)}
}

// penetrationAxis returns the overlap depth and axis index (0=X, 1=Y, 2=Z)
// of the minimum penetration between two boxes, or (0, -1) if they do not
// overlap.
func penetrationAxis(a, b aabb) (depth float32, axis int) {
	axis = -1
	for i := 0; i < 3; i++ {
		hi := a.max[i]
		if b.max[i] < hi {
			hi = b.max[i]
		}
		lo := a.min[i]
		if b.min[i] > lo {
			lo = b.min[i]
		}
		overlap := hi - lo
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}
