// Package sdf provides signed-distance-field primitives and boolean
// operators for procedural modeling. A Field is a pure function from a point
// to the signed distance of the nearest surface (negative inside, positive
// outside); primitives are composed algebraically and sampled on demand, so
// there is no stored geometry and every sample is independent.
package sdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/vmath"
)

// Field evaluates the signed distance from p to a surface.
// Fields must be deterministic: grid samples are taken independently at
// arbitrary points and have to compose consistently.
type Field func(p mgl32.Vec3) float32

// Sphere returns a sphere of the given radius centered at the origin.
// A non-positive radius yields a field that is positive everywhere except the origin.
func Sphere(radius float32) Field {
	return func(p mgl32.Vec3) float32 {
		return p.Len() - radius
	}
}

// Box returns an axis-aligned box with the given half extents, centered at the origin.
func Box(half mgl32.Vec3) Field {
	return func(p mgl32.Vec3) float32 {
		qx := math32.Abs(p.X()) - half.X()
		qy := math32.Abs(p.Y()) - half.Y()
		qz := math32.Abs(p.Z()) - half.Z()
		outside := mgl32.Vec3{math32.Max(qx, 0), math32.Max(qy, 0), math32.Max(qz, 0)}.Len()
		inside := math32.Min(math32.Max(qx, math32.Max(qy, qz)), 0)
		return outside + inside
	}
}

// RoundBox returns a box with the given half extents and rounded edges of the given radius.
func RoundBox(half mgl32.Vec3, radius float32) Field {
	box := Box(half)
	return func(p mgl32.Vec3) float32 {
		return box(p) - radius
	}
}

// Capsule returns a capsule (a segment from a to b swept by a sphere of the given radius).
func Capsule(a, b mgl32.Vec3, radius float32) Field {
	ba := b.Sub(a)
	baDot := ba.Dot(ba)
	return func(p mgl32.Vec3) float32 {
		pa := p.Sub(a)
		if baDot == 0 {
			// Degenerate segment: a == b, the capsule is a sphere at a.
			return pa.Len() - radius
		}
		h := vmath.Clamp01(pa.Dot(ba) / baDot)
		return pa.Sub(ba.Mul(h)).Len() - radius
	}
}

// Cylinder returns a capped cylinder along the Y axis with the given radius
// and half height, centered at the origin.
func Cylinder(radius, halfHeight float32) Field {
	return func(p mgl32.Vec3) float32 {
		dx := math32.Hypot(p.X(), p.Z()) - radius
		dy := math32.Abs(p.Y()) - halfHeight
		inside := math32.Min(math32.Max(dx, dy), 0)
		outside := mgl32.Vec2{math32.Max(dx, 0), math32.Max(dy, 0)}.Len()
		return inside + outside
	}
}

// Torus returns a torus in the XZ plane: major is the ring radius, minor the tube radius.
func Torus(major, minor float32) Field {
	return func(p mgl32.Vec3) float32 {
		qx := math32.Hypot(p.X(), p.Z()) - major
		return math32.Hypot(qx, p.Y()) - minor
	}
}

// Plane returns a half space: the set of points below the plane with the
// given normal and offset (distance = dot(p, n) + offset). The normal is
// normalized once at construction; a zero normal defaults to +Y.
func Plane(normal mgl32.Vec3, offset float32) Field {
	if normal.Len() == 0 {
		normal = mgl32.Vec3{0, 1, 0}
	}
	n := normal.Normalize()
	return func(p mgl32.Vec3) float32 {
		return p.Dot(n) + offset
	}
}
