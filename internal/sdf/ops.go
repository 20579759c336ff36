package sdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/vmath"
)

// Union returns the boolean union of two fields: min(a, b).
func Union(a, b Field) Field {
	return func(p mgl32.Vec3) float32 {
		return math32.Min(a(p), b(p))
	}
}

// Intersection returns the boolean intersection of two fields: max(a, b).
func Intersection(a, b Field) Field {
	return func(p mgl32.Vec3) float32 {
		return math32.Max(a(p), b(p))
	}
}

// Subtraction carves b out of a: max(a, -b).
func Subtraction(a, b Field) Field {
	return func(p mgl32.Vec3) float32 {
		return math32.Max(a(p), -b(p))
	}
}

// SmoothUnion blends the union of a and b across a transition width k using
// a polynomial smoothing kernel, removing the crease a hard min leaves where
// the surfaces meet. k <= 0 degenerates exactly to Union.
func SmoothUnion(a, b Field, k float32) Field {
	return func(p mgl32.Vec3) float32 {
		da, db := a(p), b(p)
		if k <= 0 {
			return math32.Min(da, db)
		}
		h := vmath.Clamp01(0.5 + 0.5*(db-da)/k)
		return vmath.Lerp(db, da, h) - k*h*(1-h)
	}
}

// SmoothIntersection is the smooth variant of Intersection with transition width k.
// k <= 0 degenerates exactly to Intersection.
func SmoothIntersection(a, b Field, k float32) Field {
	return func(p mgl32.Vec3) float32 {
		da, db := a(p), b(p)
		if k <= 0 {
			return math32.Max(da, db)
		}
		h := vmath.Clamp01(0.5 - 0.5*(db-da)/k)
		return vmath.Lerp(db, da, h) + k*h*(1-h)
	}
}

// SmoothSubtraction is the smooth variant of Subtraction (carve b out of a)
// with transition width k. k <= 0 degenerates exactly to Subtraction.
func SmoothSubtraction(a, b Field, k float32) Field {
	return func(p mgl32.Vec3) float32 {
		da, db := a(p), b(p)
		if k <= 0 {
			return math32.Max(da, -db)
		}
		h := vmath.Clamp01(0.5 - 0.5*(da+db)/k)
		return vmath.Lerp(da, -db, h) + k*h*(1-h)
	}
}

// Translate moves the field by offset.
func Translate(f Field, offset mgl32.Vec3) Field {
	return func(p mgl32.Vec3) float32 {
		return f(p.Sub(offset))
	}
}

// Scale scales the field uniformly by s. The distance is rescaled so the
// result stays a correct signed distance. s == 0 is treated as 1.
func Scale(f Field, s float32) Field {
	if s == 0 {
		s = 1
	}
	inv := 1 / s
	mag := math32.Abs(s)
	return func(p mgl32.Vec3) float32 {
		return f(p.Mul(inv)) * mag
	}
}

// Displace perturbs the field by adding a scalar offset sampled at the same
// point, e.g. fractal noise for terrain. The result is a bound on the true
// distance rather than exact, which is fine for meshing.
func Displace(f Field, d func(p mgl32.Vec3) float32) Field {
	return func(p mgl32.Vec3) float32 {
		return f(p) + d(p)
	}
}
