package sdf

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const distEps = 1e-5

func TestSphereDistances(t *testing.T) {
	s := Sphere(2)
	assert.InDelta(t, -2, s(mgl32.Vec3{0, 0, 0}), distEps, "center is radius deep inside")
	assert.InDelta(t, 0, s(mgl32.Vec3{2, 0, 0}), distEps, "surface point")
	assert.InDelta(t, 1, s(mgl32.Vec3{0, 3, 0}), distEps, "one unit outside")
}

func TestBoxDistances(t *testing.T) {
	b := Box(mgl32.Vec3{1, 1, 1})
	assert.InDelta(t, -1, b(mgl32.Vec3{0, 0, 0}), distEps)
	assert.InDelta(t, 0, b(mgl32.Vec3{1, 0, 0}), distEps)
	assert.InDelta(t, 2, b(mgl32.Vec3{3, 0, 0}), distEps)
	// Outside a corner the distance is the euclidean distance to the corner.
	assert.InDelta(t, float32(mgl32.Vec3{1, 1, 1}.Len()), b(mgl32.Vec3{2, 2, 2}), distEps)
}

func TestCapsuleDegeneratesToSphere(t *testing.T) {
	c := Capsule(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, 0}, 0.5)
	s := Translate(Sphere(0.5), mgl32.Vec3{1, 0, 0})
	for _, p := range []mgl32.Vec3{{0, 0, 0}, {1, 2, 0}, {-1, -1, 3}} {
		assert.InDelta(t, s(p), c(p), distEps)
	}
}

func TestTorusAndCylinder(t *testing.T) {
	tor := Torus(3, 0.5)
	assert.InDelta(t, -0.5, tor(mgl32.Vec3{3, 0, 0}), distEps, "tube center")
	assert.InDelta(t, 0, tor(mgl32.Vec3{3.5, 0, 0}), distEps, "outer surface")

	cyl := Cylinder(1, 2)
	assert.InDelta(t, -1, cyl(mgl32.Vec3{0, 0, 0}), distEps, "axis, closest face is the side")
	assert.InDelta(t, 0, cyl(mgl32.Vec3{0, 2, 0}), distEps, "cap center")
	assert.InDelta(t, 1, cyl(mgl32.Vec3{2, 0, 0}), distEps, "beside the wall")
}

func TestHardOperators(t *testing.T) {
	a := Sphere(1)
	b := Translate(Sphere(1), mgl32.Vec3{1.5, 0, 0})
	p := mgl32.Vec3{0.75, 0, 0}

	assert.InDelta(t, min32(a(p), b(p)), Union(a, b)(p), distEps)
	assert.InDelta(t, max32(a(p), b(p)), Intersection(a, b)(p), distEps)
	assert.InDelta(t, max32(a(p), -b(p)), Subtraction(a, b)(p), distEps)
}

func TestSmoothOpsDegenerateAtZeroWidth(t *testing.T) {
	a := Sphere(1)
	b := Translate(Box(mgl32.Vec3{0.5, 0.5, 0.5}), mgl32.Vec3{0.8, 0.2, -0.3})
	points := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0.8, 0.2, -0.3}, {-2, 1, 4}, {0.5, 0.5, 0.5}}
	for _, p := range points {
		assert.InDelta(t, Union(a, b)(p), SmoothUnion(a, b, 0)(p), distEps, "k=0 union at %v", p)
		assert.InDelta(t, Intersection(a, b)(p), SmoothIntersection(a, b, 0)(p), distEps, "k=0 intersection at %v", p)
		assert.InDelta(t, Subtraction(a, b)(p), SmoothSubtraction(a, b, 0)(p), distEps, "k=0 subtraction at %v", p)
	}
}

func TestSmoothUnionNeverExceedsHardUnion(t *testing.T) {
	a := Sphere(1)
	b := Translate(Sphere(1), mgl32.Vec3{1.2, 0, 0})
	su := SmoothUnion(a, b, 0.4)
	u := Union(a, b)
	for _, p := range []mgl32.Vec3{{0, 0, 0}, {0.6, 0, 0}, {0.6, 0.6, 0}, {2, 1, 1}} {
		// Smooth union only adds material in the blend region.
		assert.LessOrEqual(t, su(p), u(p)+distEps)
	}
}

func TestTranslateScaleDisplace(t *testing.T) {
	s := Translate(Sphere(1), mgl32.Vec3{0, 5, 0})
	assert.InDelta(t, -1, s(mgl32.Vec3{0, 5, 0}), distEps)

	big := Scale(Sphere(1), 3)
	assert.InDelta(t, -3, big(mgl32.Vec3{0, 0, 0}), distEps)
	assert.InDelta(t, 0, big(mgl32.Vec3{3, 0, 0}), distEps)

	d := Displace(Sphere(1), func(p mgl32.Vec3) float32 { return 0.25 })
	assert.InDelta(t, Sphere(1)(mgl32.Vec3{2, 0, 0})+0.25, d(mgl32.Vec3{2, 0, 0}), distEps)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
