package mcubes

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sphereField(radius float32) Field {
	return func(p mgl32.Vec3) float32 {
		return p.Len() - radius
	}
}

func TestGenerateRejectsDegenerateBounds(t *testing.T) {
	f := sphereField(1)
	_, err := Generate(f, Options{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{0, 1, 1}, Resolution: [3]int{8, 8, 8}})
	assert.Error(t, err, "zero-size axis")
	_, err = Generate(f, Options{Min: mgl32.Vec3{1, 0, 0}, Max: mgl32.Vec3{-1, 1, 1}, Resolution: [3]int{8, 8, 8}})
	assert.Error(t, err, "inverted axis")
	_, err = Generate(f, Options{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}, Resolution: [3]int{8, 0, 8}})
	assert.Error(t, err, "zero resolution")
	_, err = Generate(nil, Options{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}, Resolution: [3]int{8, 8, 8}})
	assert.Error(t, err, "nil field")
}

func TestGenerateRejectsNonFiniteField(t *testing.T) {
	nan := float32(math.NaN())
	f := Field(func(p mgl32.Vec3) float32 { return nan })
	_, err := Generate(f, Options{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}, Resolution: [3]int{4, 4, 4}})
	assert.Error(t, err)

	inf := float32(math.Inf(1))
	f = func(p mgl32.Vec3) float32 { return inf }
	_, err = Generate(f, Options{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}, Resolution: [3]int{4, 4, 4}})
	assert.Error(t, err)
}

func TestSphereMeshIsClosedAndOnSurface(t *testing.T) {
	const radius = 1.0
	const res = 24
	opts := Options{
		Min:        mgl32.Vec3{-1.6, -1.6, -1.6},
		Max:        mgl32.Vec3{1.6, 1.6, 1.6},
		Resolution: [3]int{res, res, res},
	}
	mesh, err := Generate(sphereField(radius), opts)
	require.NoError(t, err)
	require.Greater(t, mesh.TriangleCount(), 0)

	// Closed surface: every undirected triangle edge is shared by exactly two triangles.
	edgeUse := make(map[[2]uint32]int)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		tri := [3]uint32{mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]}
		for e := 0; e < 3; e++ {
			a, b := tri[e], tri[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			edgeUse[[2]uint32{a, b}]++
		}
	}
	for edge, n := range edgeUse {
		assert.Equal(t, 2, n, "edge %v not shared by exactly two triangles", edge)
	}

	// Every vertex sits within one grid cell of the sphere surface.
	cell := (opts.Max.X() - opts.Min.X()) / float32(res)
	for i := 0; i < mesh.VertexCount(); i++ {
		d := mesh.Position(i).Len()
		assert.InDelta(t, radius, d, float64(cell), "vertex %d off the surface", i)
	}

	// Normals point outward for a sphere (negative inside).
	for i := 0; i < mesh.VertexCount(); i++ {
		p := mesh.Position(i)
		n := mgl32.Vec3{mesh.Normals[i*3], mesh.Normals[i*3+1], mesh.Normals[i*3+2]}
		assert.Greater(t, n.Dot(p), float32(0), "normal %d points inward", i)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := Options{
		Min:        mgl32.Vec3{-1.5, -1.5, -1.5},
		Max:        mgl32.Vec3{1.5, 1.5, 1.5},
		Resolution: [3]int{10, 10, 10},
	}
	a, err := Generate(sphereField(1), opts)
	require.NoError(t, err)
	b, err := Generate(sphereField(1), opts)
	require.NoError(t, err)
	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Normals, b.Normals)
	assert.Equal(t, a.Indices, b.Indices)
}

func TestEmptyFieldProducesEmptyMesh(t *testing.T) {
	// A field that is positive everywhere has no surface inside the bounds.
	f := Field(func(p mgl32.Vec3) float32 { return 1 })
	mesh, err := Generate(f, Options{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}, Resolution: [3]int{4, 4, 4}})
	require.NoError(t, err)
	assert.Equal(t, 0, mesh.TriangleCount())
	assert.Equal(t, 0, mesh.VertexCount())
}
