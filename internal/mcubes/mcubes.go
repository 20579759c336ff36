// Package mcubes extracts a triangle mesh from the zero level set of a
// scalar field sampled on a regular grid (the classic marching-cubes
// algorithm). The mesher knows nothing about how the field is composed; it
// takes a sampling function, a bounding region, and a resolution, and
// returns flat vertex/normal/index arrays the renderer can upload directly.
package mcubes

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"strata/internal/vmath"
)

// Field samples the scalar field at a point. Negative values are inside the
// surface. The field must be deterministic and finite over the bounds.
type Field func(p mgl32.Vec3) float32

// Options describes the region and density of the sampling grid.
// Resolution is the number of cells per axis; the lattice has one more
// sample than cells along each axis.
type Options struct {
	Min        mgl32.Vec3
	Max        mgl32.Vec3
	Resolution [3]int
}

// Mesh is the renderer-agnostic output of Generate: flat xyz positions,
// matching per-vertex normals, and triangle indices. Vertices on shared cell
// edges are emitted once, so adjacency is expressed through the index list.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Position returns vertex i as a vector.
func (m *Mesh) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// validate rejects degenerate regions and resolutions before any field
// evaluation; the algorithm has no way to recover a valid mesh from them.
func (o Options) validate() error {
	for axis := 0; axis < 3; axis++ {
		if !(o.Max[axis] > o.Min[axis]) {
			return fmt.Errorf("mcubes: degenerate bounds on axis %d: min %v, max %v", axis, o.Min[axis], o.Max[axis])
		}
		if !vmath.IsFinite(o.Min[axis]) || !vmath.IsFinite(o.Max[axis]) {
			return fmt.Errorf("mcubes: non-finite bounds on axis %d", axis)
		}
		if o.Resolution[axis] < 1 {
			return fmt.Errorf("mcubes: resolution must be >= 1 per axis, got %v", o.Resolution)
		}
	}
	return nil
}

// Cube corner offsets in lattice steps. Corner i corresponds to bit i of the
// cell's case index; the ordering matches triTable.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// Each cube edge connects two corners.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Edges are shared between neighboring cells. For deduplication each edge is
// keyed by the lattice coordinate of its lower corner plus its axis
// (0 = X, 1 = Y, 2 = Z).
var edgeOrigins = [12]struct {
	corner int
	axis   int
}{
	{0, 0}, {1, 1}, {3, 0}, {0, 1},
	{4, 0}, {5, 1}, {7, 0}, {4, 1},
	{0, 2}, {1, 2}, {2, 2}, {3, 2},
}

// Generate runs marching cubes over the field. It samples the full lattice
// first, rejecting NaN/Inf values with an error, then walks every cell:
// corners below zero set bits of the case index, the case's triangulation is
// looked up, zero crossings are linearly interpolated along the crossed
// edges, and triangles are emitted over deduplicated edge vertices. Normals
// are the central-difference gradient of the field at each vertex.
// Output is deterministic for a fixed field and options.
func Generate(field Field, opts Options) (*Mesh, error) {
	if field == nil {
		return nil, fmt.Errorf("mcubes: nil field")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	nx, ny, nz := opts.Resolution[0], opts.Resolution[1], opts.Resolution[2]
	step := mgl32.Vec3{
		(opts.Max.X() - opts.Min.X()) / float32(nx),
		(opts.Max.Y() - opts.Min.Y()) / float32(ny),
		(opts.Max.Z() - opts.Min.Z()) / float32(nz),
	}

	latticePoint := func(ix, iy, iz int) mgl32.Vec3 {
		return mgl32.Vec3{
			opts.Min.X() + float32(ix)*step.X(),
			opts.Min.Y() + float32(iy)*step.Y(),
			opts.Min.Z() + float32(iz)*step.Z(),
		}
	}

	// Sample the whole lattice up front. One sample per point regardless of
	// how many cells share it.
	lx, ly, lz := nx+1, ny+1, nz+1
	samples := make([]float32, lx*ly*lz)
	sampleIndex := func(ix, iy, iz int) int { return (iz*ly+iy)*lx + ix }
	for iz := 0; iz < lz; iz++ {
		for iy := 0; iy < ly; iy++ {
			for ix := 0; ix < lx; ix++ {
				v := field(latticePoint(ix, iy, iz))
				if !vmath.IsFinite(v) {
					return nil, fmt.Errorf("mcubes: non-finite field value %v at lattice point (%d,%d,%d)", v, ix, iy, iz)
				}
				samples[sampleIndex(ix, iy, iz)] = v
			}
		}
	}

	mesh := &Mesh{}
	// edgeVertex maps a global edge key to its vertex index in the mesh.
	edgeVertex := make(map[uint64]uint32)
	edgeKey := func(ix, iy, iz, axis int) uint64 {
		return ((uint64(iz)*uint64(ly)+uint64(iy))*uint64(lx)+uint64(ix))*3 + uint64(axis)
	}

	// gradient estimates the surface normal at p by central differences,
	// stepping half a cell along each axis. The field is negative inside, so
	// the gradient points outward.
	gradient := func(p mgl32.Vec3) mgl32.Vec3 {
		h := mgl32.Vec3{step.X() * 0.5, step.Y() * 0.5, step.Z() * 0.5}
		g := mgl32.Vec3{
			field(mgl32.Vec3{p.X() + h.X(), p.Y(), p.Z()}) - field(mgl32.Vec3{p.X() - h.X(), p.Y(), p.Z()}),
			field(mgl32.Vec3{p.X(), p.Y() + h.Y(), p.Z()}) - field(mgl32.Vec3{p.X(), p.Y() - h.Y(), p.Z()}),
			field(mgl32.Vec3{p.X(), p.Y(), p.Z() + h.Z()}) - field(mgl32.Vec3{p.X(), p.Y(), p.Z() - h.Z()}),
		}
		if g.Len() == 0 {
			return mgl32.Vec3{0, 1, 0}
		}
		return g.Normalize()
	}

	var corners [8]float32
	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				caseIndex := 0
				for c := 0; c < 8; c++ {
					off := cornerOffsets[c]
					corners[c] = samples[sampleIndex(ix+off[0], iy+off[1], iz+off[2])]
					if corners[c] < 0 {
						caseIndex |= 1 << c
					}
				}
				tris := triTable[caseIndex]
				if len(tris) == 0 {
					continue
				}

				for _, edge := range tris {
					origin := edgeOrigins[edge]
					off := cornerOffsets[origin.corner]
					key := edgeKey(ix+off[0], iy+off[1], iz+off[2], origin.axis)
					vi, ok := edgeVertex[key]
					if !ok {
						a, b := edgeCorners[edge][0], edgeCorners[edge][1]
						oa, ob := cornerOffsets[a], cornerOffsets[b]
						pa := latticePoint(ix+oa[0], iy+oa[1], iz+oa[2])
						pb := latticePoint(ix+ob[0], iy+ob[1], iz+ob[2])
						va, vb := corners[a], corners[b]
						// Linear zero crossing; a flat span falls back to the midpoint.
						t := float32(0.5)
						if va != vb {
							t = vmath.Clamp01(va / (va - vb))
						}
						p := mgl32.Vec3{
							vmath.Lerp(pa.X(), pb.X(), t),
							vmath.Lerp(pa.Y(), pb.Y(), t),
							vmath.Lerp(pa.Z(), pb.Z(), t),
						}
						n := gradient(p)
						vi = uint32(mesh.VertexCount())
						mesh.Positions = append(mesh.Positions, p.X(), p.Y(), p.Z())
						mesh.Normals = append(mesh.Normals, n.X(), n.Y(), n.Z())
						edgeVertex[key] = vi
					}
					mesh.Indices = append(mesh.Indices, vi)
				}
			}
		}
	}
	return mesh, nil
}
