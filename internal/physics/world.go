// Package physics is a small helper simulation for props: gravity, explicit
// Euler integration, and AABB overlap resolution. It is not a general rigid
// body engine; rotation, restitution, and friction are out of scope.
package physics

import "github.com/go-gl/mathgl/mgl32"

// World holds a set of bodies and steps them: gravity, integration, then
// pairwise AABB collision resolution.
type World struct {
	Gravity mgl32.Vec3
	Bodies  []*Body
}

// NewWorld returns a world with default gravity (0, -9.8, 0); the scene is Y-up.
func NewWorld() *World {
	return &World{Gravity: mgl32.Vec3{0, -9.8, 0}}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// AddBody appends a body to the world. Order is preserved so callers can
// keep bodies in sync with their rendered objects by index.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Step advances the simulation by dt seconds: apply gravity and integrate
// dynamic bodies, then push overlapping pairs apart along the minimum
// penetration axis, splitting the correction by mass. There is no global
// floor; dynamic bodies fall until they hit another body.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		boxI := bodyAABB(bi)
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bi.Static && bj.Static {
				continue
			}
			depth, axis := penetrationAxis(boxI, bodyAABB(bj))
			if axis < 0 {
				continue
			}

			var moveI, moveJ float32
			switch {
			case bi.Static:
				moveJ = depth
			case bj.Static:
				moveI = -depth
			default:
				total := bi.Mass + bj.Mass
				moveI = -depth * (bj.Mass / total)
				moveJ = depth * (bi.Mass / total)
			}

			bi.Position[axis] += moveI
			bj.Position[axis] += moveJ
			if !bi.Static {
				bi.Velocity[axis] = 0
			}
			if !bj.Static {
				bj.Velocity[axis] = 0
			}
			boxI = bodyAABB(bi) // position changed; refresh for the next pair
		}
	}
}
