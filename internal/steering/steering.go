// Package steering implements classic autonomous agent behaviors (seek,
// flee, arrive, wander). Behaviors return desired steering forces; Apply
// integrates a force into the agent's velocity and position with speed and
// force clamping. Agents are deterministic for a given seed.
package steering

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Agent is a point-mass agent. MaxSpeed caps velocity magnitude and MaxForce
// caps the steering force per Apply call, which keeps turns gradual instead
// of snapping toward the target.
type Agent struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	MaxSpeed float32
	MaxForce float32

	wanderAngle float32
	rng         *rand.Rand
}

// NewAgent returns an agent at the given position. Non-positive limits
// default to a walking-pace speed and a gentle turn rate.
func NewAgent(position mgl32.Vec3, maxSpeed, maxForce float32, seed int64) *Agent {
	if maxSpeed <= 0 {
		maxSpeed = 3
	}
	if maxForce <= 0 {
		maxForce = 6
	}
	return &Agent{
		Position: position,
		MaxSpeed: maxSpeed,
		MaxForce: maxForce,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Seek returns a force steering the agent toward the target at full speed.
func (a *Agent) Seek(target mgl32.Vec3) mgl32.Vec3 {
	desired := target.Sub(a.Position)
	if desired.Dot(desired) == 0 {
		return mgl32.Vec3{}
	}
	desired = desired.Normalize().Mul(a.MaxSpeed)
	return desired.Sub(a.Velocity)
}

// Flee returns a force steering the agent directly away from the target.
func (a *Agent) Flee(target mgl32.Vec3) mgl32.Vec3 {
	desired := a.Position.Sub(target)
	if desired.Dot(desired) == 0 {
		return mgl32.Vec3{}
	}
	desired = desired.Normalize().Mul(a.MaxSpeed)
	return desired.Sub(a.Velocity)
}

// Arrive is Seek with braking: inside slowRadius the desired speed ramps
// down linearly so the agent stops at the target instead of orbiting it.
// Non-positive slowRadius behaves like Seek.
func (a *Agent) Arrive(target mgl32.Vec3, slowRadius float32) mgl32.Vec3 {
	offset := target.Sub(a.Position)
	dist := offset.Len()
	if dist == 0 {
		return a.Velocity.Mul(-1) // at the target; cancel remaining velocity
	}
	speed := a.MaxSpeed
	if slowRadius > 0 && dist < slowRadius {
		speed = a.MaxSpeed * (dist / slowRadius)
	}
	desired := offset.Mul(speed / dist)
	return desired.Sub(a.Velocity)
}

// Wander returns a meandering force: a point on a circle projected ahead of
// the agent, with the circle angle jittered each call. Distance places the
// circle ahead along the heading, radius sets turn strength, and jitter sets
// how quickly the heading drifts. Works in the XZ plane; Y is untouched.
func (a *Agent) Wander(distance, radius, jitter float32) mgl32.Vec3 {
	a.wanderAngle += (a.rng.Float32()*2 - 1) * jitter

	heading := a.Velocity
	heading[1] = 0
	if heading.Dot(heading) == 0 {
		heading = mgl32.Vec3{0, 0, 1}
	} else {
		heading = heading.Normalize()
	}

	center := a.Position.Add(heading.Mul(distance))
	target := center.Add(mgl32.Vec3{
		math32.Cos(a.wanderAngle) * radius,
		0,
		math32.Sin(a.wanderAngle) * radius,
	})
	return a.Seek(target)
}

// Apply clamps the force to MaxForce, integrates it as an acceleration over
// dt, clamps the resulting speed to MaxSpeed, and moves the agent. Negative
// dt is treated as zero.
func (a *Agent) Apply(force mgl32.Vec3, dt float32) {
	if dt < 0 {
		dt = 0
	}
	force = clampLen(force, a.MaxForce)
	a.Velocity = clampLen(a.Velocity.Add(force.Mul(dt)), a.MaxSpeed)
	a.Position = a.Position.Add(a.Velocity.Mul(dt))
}

// clampLen scales v down to at most max length, leaving shorter vectors
// untouched.
func clampLen(v mgl32.Vec3, max float32) mgl32.Vec3 {
	sq := v.Dot(v)
	if sq <= max*max || sq == 0 {
		return v
	}
	return v.Mul(max / math32.Sqrt(sq))
}
