package behavior

import (
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

// pointerRepelLimit is how many MaxForce the pointer repulsion may reach,
// so a swipe through the flock reads as a sharp push.
const pointerRepelLimit = 4

// Every rule below reads neighbours from a snapshot of the previous tick.
// A neighbour at distance zero is the boid itself (or indistinguishable
// from it) and never contributes.

// Separation steers away from neighbours inside SeparationRadius, each one
// weighted by the inverse of its distance.
func Separation(me Boid, neighbors []Boid, s Settings) geometry.Vector3D {
	sum := geometry.Zero
	count := 0
	radiusSq := s.SeparationRadius * s.SeparationRadius

	for _, other := range neighbors {
		diff := me.Position.Sub(other.Position)
		distSq := diff.LenSqr()
		if distSq <= 0 || distSq >= radiusSq {
			continue
		}
		d := diff.Len()
		sum = sum.Add(diff.Normalize().Div(d))
		count++
	}

	if count == 0 {
		return geometry.Zero
	}
	sum = sum.Div(float64(count))
	if sum.LenSqr() == 0 {
		// perfectly balanced crowd
		return geometry.Zero
	}
	return steerToward(sum, me.Velocity, s)
}

// Alignment steers toward the average heading of neighbours inside AlignmentRadius.
func Alignment(me Boid, neighbors []Boid, s Settings) geometry.Vector3D {
	sum := geometry.Zero
	count := 0
	radiusSq := s.AlignmentRadius * s.AlignmentRadius

	for _, other := range neighbors {
		distSq := me.Position.DistanceSquaredTo(other.Position)
		if distSq <= 0 || distSq >= radiusSq {
			continue
		}
		sum = sum.Add(other.Velocity)
		count++
	}

	if count == 0 {
		return geometry.Zero
	}
	return steerToward(sum.Div(float64(count)), me.Velocity, s)
}

// Cohesion seeks the centroid of neighbours inside CohesionRadius.
func Cohesion(me Boid, neighbors []Boid, s Settings) geometry.Vector3D {
	sum := geometry.Zero
	count := 0
	radiusSq := s.CohesionRadius * s.CohesionRadius

	for _, other := range neighbors {
		distSq := me.Position.DistanceSquaredTo(other.Position)
		if distSq <= 0 || distSq >= radiusSq {
			continue
		}
		sum = sum.Add(other.Position)
		count++
	}

	if count == 0 {
		return geometry.Zero
	}
	return Seek(me, sum.Div(float64(count)), s)
}

// Seek returns the steering that turns the boid toward target at full speed.
func Seek(me Boid, target geometry.Vector3D, s Settings) geometry.Vector3D {
	return steerToward(target.Sub(me.Position), me.Velocity, s)
}

// SeekHome is Seek toward the boid's home, scaled by HomeAttraction.
func SeekHome(me Boid, s Settings) geometry.Vector3D {
	return Seek(me, me.Home, s).Mul(s.HomeAttraction)
}

// PointerRepel pushes the boid straight away from an active pointer inside
// PointerRepelRadius, with a strength falling linearly to zero at the radius.
// The second result reports whether the boid is within reach of the pointer.
func PointerRepel(me Boid, p Pointer, s Settings) (geometry.Vector3D, bool) {
	if !p.Active {
		return geometry.Zero, false
	}
	away := me.Position.Sub(p.Position)
	d := away.Len()
	if d <= 0 || d >= s.PointerRepelRadius {
		return geometry.Zero, false
	}
	strength := s.PointerRepelStrength * (1 - d/s.PointerRepelRadius)
	force := away.Normalize().Mul(strength).Limit(pointerRepelLimit * s.MaxForce)
	return force, true
}

// steerToward converts a desired direction into a bounded change of velocity:
// desired speed is always MaxSpeed, the change never exceeds MaxForce.
func steerToward(direction, velocity geometry.Vector3D, s Settings) geometry.Vector3D {
	desired := direction.Normalize().Mul(s.MaxSpeed)
	return desired.Sub(velocity).Limit(s.MaxForce)
}
