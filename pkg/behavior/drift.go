package behavior

import (
	"github.com/aquilax/go-perlin"
	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

const (
	driftAlpha  = 2.0
	driftBeta   = 2.0
	driftOctave = 3
	// offsets decorrelate the three noise lookups
	driftOffsetY = 31.7
	driftOffsetZ = 73.1
	driftTime    = 0.01
)

// DriftField is a smooth Perlin wander force: neighbouring boids at the same
// tick drift the same way, and the field evolves slowly with time.
type DriftField struct {
	noise *perlin.Perlin
}

// NewDriftField creates a deterministic field for seed.
func NewDriftField(seed int64) *DriftField {
	return &DriftField{noise: perlin.NewPerlin(driftAlpha, driftBeta, driftOctave, seed)}
}

// Force samples the field at the boid's position for the given tick.
// The result is bounded by MaxForce.
func (f *DriftField) Force(me Boid, tick uint64, s Settings) geometry.Vector3D {
	p := me.Position.Mul(s.DriftScale)
	t := float64(tick) * driftTime
	v := geometry.Vector3D{
		X: f.noise.Noise3D(p.X, p.Y, p.Z+t),
		Y: f.noise.Noise3D(p.X+driftOffsetY, p.Y, p.Z+t),
		Z: f.noise.Noise3D(p.X, p.Y+driftOffsetZ, p.Z+t),
	}
	return v.Mul(s.MaxForce).Limit(s.MaxForce)
}
