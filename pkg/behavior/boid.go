package behavior

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

// Boid represents a single entity in the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds, and related group motion.
// https://en.wikipedia.org/wiki/Boids
//
// Here every boid also owns a Home: the point it occupies when the flock
// holds the shape of the text.
type Boid struct {
	Position     geometry.Vector3D
	Velocity     geometry.Vector3D
	Acceleration geometry.Vector3D
	Home         geometry.Vector3D

	// NearPointer is recomputed each step by the pointer repulsion and only
	// feeds the presentation; it never influences physics.
	NearPointer bool
}

// Settings controls the physics constants for the simulation.
// Passing this into Step allows you to change rules dynamically at runtime.
type Settings struct {
	MaxSpeed float64 `json:"maxSpeed"`
	MaxForce float64 `json:"maxForce"`

	SeparationRadius float64 `json:"separationRadius"` // Personal space radius
	AlignmentRadius  float64 `json:"alignmentRadius"`
	CohesionRadius   float64 `json:"cohesionRadius"`

	SeparationWeight  float64 `json:"separationWeight"`
	AlignmentWeight   float64 `json:"alignmentWeight"`
	CohesionWeight    float64 `json:"cohesionWeight"`
	HomeAttraction    float64 `json:"homeAttraction"`    // scale applied by SeekHome
	ScatterHomeWeight float64 `json:"scatterHomeWeight"` // SeekHome weight while scattered, 0 disables

	PointerRepelRadius   float64 `json:"pointerRepelRadius"`
	PointerRepelStrength float64 `json:"pointerRepelStrength"`
	CollisionDistance    float64 `json:"collisionDistance"` // pointer distance that scatters the flock
	ScatterDuration      int     `json:"scatterDuration"`   // ticks

	FormLerp       float64 `json:"formLerp"` // fraction of the way home covered per tick while formed
	CloseBand      float64 `json:"closeBand"`
	CloseDamping   float64 `json:"closeDamping"`
	MediumBand     float64 `json:"mediumBand"`
	MediumDamping  float64 `json:"mediumDamping"`
	BoundarySize   float64 `json:"boundarySize"`
	DriftWeight    float64 `json:"driftWeight"`
	DriftScale     float64 `json:"driftScale"`
	UseSpatialGrid bool    `json:"useSpatialGrid"`
}

// DefaultSettings returns the tuning the text swarm ships with.
func DefaultSettings() Settings {
	return Settings{
		MaxSpeed:             2.0,
		MaxForce:             0.05,
		SeparationRadius:     25,
		AlignmentRadius:      50,
		CohesionRadius:       50,
		SeparationWeight:     1.5,
		AlignmentWeight:      1.0,
		CohesionWeight:       1.0,
		HomeAttraction:       0.1,
		ScatterHomeWeight:    0,
		PointerRepelRadius:   50,
		PointerRepelStrength: 2.0,
		CollisionDistance:    15,
		ScatterDuration:      180,
		FormLerp:             0.1,
		CloseBand:            5,
		CloseDamping:         0.85,
		MediumBand:           20,
		MediumDamping:        0.95,
		BoundarySize:         400,
		DriftWeight:          0,
		DriftScale:           0.01,
		UseSpatialGrid:       true,
	}
}

// maxRadius is the largest neighbourhood any rule looks at.
func (s Settings) maxRadius() float64 {
	r := s.SeparationRadius
	if s.AlignmentRadius > r {
		r = s.AlignmentRadius
	}
	if s.CohesionRadius > r {
		r = s.CohesionRadius
	}
	return r
}

// New creates a boid bound to home, starting at a random position inside
// the cube of half-size spread and with a small random velocity.
func New(home geometry.Vector3D, spread float64, rng *rand.Rand) Boid {
	return Boid{
		Position: geometry.Vector3D{
			X: (rng.Float64()*2 - 1) * spread,
			Y: (rng.Float64()*2 - 1) * spread,
			Z: (rng.Float64()*2 - 1) * spread,
		},
		Velocity: geometry.Vector3D{
			X: rng.Float64() - 0.5,
			Y: rng.Float64() - 0.5,
			Z: rng.Float64() - 0.5,
		},
		Home: home,
	}
}

// Pointer is the world-space pointer as seen by the flock for one tick.
type Pointer struct {
	Position geometry.Vector3D
	Active   bool
}
