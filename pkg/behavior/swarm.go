package behavior

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/geometry"
)

// ErrNoHomes is returned when a swarm would be built without any target.
var ErrNoHomes = errors.New("swarm needs at least one home position")

// Swarm is the flock aggregate. It is owned by whoever calls Step; nothing
// in it is safe for concurrent use.
type Swarm struct {
	Boids []Boid
	Mode  Mode

	// back is the buffer the next tick is written into; Step swaps it
	// with Boids once every boid has been integrated.
	back  []Boid
	tick  uint64
	grid  *Grid
	drift *DriftField

	scratchIdx   []int
	scratchBoids []Boid
}

// NewSwarm creates one boid per home, scattered inside the boundary cube.
// Home order defines the boid-to-target assignment.
func NewSwarm(homes []geometry.Vector3D, s Settings, seed uint64) (*Swarm, error) {
	if len(homes) == 0 {
		return nil, ErrNoHomes
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	boids := make([]Boid, len(homes))
	for i, h := range homes {
		boids[i] = New(h, s.BoundarySize, rng)
	}
	return &Swarm{
		Boids: boids,
		Mode:  Mode{Kind: Formed},
		back:  make([]Boid, len(boids)),
		grid:  NewGrid(s.maxRadius()),
		drift: NewDriftField(int64(seed)),
	}, nil
}

// Len returns the number of boids.
func (sw *Swarm) Len() int {
	return len(sw.Boids)
}

// Tick returns how many steps have been taken.
func (sw *Swarm) Tick() uint64 {
	return sw.tick
}

// Retarget assigns new homes, one per boid, in order.
func (sw *Swarm) Retarget(homes []geometry.Vector3D) error {
	if len(homes) != len(sw.Boids) {
		return fmt.Errorf("retarget: got %d homes for %d boids", len(homes), len(sw.Boids))
	}
	for i := range sw.Boids {
		sw.Boids[i].Home = homes[i]
	}
	return nil
}

// Scatter forces Scattered mode for duration ticks, as a collision would.
func (sw *Swarm) Scatter(duration int) {
	sw.Mode = NextMode(sw.Mode, true, duration)
}

// Form cancels any pending scatter.
func (sw *Swarm) Form() {
	sw.Mode = Mode{Kind: Formed}
}

// Step advances the flock by one tick.
//
// Every steering force of the tick is computed from the boids as they were
// at the end of the previous tick; integration writes into a second buffer
// which replaces the first only once all boids are done. The outcome is
// therefore independent of boid order.
func (sw *Swarm) Step(p Pointer, s Settings) {
	sw.Mode = NextMode(sw.Mode, Collided(sw.Boids, p, s.CollisionDistance), s.ScatterDuration)
	sw.tick++

	if s.UseSpatialGrid {
		sw.grid.SetCellSize(s.maxRadius())
		sw.grid.Rebuild(sw.Boids)
	}

	for i := range sw.Boids {
		me := sw.Boids[i]
		acc, near := sw.accelerate(i, p, s)
		me.NearPointer = near
		sw.back[i] = Integrate(me, acc, sw.Mode.Kind, s)
	}
	sw.Boids, sw.back = sw.back, sw.Boids
}

// accelerate sums the weighted steering forces acting on boid i this tick.
func (sw *Swarm) accelerate(i int, p Pointer, s Settings) (geometry.Vector3D, bool) {
	me := sw.Boids[i]
	repel, near := PointerRepel(me, p, s)
	if sw.Mode.Kind == Formed {
		return repel, near
	}

	neighbors := sw.neighbors(me, s)
	acc := Separation(me, neighbors, s).Mul(s.SeparationWeight).
		Add(Alignment(me, neighbors, s).Mul(s.AlignmentWeight)).
		Add(Cohesion(me, neighbors, s).Mul(s.CohesionWeight))
	if s.ScatterHomeWeight != 0 {
		acc = acc.Add(SeekHome(me, s).Mul(s.ScatterHomeWeight))
	}
	if s.DriftWeight != 0 {
		acc = acc.Add(sw.drift.Force(me, sw.tick, s).Mul(s.DriftWeight))
	}
	return acc.Add(repel), near
}

// neighbors returns the candidates the flocking rules should scan.
func (sw *Swarm) neighbors(me Boid, s Settings) []Boid {
	if !s.UseSpatialGrid {
		return sw.Boids
	}
	sw.scratchIdx = sw.grid.Near(sw.scratchIdx[:0], me.Position, s.maxRadius())
	sw.scratchBoids = sw.scratchBoids[:0]
	for _, j := range sw.scratchIdx {
		sw.scratchBoids = append(sw.scratchBoids, sw.Boids[j])
	}
	return sw.scratchBoids
}

// Integrate applies one tick of acceleration to a copy of b and returns it.
//
// While formed the boid is pulled home by interpolation rather than by
// forces: its velocity is zeroed first, so anything added afterwards (the
// pointer repulsion) only lasts one tick.
func Integrate(b Boid, acc geometry.Vector3D, mode ModeKind, s Settings) Boid {
	if mode == Formed {
		b.Velocity = geometry.Zero
		b.Position = b.Position.Lerp(b.Home, s.FormLerp)
	}

	b.Acceleration = b.Acceleration.Add(acc)
	b.Velocity = b.Velocity.Add(b.Acceleration).Limit(s.MaxSpeed)

	if mode == Formed {
		d := b.Position.DistanceTo(b.Home)
		switch {
		case d < s.CloseBand:
			b.Velocity = b.Velocity.Mul(s.CloseDamping)
		case d < s.MediumBand:
			b.Velocity = b.Velocity.Mul(s.MediumDamping)
		}
	}

	b.Position = b.Position.Add(b.Velocity).Wrap(s.BoundarySize)
	b.Acceleration = geometry.Zero
	return b
}
