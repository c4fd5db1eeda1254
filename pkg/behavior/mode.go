package behavior

import "fmt"

// ModeKind is the macro behaviour of the whole flock.
type ModeKind int

const (
	// Formed holds every boid on its home, the text is readable.
	Formed ModeKind = iota
	// Scattered lets the flocking rules drive the swarm until the countdown ends.
	Scattered
)

func (k ModeKind) String() string {
	switch k {
	case Formed:
		return "formed"
	case Scattered:
		return "scattered"
	}
	return fmt.Sprintf("ModeKind(%d)", int(k))
}

// Mode is the flock-wide state: Formed, or Scattered with a countdown.
type Mode struct {
	Kind           ModeKind
	TicksRemaining int // only meaningful while Scattered
}

func (m Mode) String() string {
	if m.Kind == Scattered {
		return fmt.Sprintf("%s(%d)", m.Kind, m.TicksRemaining)
	}
	return m.Kind.String()
}

// NextMode is the mode transition evaluated once per tick, before the flock moves.
//   - a collision (re)arms Scattered for duration ticks, it never stacks
//   - Scattered counts down and returns to Formed when it reaches zero
//   - Formed without collision stays Formed
func NextMode(current Mode, collided bool, duration int) Mode {
	if collided && duration > 0 {
		return Mode{Kind: Scattered, TicksRemaining: duration}
	}
	if current.Kind != Scattered {
		return Mode{Kind: Formed}
	}
	remaining := current.TicksRemaining - 1
	if remaining <= 0 {
		return Mode{Kind: Formed}
	}
	return Mode{Kind: Scattered, TicksRemaining: remaining}
}

// Collided reports whether an active pointer is closer than distance to any boid.
func Collided(flock []Boid, p Pointer, distance float64) bool {
	if !p.Active {
		return false
	}
	limitSq := distance * distance
	for i := range flock {
		if flock[i].Position.DistanceSquaredTo(p.Position) < limitSq {
			return true
		}
	}
	return false
}
