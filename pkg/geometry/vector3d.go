package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by Eq and by Normalize to decide that a
// vector is effectively zero.
const (
	Epsilon = 1e-9
)

// Vector3D represents a 3D vector or point in world space.
// Fields are public: a Vector3D is plain data and reads better as a literal, v := Vector3D{1, 2, 3}
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Zero is the additive identity.
var Zero = Vector3D{}

// NewVector creates a new Vector3D.
func NewVector(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// Value receivers everywhere: vectors are never mutated in place.
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Div scales the vector by 1/scalar. Dividing by zero yields the zero vector,
// which is what every averaging caller in this module wants for "no samples".
func (v Vector3D) Div(scalar float64) Vector3D {
	if scalar == 0 {
		return Zero
	}
	return Vector3D{v.X / scalar, v.Y / scalar, v.Z / scalar}
}

// Dot calculates the dot product of two vectors.
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross calculates the cross product v × other.
func (v Vector3D) Cross(other Vector3D) Vector3D {
	return Vector3D{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Cheaper than Len(), use it for range comparisons.
func (v Vector3D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// Normalize returns a unit vector in the same direction.
// Returns a zero vector if the length is effectively zero.
func (v Vector3D) Normalize() Vector3D {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// SetLen returns a vector with the same direction and the given length.
func (v Vector3D) SetLen(length float64) Vector3D {
	return v.Normalize().Mul(length)
}

// Limit caps the magnitude of the vector at max, keeping its direction.
func (v Vector3D) Limit(max float64) Vector3D {
	lsq := v.LenSqr()
	if lsq > max*max {
		return v.Mul(max / math.Sqrt(lsq))
	}
	return v
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3D) DistanceSquaredTo(other Vector3D) float64 {
	return v.Sub(other).LenSqr()
}

// Lerp (Linear Interpolate) calculates a point between v and target based on t [0, 1].
func (v Vector3D) Lerp(target Vector3D, t float64) Vector3D {
	// Formula: v + (target - v) * t
	return v.Add(target.Sub(v).Mul(t))
}

// IsZero reports whether every component is exactly zero.
func (v Vector3D) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}

// Wrap teleports every component that left [-bound, bound] to the opposite
// extreme. A bound <= 0 disables wrapping.
func (v Vector3D) Wrap(bound float64) Vector3D {
	if bound <= 0 {
		return v
	}
	return Vector3D{wrap(v.X, bound), wrap(v.Y, bound), wrap(v.Z, bound)}
}

func wrap(c, bound float64) float64 {
	switch {
	case c > bound:
		return -bound
	case c < -bound:
		return bound
	}
	return c
}
