package valueobjects

import "math"

// Vector is a 2D point or displacement on the layout canvas.
// Unlike the identifier value objects it exposes its fields directly: the
// simulation loop reads and writes positions every iteration and accessor
// indirection there buys nothing.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two vectors.
func (v Vector) Add(other Vector) Vector {
	return Vector{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the vector from other to v.
func (v Vector) Sub(other Vector) Vector {
	return Vector{X: v.X - other.X, Y: v.Y - other.Y}
}

// Scale returns the vector multiplied by a scalar.
func (v Vector) Scale(factor float64) Vector {
	return Vector{X: v.X * factor, Y: v.Y * factor}
}

// Length returns the Euclidean magnitude of the vector.
func (v Vector) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Equals checks exact component equality.
func (v Vector) Equals(other Vector) bool {
	return v.X == other.X && v.Y == other.Y
}
