// Package math provides integer lattice points for scenario geometry.
package math

import (
	"fmt"
	"math"
)

// Point2 is a position on the 2D image/grid lattice.
type Point2 struct {
	X, Y int
}

// Add returns p + other.
func (p Point2) Add(other Point2) Point2 {
	return Point2{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point2) Sub(other Point2) Point2 {
	return Point2{p.X - other.X, p.Y - other.Y}
}

// Length returns the Euclidean magnitude.
func (p Point2) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Distance returns the Euclidean distance to another point.
func (p Point2) Distance(other Point2) float64 {
	return p.Sub(other).Length()
}

// At lifts the point to 3D at altitude z.
func (p Point2) At(z int) Point3 {
	return Point3{p.X, p.Y, z}
}

// String returns "(x, y)".
func (p Point2) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}
