package math

import (
	"fmt"
	"math"
)

// Point3 is a lattice position with Z as altitude.
type Point3 struct {
	X, Y, Z int
}

// Add returns p + other.
func (p Point3) Add(other Point3) Point3 {
	return Point3{p.X + other.X, p.Y + other.Y, p.Z + other.Z}
}

// Sub returns p - other.
func (p Point3) Sub(other Point3) Point3 {
	return Point3{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Length returns the Euclidean magnitude.
func (p Point3) Length() float64 {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	return math.Sqrt(x*x + y*y + z*z)
}

// Distance returns the 3D Euclidean distance to another point.
func (p Point3) Distance(other Point3) float64 {
	return p.Sub(other).Length()
}

// DistanceXY returns the distance to another point ignoring altitude.
func (p Point3) DistanceXY(other Point3) float64 {
	return p.XY().Distance(other.XY())
}

// XY drops the altitude.
func (p Point3) XY() Point2 {
	return Point2{p.X, p.Y}
}

// FlipY mirrors the point across the X axis. Image rows grow downwards,
// world Y grows upwards.
func (p Point3) FlipY() Point3 {
	return Point3{p.X, -p.Y, p.Z}
}

// String returns "(x, y, z)".
func (p Point3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
