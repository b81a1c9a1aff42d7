package scene

import "github.com/Faultbox/skyroute/pkg/math"

// Frame tells writers how to map model coordinates to file coordinates.
type Frame uint8

// Coordinate frames.
const (
	FrameImage Frame = iota // Y grows downwards, negated on write
	FrameWorld              // Y grows upwards, written as-is
)

// String returns the frame name.
func (f Frame) String() string {
	if f == FrameWorld {
		return "world"
	}
	return "image"
}

// ToFile converts a model point to the coordinates written to disk.
func (f Frame) ToFile(p math.Point3) math.Point3 {
	if f == FrameImage {
		return p.FlipY()
	}
	return p
}

// FromFile converts file coordinates back to the model.
func (f Frame) FromFile(p math.Point3) math.Point3 {
	// Negation is its own inverse.
	return f.ToFile(p)
}

// Feature is a 2D source obstacle kept for diagram export.
type Feature struct {
	Pos  math.Point2
	Kind Category
}

// Scenario is one fully built route and collision cloud.
type Scenario struct {
	Name       string
	Frame      Frame
	Route      Route
	Collisions CollisionCloud
	Features   []Feature
}

// Features2D wraps positions of one category as features.
func Features2D(kind Category, points []math.Point2) []Feature {
	out := make([]Feature, len(points))
	for i, p := range points {
		out[i] = Feature{Pos: p, Kind: kind}
	}
	return out
}
