package scene

import (
	"errors"

	"github.com/Faultbox/skyroute/pkg/math"
)

// ErrInvalidExpander is returned when picket parameters cannot produce points.
var ErrInvalidExpander = errors.New("invalid obstacle expander")

// CollisionCloud is the 3D point cloud handed to downstream planners.
// Points from different sources may coincide.
type CollisionCloud []math.Point3

// Expander turns 2D obstacle positions into 3D collision points.
type Expander struct {
	Low          int // Lowest picket altitude
	High         int // Highest picket altitude, also the canopy level
	Step         int // Vertical picket spacing
	BridgeHeight int // Altitude of a bridge deck point
	CanopyOffset int // Canopy reach from the trunk, horizontally and upwards

	// Frame the cloud will be written in. The canopy's y neighbours are
	// emitted in ascending file y, so collision files stay line-for-line
	// stable. The zero value is FrameImage.
	Frame Frame
}

// DefaultExpander returns the 0..20 step 2 picket with bridges at 20.
func DefaultExpander() Expander {
	return Expander{
		Low:          0,
		High:         20,
		Step:         2,
		BridgeHeight: 20,
		CanopyOffset: 2,
	}
}

// Validate checks the picket range.
func (e Expander) Validate() error {
	if e.Step <= 0 {
		return errors.Join(ErrInvalidExpander, errors.New("step must be positive"))
	}
	if e.High < e.Low {
		return errors.Join(ErrInvalidExpander, errors.New("high must not be below low"))
	}
	return nil
}

// PicketSize returns how many points a single wall expands to.
func (e Expander) PicketSize() int {
	return (e.High-e.Low)/e.Step + 1
}

// Wall returns the vertical picket column at p.
func (e Expander) Wall(p math.Point2) []math.Point3 {
	points := make([]math.Point3, 0, e.PicketSize())
	for z := e.Low; z <= e.High; z += e.Step {
		points = append(points, p.At(z))
	}
	return points
}

// Tree returns the wall picket at p plus a cross-shaped canopy at the top
// and one point above the trunk. The canopy order is x-d, x+d, then the two
// y neighbours in ascending file y, then the point above.
func (e Expander) Tree(p math.Point2) []math.Point3 {
	points := e.Wall(p)
	top, d := e.High, e.CanopyOffset
	first, second := p.Y-d, p.Y+d
	if e.Frame == FrameImage {
		first, second = second, first
	}
	return append(points,
		math.Point3{X: p.X - d, Y: p.Y, Z: top},
		math.Point3{X: p.X + d, Y: p.Y, Z: top},
		math.Point3{X: p.X, Y: first, Z: top},
		math.Point3{X: p.X, Y: second, Z: top},
		math.Point3{X: p.X, Y: p.Y, Z: top + d},
	)
}

// Bridge returns the single deck point at p.
func (e Expander) Bridge(p math.Point2) math.Point3 {
	return p.At(e.BridgeHeight)
}

// Expand emits walls, then trees, then bridges, each in input order.
func (e Expander) Expand(walls, trees, bridges []math.Point2) CollisionCloud {
	cloud := make(CollisionCloud, 0, (len(walls)+len(trees))*e.PicketSize()+len(trees)*5+len(bridges))
	for _, p := range walls {
		cloud = append(cloud, e.Wall(p)...)
	}
	for _, p := range trees {
		cloud = append(cloud, e.Tree(p)...)
	}
	for _, p := range bridges {
		cloud = append(cloud, e.Bridge(p))
	}
	return cloud
}
