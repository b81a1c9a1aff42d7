package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/skyroute/pkg/math"
)

// Route building errors.
var (
	ErrEmptyOrder  = errors.New("route order selects no markers")
	ErrMarkerIndex = errors.New("route marker index out of range")
)

// DefaultCruiseHeight is the altitude of every interior route point.
const DefaultCruiseHeight = 10

// Route is an ordered sequence of waypoints.
type Route []math.Point3

// Start returns the takeoff point.
func (r Route) Start() math.Point3 {
	return r[0]
}

// End returns the landing point.
func (r Route) End() math.Point3 {
	return r[len(r)-1]
}

// BuildRoute orders markers by the given indices and wraps them with ground
// points. For N selected markers the result has N+2 points: the first marker
// at z=0, all N markers at cruise height, then the last marker at z=0. The
// first and last marker therefore appear twice, once on the ground and once
// in the air, which gives a vertical takeoff and landing.
//
// Indices may repeat or skip markers.
func BuildRoute(markers []math.Point2, order []int, cruise int) (Route, error) {
	if len(order) == 0 {
		return nil, ErrEmptyOrder
	}

	route := make(Route, 0, len(order)+2)
	for _, idx := range order {
		if idx < 0 || idx >= len(markers) {
			return nil, fmt.Errorf("%w: %d (have %d markers)", ErrMarkerIndex, idx, len(markers))
		}
		if len(route) == 0 {
			route = append(route, markers[idx].At(0))
		}
		route = append(route, markers[idx].At(cruise))
	}
	route = append(route, route[len(route)-1].XY().At(0))

	return route, nil
}
