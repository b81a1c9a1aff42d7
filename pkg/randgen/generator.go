package randgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Name is the scenario name given to generated scenarios.
const Name = "random"

// Generator draws obstacles and routes from a seeded source.
type Generator struct {
	params Params
	rng    *rand.Rand
}

// New creates a generator. Only the volume is checked here so obstacle
// fields can be sampled in any positive volume; route parameters are checked
// by Route and Generate. Equal seeds produce equal scenarios.
func New(params Params, seed uint64) (*Generator, error) {
	if err := params.ValidateVolume(); err != nil {
		return nil, err
	}
	return &Generator{
		params: params,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Params returns the generator's parameters.
func (g *Generator) Params() Params {
	return g.params
}

// intRange returns a uniform integer in [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// Obstacles samples every lattice cell of the volume independently with the
// configured probability.
func (g *Generator) Obstacles() *scene.ObstacleSet {
	p := g.params
	set := scene.NewObstacleSet()
	for x := 0; x < p.Width; x++ {
		for y := 0; y < p.Depth; y++ {
			for z := 0; z < p.Height; z++ {
				if g.rng.Float64() < p.Probability {
					set.Add(math.Point3{X: x, Y: y, Z: z})
				}
			}
		}
	}
	return set
}

// Route generates a ground start, a vertical climb, the interior random walk,
// a descent and a ground landing under the last interior point.
func (g *Generator) Route() (scene.Route, error) {
	p := g.params
	if err := p.ValidateRoute(); err != nil {
		return nil, err
	}
	route := make(scene.Route, 0, p.RouteLength())

	start := math.Point3{X: g.rng.IntN(p.Width), Y: g.rng.IntN(p.Depth)}
	route = append(route, start)
	prev := start.XY().At(g.intRange(p.ClimbMin, p.ClimbMax))
	route = append(route, prev)

	for i := 0; i < p.InteriorPoints; i++ {
		next, err := g.nearby(prev)
		if err != nil {
			return nil, fmt.Errorf("interior point %d: %w", i, err)
		}
		route = append(route, next)
		prev = next
	}

	route = append(route, prev.XY().At(g.intRange(p.ClimbMin, p.ClimbMax)))
	route = append(route, prev.XY().At(0))
	return route, nil
}

// nearby rejection-samples a point whose distance from prev lies within the
// step band.
func (g *Generator) nearby(prev math.Point3) (math.Point3, error) {
	p := g.params
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		c := math.Point3{
			X: g.rng.IntN(p.Width),
			Y: g.rng.IntN(p.Depth),
			Z: g.intRange(p.CruiseMin, p.Height-1),
		}
		d := prev.Distance(c)
		if d >= p.MinStep && d <= p.MaxStep {
			return c, nil
		}
	}
	return math.Point3{}, fmt.Errorf("%w: no point within [%v,%v] of %v after %d attempts",
		ErrGenerationExhausted, p.MinStep, p.MaxStep, prev, p.MaxAttempts)
}

// ClearEndpoints removes obstacles around the climb point route[1] and the
// descent point route[len-2]: anything at most ClearanceHeadroom above the
// point and within ClearanceRadius horizontally. Returns the number removed.
func (g *Generator) ClearEndpoints(route scene.Route, obstacles *scene.ObstacleSet) int {
	if len(route) < 2 {
		return 0
	}
	removed := 0
	for _, anchor := range []math.Point3{route[1], route[len(route)-2]} {
		removed += ClearAround(obstacles, anchor, g.params.ClearanceRadius, g.params.ClearanceHeadroom)
	}
	return removed
}

// ClearAround removes obstacles with z <= anchor.Z+headroom whose horizontal
// distance to anchor is at most radius.
func ClearAround(obstacles *scene.ObstacleSet, anchor math.Point3, radius float64, headroom int) int {
	return obstacles.RemoveFunc(func(o math.Point3) bool {
		return o.Z <= anchor.Z+headroom && o.DistanceXY(anchor) <= radius
	})
}

// Result is a generated scenario with its generation bookkeeping.
type Result struct {
	Scenario *scene.Scenario
	Sampled  int
	Cleared  int
}

// Generate samples obstacles, builds the route and clears the endpoint
// corridors, in that order.
func (g *Generator) Generate() (*Result, error) {
	if err := g.params.ValidateRoute(); err != nil {
		return nil, err
	}
	obstacles := g.Obstacles()
	sampled := obstacles.Len()

	route, err := g.Route()
	if err != nil {
		return nil, err
	}
	cleared := g.ClearEndpoints(route, obstacles)

	points := obstacles.Points()
	features := make([]scene.Feature, len(points))
	for i, o := range points {
		features[i] = scene.Feature{Pos: o.XY(), Kind: scene.Wall}
	}

	return &Result{
		Scenario: &scene.Scenario{
			Name:       Name,
			Frame:      scene.FrameWorld,
			Route:      route,
			Collisions: scene.CollisionCloud(points),
			Features:   features,
		},
		Sampled: sampled,
		Cleared: cleared,
	}, nil
}
