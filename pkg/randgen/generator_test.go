package randgen

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pmath "github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

func smallParams() Params {
	p := DefaultParams()
	p.Width, p.Depth, p.Height = 40, 40, 30
	p.Probability = 0.05
	return p
}

func TestObstacles_Expectation(t *testing.T) {
	p := DefaultParams()
	cells := float64(p.Width * p.Depth * p.Height)
	mean := cells * p.Probability
	sigma := math.Sqrt(cells * p.Probability * (1 - p.Probability))

	for _, seed := range []uint64{1, 2, 3} {
		g, err := New(p, seed)
		require.NoError(t, err)

		n := float64(g.Obstacles().Len())
		assert.InDelta(t, mean, n, 4*sigma, "seed %d", seed)
	}
}

func TestObstacles_Bounds(t *testing.T) {
	p := smallParams()
	g, err := New(p, 42)
	require.NoError(t, err)

	for _, o := range g.Obstacles().Points() {
		require.True(t, o.X >= 0 && o.X < p.Width, "x out of range: %v", o)
		require.True(t, o.Y >= 0 && o.Y < p.Depth, "y out of range: %v", o)
		require.True(t, o.Z >= 0 && o.Z < p.Height, "z out of range: %v", o)
	}
}

func TestObstacles_ProbabilityExtremes(t *testing.T) {
	p := smallParams()
	p.Width, p.Depth, p.Height = 5, 4, 3

	p.Probability = 0
	g, err := New(p, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Obstacles().Len())

	p.Probability = 1
	g, err = New(p, 1)
	require.NoError(t, err)
	assert.Equal(t, 60, g.Obstacles().Len())

	// The volume is too low for a route, so only route generation fails.
	_, err = g.Route()
	assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
	_, err = g.Generate()
	assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
}

func TestRoute_Shape(t *testing.T) {
	p := smallParams()
	g, err := New(p, 7)
	require.NoError(t, err)

	route, err := g.Route()
	require.NoError(t, err)
	require.Len(t, route, 29)

	assert.Equal(t, 0, route[0].Z)
	assert.Equal(t, route[0].XY(), route[1].XY())
	assert.GreaterOrEqual(t, route[1].Z, p.ClimbMin)
	assert.LessOrEqual(t, route[1].Z, p.ClimbMax)

	for i := 2; i < 2+p.InteriorPoints; i++ {
		pt := route[i]
		d := route[i-1].Distance(pt)
		assert.True(t, d >= p.MinStep && d <= p.MaxStep, "segment %d length %v outside band", i, d)
		assert.GreaterOrEqual(t, pt.Z, p.CruiseMin)
		assert.LessOrEqual(t, pt.Z, p.Height-1)
		assert.True(t, pt.X >= 0 && pt.X < p.Width && pt.Y >= 0 && pt.Y < p.Depth, "point %d out of bounds: %v", i, pt)
	}

	last := route[len(route)-3]
	descent, ground := route[len(route)-2], route[len(route)-1]
	assert.Equal(t, last.XY(), descent.XY())
	assert.Equal(t, last.XY(), ground.XY())
	assert.GreaterOrEqual(t, descent.Z, p.ClimbMin)
	assert.LessOrEqual(t, descent.Z, p.ClimbMax)
	assert.Equal(t, 0, ground.Z)
}

func TestRoute_Exhausted(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Depth, p.Height = 12, 12, 12
	p.MaxAttempts = 500

	g, err := New(p, 1)
	require.NoError(t, err)

	_, err = g.Route()
	assert.True(t, errors.Is(err, ErrGenerationExhausted), "got %v", err)
}

func TestGenerate_EndpointClearance(t *testing.T) {
	p := smallParams()

	for _, seed := range []uint64{1, 5, 9, 13} {
		g, err := New(p, seed)
		require.NoError(t, err)

		res, err := g.Generate()
		require.NoError(t, err)
		s := res.Scenario
		assert.Equal(t, res.Sampled-res.Cleared, len(s.Collisions))

		anchors := []pmath.Point3{s.Route[1], s.Route[len(s.Route)-2]}
		for _, o := range s.Collisions {
			for _, a := range anchors {
				blocked := o.Z <= a.Z+p.ClearanceHeadroom && o.DistanceXY(a) <= p.ClearanceRadius
				require.False(t, blocked, "seed %d: obstacle %v blocks corridor at %v", seed, o, a)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := smallParams()

	g1, err := New(p, 99)
	require.NoError(t, err)
	g2, err := New(p, 99)
	require.NoError(t, err)

	r1, err := g1.Generate()
	require.NoError(t, err)
	r2, err := g2.Generate()
	require.NoError(t, err)

	assert.Equal(t, r1.Scenario.Route, r2.Scenario.Route)
	assert.Equal(t, r1.Scenario.Collisions, r2.Scenario.Collisions)
	assert.Equal(t, Name, r1.Scenario.Name)
	assert.Equal(t, scene.FrameWorld, r1.Scenario.Frame)
	assert.Len(t, r1.Scenario.Features, len(r1.Scenario.Collisions))
}

func TestClearAround(t *testing.T) {
	set := scene.NewObstacleSet()
	anchor := pmath.Point3{X: 10, Y: 10, Z: 12}
	keep := []pmath.Point3{
		{X: 10, Y: 10, Z: 18}, // above headroom
		{X: 16, Y: 10, Z: 0},  // outside radius
		{X: 14, Y: 14, Z: 5},  // diagonal distance ~5.66
	}
	drop := []pmath.Point3{
		{X: 10, Y: 10, Z: 0},
		{X: 10, Y: 10, Z: 17}, // exactly at headroom
		{X: 15, Y: 10, Z: 3},  // exactly at radius
		{X: 13, Y: 14, Z: 12}, // distance 5
	}
	for _, o := range append(append([]pmath.Point3{}, keep...), drop...) {
		set.Add(o)
	}

	removed := ClearAround(set, anchor, 5, 5)

	assert.Equal(t, len(drop), removed)
	assert.ElementsMatch(t, keep, set.Points())
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		volume bool // rejected by ValidateVolume, and so by New
	}{
		{"zero width", func(p *Params) { p.Width = 0 }, true},
		{"negative depth", func(p *Params) { p.Depth = -1 }, true},
		{"probability above one", func(p *Params) { p.Probability = 1.5 }, true},
		{"negative probability", func(p *Params) { p.Probability = -0.1 }, true},
		{"height below cruise floor", func(p *Params) { p.Height = 10 }, false},
		{"inverted climb", func(p *Params) { p.ClimbMin, p.ClimbMax = 20, 10 }, false},
		{"inverted band", func(p *Params) { p.MinStep, p.MaxStep = 35, 20 }, false},
		{"no attempts", func(p *Params) { p.MaxAttempts = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			err := p.Validate()
			assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)

			_, err = New(p, 1)
			if tt.volume {
				assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
			} else {
				assert.NoError(t, err)
				assert.True(t, errors.Is(p.ValidateRoute(), ErrInvalidParams))
			}
		})
	}

	assert.NoError(t, DefaultParams().Validate())
	assert.Equal(t, 29, DefaultParams().RouteLength())
}
