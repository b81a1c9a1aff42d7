// Package randgen builds procedural scenarios: an i.i.d. obstacle field and
// a random-walk route whose takeoff and landing corridors are kept clear.
package randgen

import (
	"errors"
	"fmt"
)

// Generation errors.
var (
	ErrInvalidParams       = errors.New("invalid random scenario parameters")
	ErrGenerationExhausted = errors.New("route generation exhausted its attempts")
)

// Params controls random scenario generation.
type Params struct {
	Width       int     `yaml:"width"`
	Depth       int     `yaml:"depth"`
	Height      int     `yaml:"height"`
	Probability float64 `yaml:"probability"`

	InteriorPoints int     `yaml:"interior_points"`
	MinStep        float64 `yaml:"min_step"`
	MaxStep        float64 `yaml:"max_step"`
	ClimbMin       int     `yaml:"climb_min"`
	ClimbMax       int     `yaml:"climb_max"`
	CruiseMin      int     `yaml:"cruise_min"`

	ClearanceRadius   float64 `yaml:"clearance_radius"`
	ClearanceHeadroom int     `yaml:"clearance_headroom"`

	// MaxAttempts caps rejection sampling per interior point.
	MaxAttempts int `yaml:"max_attempts"`
}

// DefaultParams returns the standard 100x100x100 field at p=0.001.
func DefaultParams() Params {
	return Params{
		Width:             100,
		Depth:             100,
		Height:            100,
		Probability:       0.001,
		InteriorPoints:    25,
		MinStep:           20,
		MaxStep:           35,
		ClimbMin:          10,
		ClimbMax:          20,
		CruiseMin:         10,
		ClearanceRadius:   5,
		ClearanceHeadroom: 5,
		MaxAttempts:       100000,
	}
}

// RouteLength returns the number of points a generated route has.
func (p Params) RouteLength() int {
	return p.InteriorPoints + 4
}

// Validate checks the volume and the route parameters.
func (p Params) Validate() error {
	if err := p.ValidateVolume(); err != nil {
		return err
	}
	return p.ValidateRoute()
}

// ValidateVolume checks what obstacle sampling needs: positive bounds and a
// probability in [0,1].
func (p Params) ValidateVolume() error {
	switch {
	case p.Width <= 0 || p.Depth <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: bounds %dx%dx%d must be positive", ErrInvalidParams, p.Width, p.Depth, p.Height)
	case p.Probability < 0 || p.Probability > 1:
		return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidParams, p.Probability)
	}
	return nil
}

// ValidateRoute checks the random walk parameters against the volume.
func (p Params) ValidateRoute() error {
	switch {
	case p.InteriorPoints < 0:
		return fmt.Errorf("%w: negative interior point count", ErrInvalidParams)
	case p.ClimbMin < 0 || p.ClimbMax < p.ClimbMin:
		return fmt.Errorf("%w: climb range [%d,%d]", ErrInvalidParams, p.ClimbMin, p.ClimbMax)
	case p.CruiseMin < 0 || p.CruiseMin > p.Height-1:
		return fmt.Errorf("%w: cruise floor %d does not fit height %d", ErrInvalidParams, p.CruiseMin, p.Height)
	case p.MinStep < 0 || p.MaxStep < p.MinStep:
		return fmt.Errorf("%w: step band [%v,%v]", ErrInvalidParams, p.MinStep, p.MaxStep)
	case p.ClearanceRadius < 0 || p.ClearanceHeadroom < 0:
		return fmt.Errorf("%w: negative clearance", ErrInvalidParams)
	case p.MaxAttempts <= 0:
		return fmt.Errorf("%w: max attempts must be positive", ErrInvalidParams)
	}
	return nil
}
