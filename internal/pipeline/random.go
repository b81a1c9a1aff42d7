package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skyroute/internal/config"
	"github.com/Faultbox/skyroute/internal/logger"
	"github.com/Faultbox/skyroute/pkg/randgen"
)

// Generated is a random scenario together with the seed that reproduces it.
type Generated struct {
	*randgen.Result
	Seed uint64
}

// Generate builds a random scenario from cfg.Random. A zero seed picks one
// from the clock; the chosen seed is logged and returned.
func Generate(cfg *config.Config, seed uint64) (*Generated, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log := logger.Named("random").With(zap.Uint64("seed", seed))

	gen, err := randgen.New(cfg.Random, seed)
	if err != nil {
		return nil, err
	}
	res, err := gen.Generate()
	if err != nil {
		return nil, err
	}

	log.Info("random scenario generated",
		zap.Int("sampled", res.Sampled),
		zap.Int("cleared", res.Cleared),
		zap.Int("collision_points", len(res.Scenario.Collisions)),
		zap.Int("route_points", len(res.Scenario.Route)))

	return &Generated{Result: res, Seed: seed}, nil
}
