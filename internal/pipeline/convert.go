package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/skyroute/internal/config"
	"github.com/Faultbox/skyroute/internal/logger"
	"github.com/Faultbox/skyroute/pkg/formats"
	"github.com/Faultbox/skyroute/pkg/grid"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Converter turns classified bitmaps into scenarios.
type Converter struct {
	scenario config.ScenarioConfig
	palette  grid.Palette
	order    OrderSource
	log      *zap.Logger
}

// NewConverter creates a converter using cfg's altitude rules and palette.
func NewConverter(cfg *config.Config, order OrderSource) *Converter {
	return &Converter{
		scenario: cfg.Scenario,
		palette:  cfg.Palette,
		order:    order,
		log:      logger.Named("convert"),
	}
}

// ScenarioName derives a scenario name from an input path: the file name
// without its extension, NFC normalized so decomposed file names from macOS
// map to the same output directory.
func ScenarioName(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Convert decodes the bitmap at path and builds its scenario.
func (c *Converter) Convert(path string) (*scene.Scenario, error) {
	g, err := formats.DecodeBitmapFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c.ConvertGrid(ScenarioName(path), g)
}

// ConvertGrid builds a scenario from an already decoded grid.
func (c *Converter) ConvertGrid(name string, g *grid.Grid) (*scene.Scenario, error) {
	log := c.log.With(logger.Scenario(name, scene.FrameImage.String())...)
	log.Debug("grid decoded", zap.Int("width", g.Width), zap.Int("height", g.Height))

	if !c.scenario.SkipOptimizer {
		optimized, stats := grid.Optimize(g, c.palette.Air)
		log.Info("grid optimized",
			zap.Int("pixels", stats.Total),
			zap.Int("optimized", stats.Optimized),
			zap.String("percent", fmt.Sprintf("%.2f%%", stats.Percent())))
		g = optimized
	}

	cls := grid.Classify(g, c.palette)
	counts := cls.Counts()
	log.Info("grid classified",
		zap.Int("markers", counts[scene.RoutePoint]),
		zap.Int("walls", counts[scene.Wall]),
		zap.Int("trees", counts[scene.Tree]),
		zap.Int("bridges", counts[scene.Bridge]))

	order, err := c.order.Order(cls.Routes)
	if err != nil {
		return nil, err
	}
	route, err := scene.BuildRoute(cls.Routes, order, c.scenario.CruiseHeight)
	if err != nil {
		return nil, err
	}

	cloud := c.scenario.Expander().Expand(cls.Walls, cls.Trees, cls.Bridges)
	log.Info("scenario built", zap.Int("route_points", len(route)), zap.Int("collision_points", len(cloud)))

	return &scene.Scenario{
		Name:       name,
		Frame:      scene.FrameImage,
		Route:      route,
		Collisions: cloud,
		Features:   cls.Features(),
	}, nil
}
