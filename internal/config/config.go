// Package config handles skyroute configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/skyroute/pkg/grid"
	"github.com/Faultbox/skyroute/pkg/randgen"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all skyroute settings.
type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	Palette  grid.Palette   `yaml:"palette"`
	Random   randgen.Params `yaml:"random"`
	Output   OutputConfig   `yaml:"output"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ScenarioConfig holds the altitude rules for bitmap scenarios.
type ScenarioConfig struct {
	CruiseHeight  int  `yaml:"cruise_height"`
	ObstacleLow   int  `yaml:"obstacle_low"`
	ObstacleHigh  int  `yaml:"obstacle_high"`
	ObstacleStep  int  `yaml:"obstacle_step"`
	BridgeHeight  int  `yaml:"bridge_height"`
	CanopyOffset  int  `yaml:"canopy_offset"`
	SkipOptimizer bool `yaml:"skip_optimizer"`
}

// Expander returns the obstacle expander described by the config.
func (s ScenarioConfig) Expander() scene.Expander {
	return scene.Expander{
		Low:          s.ObstacleLow,
		High:         s.ObstacleHigh,
		Step:         s.ObstacleStep,
		BridgeHeight: s.BridgeHeight,
		CanopyOffset: s.CanopyOffset,
	}
}

// OutputConfig holds which artefacts get written and where.
type OutputConfig struct {
	Dir            string `yaml:"dir"`             // Parent of per-scenario directories
	Drawio         bool   `yaml:"drawio"`          // Write <name>.drawio
	DrawioTemplate string `yaml:"drawio_template"` // Empty uses the built-in template
	PlotPNG        bool   `yaml:"plot_png"`        // Write <name>.png
	PlotHTML       bool   `yaml:"plot_html"`       // Write <name>.html
}

// CatalogConfig holds the scenario catalog database settings.
type CatalogConfig struct {
	Path string `yaml:"path"` // Empty disables the catalog
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	expander := scene.DefaultExpander()
	return &Config{
		Scenario: ScenarioConfig{
			CruiseHeight: scene.DefaultCruiseHeight,
			ObstacleLow:  expander.Low,
			ObstacleHigh: expander.High,
			ObstacleStep: expander.Step,
			BridgeHeight: expander.BridgeHeight,
			CanopyOffset: expander.CanopyOffset,
		},
		Palette: grid.DefaultPalette(),
		Random:  randgen.DefaultParams(),
		Output: OutputConfig{
			Dir:    ".",
			Drawio: true,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if err := c.Scenario.Expander().Validate(); err != nil {
		return fmt.Errorf("%w: scenario: %w", ErrInvalidConfig, err)
	}
	if !c.Palette.Distinct() {
		return fmt.Errorf("%w: palette values must be distinct", ErrInvalidConfig)
	}
	if err := c.Random.Validate(); err != nil {
		return fmt.Errorf("%w: random: %w", ErrInvalidConfig, err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output dir is empty", ErrInvalidConfig)
	}
	return nil
}
