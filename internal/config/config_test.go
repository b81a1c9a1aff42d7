package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test scenario defaults
	if cfg.Scenario.CruiseHeight != 10 {
		t.Errorf("expected cruise height 10, got %d", cfg.Scenario.CruiseHeight)
	}
	if cfg.Scenario.ObstacleLow != 0 || cfg.Scenario.ObstacleHigh != 20 || cfg.Scenario.ObstacleStep != 2 {
		t.Errorf("expected obstacle picket 0..20 step 2, got %d..%d step %d",
			cfg.Scenario.ObstacleLow, cfg.Scenario.ObstacleHigh, cfg.Scenario.ObstacleStep)
	}
	if cfg.Scenario.BridgeHeight != 20 {
		t.Errorf("expected bridge height 20, got %d", cfg.Scenario.BridgeHeight)
	}

	// Test palette defaults
	if cfg.Palette.RoutePoint != 9 || cfg.Palette.Wall != 0 || cfg.Palette.Tree != -1 ||
		cfg.Palette.Bridge != 6 || cfg.Palette.Air != 15 {
		t.Errorf("unexpected default palette: %+v", cfg.Palette)
	}

	// Test random defaults
	if cfg.Random.Width != 100 || cfg.Random.Depth != 100 || cfg.Random.Height != 100 {
		t.Errorf("expected 100x100x100 volume, got %dx%dx%d", cfg.Random.Width, cfg.Random.Depth, cfg.Random.Height)
	}
	if cfg.Random.Probability != 0.001 {
		t.Errorf("expected probability 0.001, got %f", cfg.Random.Probability)
	}

	// Test output defaults
	if cfg.Output.Dir != "." {
		t.Errorf("expected output dir '.', got %s", cfg.Output.Dir)
	}
	if !cfg.Output.Drawio {
		t.Error("expected drawio export to be enabled by default")
	}
	if cfg.Output.PlotPNG || cfg.Output.PlotHTML {
		t.Error("expected plots to be disabled by default")
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("expected catalog disabled, got %s", cfg.Catalog.Path)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "skyroute.yaml")

	yamlContent := `
scenario:
  cruise_height: 15
  obstacle_high: 30
  bridge_height: 25

palette:
  tree: 2

random:
  width: 50
  probability: 0.01
  max_attempts: 10

output:
  dir: "scenarios"
  drawio: false
  plot_png: true

catalog:
  path: "catalog.db"

logging:
  level: "debug"
  log_file: "skyroute.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Scenario.CruiseHeight != 15 {
		t.Errorf("expected cruise height 15, got %d", cfg.Scenario.CruiseHeight)
	}
	if cfg.Scenario.ObstacleHigh != 30 {
		t.Errorf("expected obstacle high 30, got %d", cfg.Scenario.ObstacleHigh)
	}
	if cfg.Scenario.ObstacleStep != 2 {
		t.Errorf("expected untouched obstacle step 2, got %d", cfg.Scenario.ObstacleStep)
	}
	if cfg.Palette.Tree != 2 {
		t.Errorf("expected tree value 2, got %d", cfg.Palette.Tree)
	}
	if cfg.Palette.RoutePoint != 9 {
		t.Errorf("expected untouched route value 9, got %d", cfg.Palette.RoutePoint)
	}
	if cfg.Random.Width != 50 || cfg.Random.Depth != 100 {
		t.Errorf("expected 50x100, got %dx%d", cfg.Random.Width, cfg.Random.Depth)
	}
	if cfg.Random.MaxAttempts != 10 {
		t.Errorf("expected max attempts 10, got %d", cfg.Random.MaxAttempts)
	}
	if cfg.Output.Dir != "scenarios" || cfg.Output.Drawio || !cfg.Output.PlotPNG {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.Catalog.Path != "catalog.db" {
		t.Errorf("expected catalog path catalog.db, got %s", cfg.Catalog.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "skyroute.log" {
		t.Errorf("expected log file 'skyroute.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
scenario:
  cruise_height: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/skyroute.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero obstacle step", func(c *Config) { c.Scenario.ObstacleStep = 0 }},
		{"inverted obstacle range", func(c *Config) { c.Scenario.ObstacleLow = 30 }},
		{"duplicate palette value", func(c *Config) { c.Palette.Bridge = c.Palette.Wall }},
		{"bad probability", func(c *Config) { c.Random.Probability = 2 }},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Isolate from any real user config
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create skyroute.yaml in current directory
	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("scenario:\n  cruise_height: 12\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "output flags",
			setup: func() {
				*flagOut = "/tmp/scenarios"
				*flagPlot = true
				*flagHTML = true
				*flagNoDrawio = true
			},
			verify: func(cfg *Config) {
				if cfg.Output.Dir != "/tmp/scenarios" {
					t.Errorf("expected output dir /tmp/scenarios, got %s", cfg.Output.Dir)
				}
				if !cfg.Output.PlotPNG || !cfg.Output.PlotHTML {
					t.Error("expected plots enabled")
				}
				if cfg.Output.Drawio {
					t.Error("expected drawio disabled with no-drawio flag")
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagPlot = false
				*flagHTML = false
				*flagNoDrawio = false
			},
		},
		{
			name: "random volume flags",
			setup: func() {
				*flagWidth = 30
				*flagDepth = 40
				*flagHeight = 50
				*flagProb = 0.2
			},
			verify: func(cfg *Config) {
				if cfg.Random.Width != 30 || cfg.Random.Depth != 40 || cfg.Random.Height != 50 {
					t.Errorf("expected 30x40x50, got %dx%dx%d", cfg.Random.Width, cfg.Random.Depth, cfg.Random.Height)
				}
				if cfg.Random.Probability != 0.2 {
					t.Errorf("expected probability 0.2, got %f", cfg.Random.Probability)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagDepth = 0
				*flagHeight = 0
				*flagProb = -1
			},
		},
		{
			name: "zero probability flag",
			setup: func() {
				*flagProb = 0
			},
			verify: func(cfg *Config) {
				if cfg.Random.Probability != 0 {
					t.Errorf("expected probability 0, got %f", cfg.Random.Probability)
				}
			},
			teardown: func() {
				*flagProb = -1
			},
		},
		{
			name: "catalog flag",
			setup: func() {
				*flagCatalog = "runs.db"
			},
			verify: func(cfg *Config) {
				if cfg.Catalog.Path != "runs.db" {
					t.Errorf("expected catalog runs.db, got %s", cfg.Catalog.Path)
				}
			},
			teardown: func() {
				*flagCatalog = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestParseFlags(t *testing.T) {
	defer func() {
		*flagOrder = ""
		*flagSeed = 0
	}()

	if err := ParseFlags([]string{"-order", "2 0 1", "-seed", "42", "map.bmp"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if Order() != "2 0 1" {
		t.Errorf("expected order '2 0 1', got %q", Order())
	}
	if Seed() != 42 {
		t.Errorf("expected seed 42, got %d", Seed())
	}
	if args := Args(); len(args) != 1 || args[0] != "map.bmp" {
		t.Errorf("expected positional map.bmp, got %v", args)
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "skyroute.yaml")

	yamlContent := `
random:
  width: 60
  depth: 70
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 80
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (80), not file (60)
	if cfg.Random.Width != 80 {
		t.Errorf("expected width 80 from flag, got %d", cfg.Random.Width)
	}

	// Depth should be from file (70) since no flag override
	if cfg.Random.Depth != 70 {
		t.Errorf("expected depth 70 from file, got %d", cfg.Random.Depth)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "skyroute.yaml")
	if err := os.WriteFile(configPath, []byte("scenario:\n  obstacle_step: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skyroute.yaml")

	cfg := Default()
	cfg.Scenario.CruiseHeight = 18
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Scenario.CruiseHeight != 18 {
		t.Errorf("expected cruise height 18 after reload, got %d", loaded.Scenario.CruiseHeight)
	}
	if loaded.Palette.Tree != -1 {
		t.Errorf("expected tree sentinel -1 after reload, got %d", loaded.Palette.Tree)
	}
}
