package config

import (
	"flag"
	"fmt"
	"os"
)

var flags = flag.NewFlagSet("skyroute", flag.ContinueOnError)

var (
	flagConfig   = flags.String("config", "", "Path to config file")
	flagDebug    = flags.Bool("debug", false, "Enable debug logging")
	flagLogFile  = flags.String("log-file", "", "Also write logs to this file")
	flagOut      = flags.String("out", "", "Output directory")
	flagOrder    = flags.String("order", "", "Route marker order, e.g. \"2 0 1\" (skips the prompt)")
	flagSeed     = flags.Uint64("seed", 0, "Random seed (0 = time based)")
	flagCatalog  = flags.String("catalog", "", "Scenario catalog database path")
	flagPlot     = flags.Bool("plot", false, "Write a PNG plot")
	flagHTML     = flags.Bool("html", false, "Write an interactive 3D HTML view")
	flagNoDrawio = flags.Bool("no-drawio", false, "Skip the draw.io export")
	flagWidth    = flags.Int("width", 0, "Random volume width")
	flagDepth    = flags.Int("depth", 0, "Random volume depth")
	flagHeight   = flags.Int("height", 0, "Random volume height")
	flagProb     = flags.Float64("p", -1, "Random obstacle probability")
)

// ParseFlags parses command-line flags for a subcommand. Call this early in
// main() with the arguments following the subcommand name.
func ParseFlags(args []string) error {
	flags.SetOutput(os.Stderr)
	return flags.Parse(args)
}

// Usage prints the flag defaults.
func Usage() {
	fmt.Fprintln(flags.Output(), "Flags:")
	flags.PrintDefaults()
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flags.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Order returns the route order given via --order, empty if unset.
func Order() string {
	return *flagOrder
}

// Seed returns the random seed given via --seed, 0 if unset.
func Seed() uint64 {
	return *flagSeed
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagCatalog != "" {
		cfg.Catalog.Path = *flagCatalog
	}
	if *flagPlot {
		cfg.Output.PlotPNG = true
	}
	if *flagHTML {
		cfg.Output.PlotHTML = true
	}
	if *flagNoDrawio {
		cfg.Output.Drawio = false
	}
	if *flagWidth > 0 {
		cfg.Random.Width = *flagWidth
	}
	if *flagDepth > 0 {
		cfg.Random.Depth = *flagDepth
	}
	if *flagHeight > 0 {
		cfg.Random.Height = *flagHeight
	}
	if *flagProb >= 0 {
		cfg.Random.Probability = *flagProb
	}
}
