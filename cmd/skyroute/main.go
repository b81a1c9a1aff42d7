// skyroute converts classified bitmaps into 3D flight scenarios and
// generates random ones.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/skyroute/internal/catalog"
	"github.com/Faultbox/skyroute/internal/config"
	"github.com/Faultbox/skyroute/internal/logger"
	"github.com/Faultbox/skyroute/internal/pipeline"
	"github.com/Faultbox/skyroute/pkg/formats"
	"github.com/Faultbox/skyroute/pkg/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "convert", "c":
		cmdConvert(args)
	case "random", "r":
		cmdRandom(args)
	case "info":
		cmdInfo(args)
	case "catalog", "ls":
		cmdCatalog(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`skyroute - flight scenario builder

Usage:
  skyroute <command> [options]

Commands:
  convert [flags] <image>              Build a scenario from a classified bitmap
  random [flags]                       Generate a random scenario
  info <file.route> [file.collisions]  Show route statistics
  catalog [-n N] [catalog.db]          List catalogued scenarios
  help                                 Show this help

Examples:
  skyroute convert -order "2 0 1" -plot maps/town.bmp
  skyroute random -seed 42 -width 200 -p 0.002 -out scenarios
  skyroute info scenarios/town/town.route scenarios/town/town.collisions
  skyroute catalog -n 10 skyroute.db`)
	fmt.Println()
	config.Usage()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// setup parses subcommand flags, loads the config and starts logging.
func setup(args []string) *config.Config {
	if err := config.ParseFlags(args); err != nil {
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fatalf("config: %v", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatalf("logger: %v", err)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg
}

// openCatalog opens the configured catalog, nil when disabled.
func openCatalog(cfg *config.Config) *catalog.Catalog {
	if cfg.Catalog.Path == "" {
		return nil
	}
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		logger.Error("failed to open catalog", zap.String("path", cfg.Catalog.Path), zap.Error(err))
		os.Exit(1)
	}
	return cat
}

func export(cfg *config.Config, s *scene.Scenario, prov pipeline.Provenance) {
	cat := openCatalog(cfg)
	if cat != nil {
		defer cat.Close()
	}

	exp, err := pipeline.NewExporter(cfg, cat)
	if err != nil {
		logger.Error("failed to create exporter", zap.Error(err))
		os.Exit(1)
	}
	report, err := exp.Export(context.Background(), s, prov)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		os.Exit(1)
	}

	for _, f := range report.Files {
		fmt.Println(f)
	}
	if report.CatalogID != "" {
		fmt.Printf("Catalog id: %s\n", report.CatalogID)
	}
}

func cmdConvert(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	if len(config.Args()) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: skyroute convert [flags] <image>")
		os.Exit(1)
	}
	path := config.Args()[0]

	var order pipeline.OrderSource = pipeline.Prompter{In: os.Stdin, Out: os.Stdout}
	if o := config.Order(); o != "" {
		static, err := pipeline.ParseOrder(o)
		if err != nil {
			fatalf("%v", err)
		}
		order = static
	}

	s, err := pipeline.NewConverter(cfg, order).Convert(path)
	if err != nil {
		logger.Error("conversion failed", zap.String("input", path), zap.Error(err))
		os.Exit(1)
	}
	export(cfg, s, pipeline.BitmapProvenance(path))
}

func cmdRandom(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	gen, err := pipeline.Generate(cfg, config.Seed())
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("Seed: %d\n", gen.Seed)
	export(cfg, gen.Scenario, pipeline.RandomProvenance(gen, cfg.Random))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: skyroute info <file.route> [file.collisions]")
		os.Exit(1)
	}

	// Lengths do not depend on the sign of y, so the frame is irrelevant here.
	route, err := formats.ParsePointsFile(args[0], scene.FrameWorld)
	if err != nil {
		fatalf("%v", err)
	}
	var collisions scene.CollisionCloud
	if len(args) > 1 {
		collisions, err = formats.ParsePointsFile(args[1], scene.FrameWorld)
		if err != nil {
			fatalf("%v", err)
		}
	}
	st := scene.ComputeStats(route, collisions)

	fmt.Printf("Route:       %s\n", args[0])
	fmt.Printf("Points:      %d\n", st.RoutePoints)
	fmt.Printf("Segments:    %d\n", st.Segments)
	fmt.Printf("Length:      %.2f\n", st.Length)
	fmt.Printf("Segment:     mean %.2f, stddev %.2f, min %.2f, max %.2f\n",
		st.MeanSegment, st.StdDevSegment, st.MinSegment, st.MaxSegment)
	fmt.Printf("Max alt:     %d\n", st.MaxAltitude)
	if len(args) > 1 {
		fmt.Printf("Collisions:  %d (%s)\n", st.CollisionPoints, filepath.Base(args[1]))
	}
}

func cmdCatalog(args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	limit := fs.Int("n", 20, "Limit output to N scenarios (0 = all)")
	fs.Parse(args)

	path := fs.Arg(0)
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			fatalf("config: %v", err)
		}
		path = cfg.Catalog.Path
	}
	if path == "" {
		fatalf("no catalog configured; pass a path or set catalog.path")
	}
	if _, err := os.Stat(path); err != nil {
		fatalf("%v", err)
	}

	cat, err := catalog.Open(path)
	if err != nil {
		fatalf("%v", err)
	}
	defer cat.Close()

	entries, err := cat.List(context.Background(), *limit)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("%-36s  %-19s  %-6s  %-16s  %6s  %8s  %8s\n",
		"ID", "CREATED", "SOURCE", "NAME", "ROUTE", "COLLIDE", "LENGTH")
	for _, e := range entries {
		fmt.Printf("%-36s  %-19s  %-6s  %-16s  %6d  %8d  %8.1f\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.Source, e.Name,
			e.RoutePoints, e.CollisionPoints, e.RouteLength)
		if e.Seed != nil {
			fmt.Printf("%38sseed=%d\n", "", *e.Seed)
		}
	}
	fmt.Printf("\n%d scenario(s)\n", len(entries))
}
