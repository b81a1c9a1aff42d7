package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skyroute/internal/catalog"
	"github.com/Faultbox/skyroute/internal/config"
	"github.com/Faultbox/skyroute/internal/logger"
	"github.com/Faultbox/skyroute/internal/plot"
	"github.com/Faultbox/skyroute/pkg/formats"
	"github.com/Faultbox/skyroute/pkg/randgen"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Output file extensions.
const (
	ExtRoute      = ".route"
	ExtCollisions = ".collisions"
	ExtDrawio     = ".drawio"
	ExtPNG        = ".png"
	ExtHTML       = ".html"
)

// Provenance describes where a scenario came from, for the catalog.
type Provenance struct {
	Source    catalog.Source
	InputPath string          // bitmap scenarios
	Seed      *uint64         // random scenarios
	Params    *randgen.Params // random scenarios
}

// BitmapProvenance describes a scenario converted from the bitmap at path.
func BitmapProvenance(path string) Provenance {
	return Provenance{Source: catalog.SourceBitmap, InputPath: path}
}

// RandomProvenance describes a generated scenario.
func RandomProvenance(g *Generated, params randgen.Params) Provenance {
	seed := g.Seed
	return Provenance{Source: catalog.SourceRandom, Seed: &seed, Params: &params}
}

// Report lists what an export produced.
type Report struct {
	Dir       string
	Files     []string
	Stats     scene.Stats
	CatalogID string // empty when the catalog is disabled
}

// Exporter writes scenario artefacts to <dir>/<name>/.
type Exporter struct {
	output   config.OutputConfig
	template string
	catalog  *catalog.Catalog
	now      func() time.Time
	log      *zap.Logger
}

// NewExporter creates an exporter for cfg.Output. cat may be nil to skip
// cataloguing.
func NewExporter(cfg *config.Config, cat *catalog.Catalog) (*Exporter, error) {
	tmpl := formats.DefaultTemplate()
	if cfg.Output.Drawio && cfg.Output.DrawioTemplate != "" {
		var err error
		if tmpl, err = formats.LoadTemplate(cfg.Output.DrawioTemplate); err != nil {
			return nil, err
		}
	}
	return &Exporter{
		output:   cfg.Output,
		template: tmpl,
		catalog:  cat,
		now:      time.Now,
		log:      logger.Named("export"),
	}, nil
}

type artefact struct {
	ext    string
	render func(io.Writer) error
}

func (e *Exporter) artefacts(s *scene.Scenario) []artefact {
	list := []artefact{
		{ExtRoute, func(w io.Writer) error { return formats.WriteRoute(w, s.Route, s.Frame) }},
		{ExtCollisions, func(w io.Writer) error { return formats.WriteCollisions(w, s.Collisions, s.Frame) }},
	}
	if e.output.Drawio {
		d := formats.NewDiagram(s, e.now())
		list = append(list, artefact{ExtDrawio, func(w io.Writer) error {
			return formats.RenderDrawio(w, e.template, d)
		}})
	}
	if e.output.PlotPNG {
		list = append(list, artefact{ExtPNG, func(w io.Writer) error { return plot.RenderPNG(w, s) }})
	}
	if e.output.PlotHTML {
		list = append(list, artefact{ExtHTML, func(w io.Writer) error { return plot.RenderHTML(w, s) }})
	}
	return list
}

// Export renders every enabled artefact, then writes them all or none: a
// failed render or write leaves the output directory as it was.
func (e *Exporter) Export(ctx context.Context, s *scene.Scenario, prov Provenance) (*Report, error) {
	log := e.log.With(logger.Scenario(s.Name, s.Frame.String())...)

	list := e.artefacts(s)
	rendered := make([][]byte, len(list))
	for i, a := range list {
		var buf bytes.Buffer
		if err := a.render(&buf); err != nil {
			return nil, fmt.Errorf("rendering %s%s: %w", s.Name, a.ext, err)
		}
		rendered[i] = buf.Bytes()
	}

	dir := filepath.Join(e.output.Dir, s.Name)
	_, statErr := os.Stat(dir)
	created := os.IsNotExist(statErr)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	report := &Report{Dir: dir, Stats: scene.ComputeStats(s.Route, s.Collisions)}
	files := make([]formats.File, len(list))
	for i, a := range list {
		data := rendered[i]
		files[i] = formats.File{
			Path: filepath.Join(dir, s.Name+a.ext),
			Render: func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			},
		}
		report.Files = append(report.Files, files[i].Path)
	}
	if err := formats.WriteFilesAtomic(files); err != nil {
		if created {
			os.Remove(dir)
		}
		return nil, fmt.Errorf("writing %s: %w", dir, err)
	}
	for i, f := range report.Files {
		log.Debug("wrote artefact", zap.String("path", f), zap.Int("bytes", len(rendered[i])))
	}

	log.Info("scenario exported",
		zap.String("dir", dir),
		zap.Int("files", len(report.Files)),
		zap.Int("segments", report.Stats.Segments),
		zap.Float64("length", report.Stats.Length),
		zap.Float64("mean_segment", report.Stats.MeanSegment),
		zap.Int("max_altitude", report.Stats.MaxAltitude))

	if e.catalog != nil {
		id, err := e.catalog.Record(ctx, entryFor(s, prov, report))
		if err != nil {
			return nil, err
		}
		report.CatalogID = id
		log.Info("scenario catalogued", zap.String("id", id))
	}

	return report, nil
}

func entryFor(s *scene.Scenario, prov Provenance, r *Report) catalog.Entry {
	e := catalog.Entry{
		Name:            s.Name,
		Source:          prov.Source,
		Frame:           s.Frame.String(),
		InputPath:       prov.InputPath,
		Seed:            prov.Seed,
		RoutePoints:     r.Stats.RoutePoints,
		CollisionPoints: r.Stats.CollisionPoints,
		RouteLength:     r.Stats.Length,
		OutputDir:       r.Dir,
	}
	if p := prov.Params; p != nil {
		e.Width, e.Depth, e.Height = &p.Width, &p.Depth, &p.Height
		e.Probability = &p.Probability
	}
	return e
}
