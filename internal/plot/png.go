// Package plot renders scenario previews: a top-down PNG and an interactive
// 3D HTML view.
package plot

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Preview colors.
var (
	obstacleColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	routeColor    = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// PNGSize is the edge length of the rendered PNG.
const PNGSize = 8 * vg.Inch

// xyPoints projects points onto the ground plane in file coordinates so
// bitmap scenarios are drawn upright.
func xyPoints(points []math.Point3, f scene.Frame) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		p = f.ToFile(p)
		xys[i] = plotter.XY{X: float64(p.X), Y: float64(p.Y)}
	}
	return xys
}

// TopDown builds a top-down plot of the collision cloud and the route.
func TopDown(s *scene.Scenario) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - top view", s.Name)
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.Add(plotter.NewGrid())

	if len(s.Collisions) > 0 {
		obstacles, err := plotter.NewScatter(xyPoints(s.Collisions, s.Frame))
		if err != nil {
			return nil, fmt.Errorf("obstacle scatter: %w", err)
		}
		obstacles.GlyphStyle.Color = obstacleColor
		obstacles.GlyphStyle.Radius = vg.Points(1.5)
		obstacles.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(obstacles)
		p.Legend.Add(fmt.Sprintf("collisions (%d)", len(s.Collisions)), obstacles)
	}

	if len(s.Route) > 0 {
		line, points, err := plotter.NewLinePoints(xyPoints(s.Route, s.Frame))
		if err != nil {
			return nil, fmt.Errorf("route line: %w", err)
		}
		line.Color = routeColor
		line.Width = vg.Points(1.5)
		points.Color = routeColor
		points.Shape = draw.CircleGlyph{}
		points.Radius = vg.Points(3)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("route (%d)", len(s.Route)), line, points)
	}

	p.Legend.Top = true
	return p, nil
}

// RenderPNG writes the top-down plot as PNG.
func RenderPNG(w io.Writer, s *scene.Scenario) error {
	p, err := TopDown(s)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(PNGSize, PNGSize, "png")
	if err != nil {
		return fmt.Errorf("creating png canvas: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
