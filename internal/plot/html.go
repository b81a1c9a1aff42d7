package plot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// chartData converts points to 3D chart values in file coordinates. Route
// points are named p0, p1, ... for the tooltip.
func chartData(points []math.Point3, f scene.Frame, prefix string) []opts.Chart3DData {
	data := make([]opts.Chart3DData, len(points))
	for i, p := range points {
		p = f.ToFile(p)
		data[i] = opts.Chart3DData{Value: []interface{}{p.X, p.Y, p.Z}}
		if prefix != "" {
			data[i].Name = fmt.Sprintf("%s%d", prefix, i)
		}
	}
	return data
}

// Scatter3D builds the interactive 3D view of a scenario.
func Scatter3D(s *scene.Scenario) *charts.Scatter3D {
	stats := scene.ComputeStats(s.Route, s.Collisions)

	chart := charts.NewScatter3D()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: s.Name, Width: "1000px", Height: "800px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    s.Name,
			Subtitle: fmt.Sprintf("route=%d collisions=%d length=%.1f", stats.RoutePoints, stats.CollisionPoints, stats.Length),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z"}),
	)

	chart.AddSeries("collisions", chartData(s.Collisions, s.Frame, ""),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#888888"}))
	chart.AddSeries("route", chartData(s.Route, s.Frame, "p"),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#d62728"}))

	return chart
}

// RenderHTML writes the 3D view as a standalone HTML page.
func RenderHTML(w io.Writer, s *scene.Scenario) error {
	return Scatter3D(s).Render(w)
}
