package formats

import (
	_ "embed"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Template placeholders.
const (
	PlaceholderModified = "INSERT_MODIFIED"
	PlaceholderID       = "INSERT_ID"
	PlaceholderCells    = "INSERT_MX_CELLS"
)

// Cell fill colors.
const (
	ObstacleFill = "#eeeeee"
	BridgeFill   = "#888888"
)

// DefaultFontSize is the label size of diagram cells.
const DefaultFontSize = 20

// defaultTemplate is an empty draw.io page holding the three placeholders.
//
//go:embed template.drawio
var defaultTemplate string

// DefaultTemplate returns the built-in diagram template.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadTemplate reads a diagram template, falling back to the built-in one
// when path is empty.
func LoadTemplate(path string) (string, error) {
	if path == "" {
		return defaultTemplate, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading diagram template: %w", err)
	}
	return string(data), nil
}

// Diagram is the input of a draw.io export. Coordinates are model
// coordinates and are not flipped.
type Diagram struct {
	ID        string
	Modified  time.Time
	Obstacles []scene.Feature
	Route     []math.Point2
	FontSize  int
}

// NewDiagram builds a diagram from a scenario's features and route.
func NewDiagram(s *scene.Scenario, modified time.Time) Diagram {
	route := make([]math.Point2, len(s.Route))
	for i, p := range s.Route {
		route[i] = p.XY()
	}
	return Diagram{
		ID:        s.Name,
		Modified:  modified,
		Obstacles: s.Features,
		Route:     route,
		FontSize:  DefaultFontSize,
	}
}

// RenderDrawio substitutes the diagram into tmpl and writes the result. The
// ID lands in XML attributes and is escaped.
func RenderDrawio(w io.Writer, tmpl string, d Diagram) error {
	r := strings.NewReplacer(
		PlaceholderModified, d.Modified.Format("2006-01-02 15:04:05.000000"),
		PlaceholderID, html.EscapeString(d.ID),
		PlaceholderCells, d.cells(),
	)
	_, err := r.WriteString(w, tmpl)
	return err
}

// cells renders obstacle cells then route cells. Ids restart at zero on
// every call.
func (d Diagram) cells() string {
	fontSize := d.FontSize
	if fontSize == 0 {
		fontSize = DefaultFontSize
	}

	var sb strings.Builder
	for i, f := range d.Obstacles {
		fill := ObstacleFill
		if f.Kind == scene.Bridge {
			fill = BridgeFill
		}
		writeObstacleCell(&sb, i, f.Pos, fill, fontSize)
	}
	for i, p := range d.Route {
		writeRouteCells(&sb, i, p, fontSize)
	}
	return sb.String()
}

func writeObstacleCell(sb *strings.Builder, id int, p math.Point2, fill string, fontSize int) {
	fmt.Fprintf(sb, `        <mxCell id="collsionpoint-%d" value="" style="ellipse;whiteSpace=wrap;html=1;aspect=fixed;fontSize=%d;fillColor=%s;strokeColor=#36393d;" vertex="1" parent="1">
          <mxGeometry x="%d" y="%d" width="30" height="30" as="geometry" />
        </mxCell>
`, id, fontSize, fill, p.X*10-15, p.Y*10-15)
}

func writeRouteCells(sb *strings.Builder, id int, p math.Point2, fontSize int) {
	fmt.Fprintf(sb, `        <mxCell id="routepoint-%d" value="" style="shape=waypoint;sketch=0;fillStyle=solid;size=6;pointerEvents=1;points=[];fillColor=none;resizable=0;rotatable=0;perimeter=centerPerimeter;snapToPoint=1;fontSize=%d;" vertex="1" parent="1">
          <mxGeometry x="%d" y="%d" width="20" height="20" as="geometry" />
        </mxCell>
        <mxCell id="routepointtext-%d" value="\(p_{%d}\)" style="text;html=1;align=center;verticalAlign=middle;resizable=0;points=[];autosize=1;strokeColor=none;fillColor=none;fontSize=%d;" vertex="1" parent="1">
          <mxGeometry x="%d" y="%d" width="70" height="30" as="geometry" />
        </mxCell>
`, id, fontSize, p.X*10-10, p.Y*10-10, id, id, fontSize, p.X*10-15, p.Y*10-10)
}
