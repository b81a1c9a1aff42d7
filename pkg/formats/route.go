package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Point list errors.
var (
	ErrMalformedLine = errors.New("malformed point line")
)

// endMarker terminates a point list early.
const endMarker = "end"

// WritePoints writes one "x y z" line per point, converted to file
// coordinates by f.
func WritePoints(w io.Writer, points []math.Point3, f scene.Frame) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		p = f.ToFile(p)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRoute writes a route file.
func WriteRoute(w io.Writer, r scene.Route, f scene.Frame) error {
	return WritePoints(w, r, f)
}

// WriteCollisions writes a collision cloud file.
func WriteCollisions(w io.Writer, c scene.CollisionCloud, f scene.Frame) error {
	return WritePoints(w, c, f)
}

// ParsePoints reads "x y z" lines and converts them back to model
// coordinates. Empty lines and lines starting with a space or '#' are
// skipped, a line reading "end" stops parsing. A leading byte order mark is
// honoured, so files saved by Windows editors parse too.
func ParsePoints(r io.Reader, f scene.Frame) ([]math.Point3, error) {
	var points []math.Point3
	sc := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || line[0] == ' ' || line[0] == '#' {
			continue
		}
		if line == endMarker {
			break
		}

		p, err := parsePoint(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		points = append(points, f.FromFile(p))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading points: %w", err)
	}
	return points, nil
}

// parsePoint parses a single "x y z" line.
func parsePoint(line string) (math.Point3, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return math.Point3{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedLine, len(fields))
	}
	var v [3]int
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return math.Point3{}, fmt.Errorf("%w: %q is not an integer", ErrMalformedLine, field)
		}
		v[i] = n
	}
	return math.Point3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// ParseRoute parses a route file.
func ParseRoute(r io.Reader, f scene.Frame) (scene.Route, error) {
	points, err := ParsePoints(r, f)
	return scene.Route(points), err
}

// ParseCollisions parses a collision cloud file.
func ParseCollisions(r io.Reader, f scene.Frame) (scene.CollisionCloud, error) {
	points, err := ParsePoints(r, f)
	return scene.CollisionCloud(points), err
}

// ParsePointsFile parses a point list from disk.
func ParsePointsFile(path string, f scene.Frame) ([]math.Point3, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening point file: %w", err)
	}
	defer file.Close()
	return ParsePoints(file, f)
}
