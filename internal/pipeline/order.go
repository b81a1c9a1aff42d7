// Package pipeline wires decoding, route building, generation and export
// into the two scenario producing flows.
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/skyroute/pkg/math"
)

// ErrInvalidOrder is returned for an order line that is not a list of
// integers.
var ErrInvalidOrder = errors.New("invalid route order")

// OrderSource chooses which route markers the route visits, and in which
// order. Returned indices are validated by scene.BuildRoute.
type OrderSource interface {
	Order(markers []math.Point2) ([]int, error)
}

// StaticOrder is an order fixed up front, e.g. from the -order flag.
type StaticOrder []int

// Order returns o unchanged.
func (o StaticOrder) Order([]math.Point2) ([]int, error) {
	return o, nil
}

// ParseOrder parses whitespace separated marker indices.
func ParseOrder(s string) (StaticOrder, error) {
	fields := strings.Fields(s)
	order := make(StaticOrder, 0, len(fields))
	for _, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an index", ErrInvalidOrder, f)
		}
		order = append(order, idx)
	}
	return order, nil
}

// Prompter asks the operator for the order on Out and reads one line from In.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Order lists the markers with their indices and reads the chosen order.
func (p Prompter) Order(markers []math.Point2) ([]int, error) {
	fmt.Fprintf(p.Out, "Found %d route markers:\n", len(markers))
	for i, m := range markers {
		fmt.Fprintf(p.Out, "  %3d: %s\n", i, m)
	}
	fmt.Fprint(p.Out, "Route order (indices separated by spaces): ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return nil, fmt.Errorf("reading route order: %w", err)
	}
	return ParseOrder(line)
}
