// Package grid holds decoded semantic bitmaps and the passes that reduce
// them to route markers and obstacle positions.
package grid

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when pixel data does not fill the grid.
var ErrDimensionMismatch = errors.New("pixel count does not match grid dimensions")

// Grid is a row-major 2D grid of raw color-index values.
type Grid struct {
	Width  int
	Height int
	Pix    []int
}

// New creates a grid filled with fill.
func New(width, height, fill int) *Grid {
	g := &Grid{Width: width, Height: height, Pix: make([]int, width*height)}
	if fill != 0 {
		for i := range g.Pix {
			g.Pix[i] = fill
		}
	}
	return g
}

// FromRows builds a grid from equally sized rows.
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return &Grid{}, nil
	}
	width := len(rows[0])
	g := &Grid{Width: width, Height: len(rows), Pix: make([]int, 0, width*len(rows))}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d pixels, want %d", ErrDimensionMismatch, y, len(row), width)
		}
		g.Pix = append(g.Pix, row...)
	}
	return g, nil
}

// Len returns the number of pixels.
func (g *Grid) Len() int {
	return g.Width * g.Height
}

// At returns the value at (x, y). Coordinates must be in bounds.
func (g *Grid) At(x, y int) int {
	return g.Pix[y*g.Width+x]
}

// Set stores v at (x, y).
func (g *Grid) Set(x, y, v int) {
	g.Pix[y*g.Width+x] = v
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// IsBorder reports whether (x, y) lies on the outermost ring.
func (g *Grid) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.Width-1 || y == g.Height-1
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	pix := make([]int, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// CountByValue returns how many pixels hold each value.
func (g *Grid) CountByValue() map[int]int {
	counts := make(map[int]int)
	for _, v := range g.Pix {
		counts[v]++
	}
	return counts
}
