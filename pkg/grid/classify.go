package grid

import (
	"github.com/Faultbox/skyroute/pkg/math"
	"github.com/Faultbox/skyroute/pkg/scene"
)

// Classification holds pixel positions per semantic category, each in
// row-major scan order.
type Classification struct {
	Routes  []math.Point2
	Walls   []math.Point2
	Trees   []math.Point2
	Bridges []math.Point2
}

// Counts returns the number of positions per category.
func (c *Classification) Counts() map[scene.Category]int {
	return map[scene.Category]int{
		scene.RoutePoint: len(c.Routes),
		scene.Wall:       len(c.Walls),
		scene.Tree:       len(c.Trees),
		scene.Bridge:     len(c.Bridges),
	}
}

// Features returns walls, trees and bridges as tagged features in
// expansion order.
func (c *Classification) Features() []scene.Feature {
	out := make([]scene.Feature, 0, len(c.Walls)+len(c.Trees)+len(c.Bridges))
	out = append(out, scene.Features2D(scene.Wall, c.Walls)...)
	out = append(out, scene.Features2D(scene.Tree, c.Trees)...)
	out = append(out, scene.Features2D(scene.Bridge, c.Bridges)...)
	return out
}

// Classify scans g row by row and collects the positions of route markers,
// walls, trees and bridges. Air and unknown values are ignored.
func Classify(g *Grid, p Palette) *Classification {
	c := &Classification{}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pos := math.Point2{X: x, Y: y}
			switch p.Category(g.At(x, y)) {
			case scene.RoutePoint:
				c.Routes = append(c.Routes, pos)
			case scene.Wall:
				c.Walls = append(c.Walls, pos)
			case scene.Tree:
				c.Trees = append(c.Trees, pos)
			case scene.Bridge:
				c.Bridges = append(c.Bridges, pos)
			}
		}
	}
	return c
}
