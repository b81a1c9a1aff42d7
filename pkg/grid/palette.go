package grid

import "github.com/Faultbox/skyroute/pkg/scene"

// Palette maps raw color indices to semantic categories.
type Palette struct {
	RoutePoint int `yaml:"route_point"`
	Wall       int `yaml:"wall"`
	Tree       int `yaml:"tree"`
	Bridge     int `yaml:"bridge"`
	Air        int `yaml:"air"`
}

// DefaultPalette matches the 16-color editor palette: red route markers,
// black walls, teal bridges, white air. Trees use -1, which no 8-bit image
// can produce.
func DefaultPalette() Palette {
	return Palette{
		RoutePoint: 9,
		Wall:       0,
		Tree:       -1,
		Bridge:     6,
		Air:        15,
	}
}

// Category returns the semantic category of a raw value.
func (p Palette) Category(v int) scene.Category {
	switch v {
	case p.RoutePoint:
		return scene.RoutePoint
	case p.Wall:
		return scene.Wall
	case p.Tree:
		return scene.Tree
	case p.Bridge:
		return scene.Bridge
	case p.Air:
		return scene.Air
	default:
		return scene.Unclassified
	}
}

// Distinct reports whether every category has its own value.
func (p Palette) Distinct() bool {
	seen := map[int]bool{}
	for _, v := range []int{p.RoutePoint, p.Wall, p.Tree, p.Bridge, p.Air} {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}
