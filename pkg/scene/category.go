// Package scene holds the scenario data model: routes, obstacle sets,
// collision clouds and the rules that turn 2D features into 3D geometry.
package scene

import "fmt"

// Category is the semantic meaning of a map pixel.
type Category uint8

// Semantic categories.
const (
	Unclassified Category = iota // Any value without a meaning
	RoutePoint                   // Route marker
	Wall                         // Wall or generic obstacle
	Tree                         // Trunk with canopy
	Bridge                       // Elevated deck
	Air                          // Open space
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case Unclassified:
		return "Unclassified"
	case RoutePoint:
		return "RoutePoint"
	case Wall:
		return "Wall"
	case Tree:
		return "Tree"
	case Bridge:
		return "Bridge"
	case Air:
		return "Air"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// IsObstacle returns true for categories that expand into collision points.
func (c Category) IsObstacle() bool {
	return c == Wall || c == Tree || c == Bridge
}

// IsSemantic returns true for the categories the classifier collects.
func (c Category) IsSemantic() bool {
	return c == RoutePoint || c.IsObstacle()
}
