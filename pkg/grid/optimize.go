package grid

// OptimizeStats reports how much of a grid the line optimizer cleared.
type OptimizeStats struct {
	Total     int
	Optimized int
}

// Percent returns the optimized share in percent, 0 for an empty grid.
func (s OptimizeStats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Optimized) / float64(s.Total) * 100
}

// Optimize returns a copy of g where every interior pixel that continues a
// uniform horizontal or vertical run is replaced with air. A pixel continues
// a run when both its left and right neighbors, or both its top and bottom
// neighbors, hold its own value. Border pixels are never changed.
//
// Neighbors are always read from g, so the result does not depend on scan
// order.
func Optimize(g *Grid, air int) (*Grid, OptimizeStats) {
	out := g.Clone()
	stats := OptimizeStats{Total: g.Len()}

	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			v := g.At(x, y)
			horizontal := g.At(x-1, y) == v && g.At(x+1, y) == v
			vertical := g.At(x, y-1) == v && g.At(x, y+1) == v
			if horizontal || vertical {
				out.Set(x, y, air)
				stats.Optimized++
			}
		}
	}

	return out, stats
}
