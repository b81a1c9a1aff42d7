package scene

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a scenario's route geometry.
type Stats struct {
	RoutePoints     int
	Segments        int
	Length          float64
	MeanSegment     float64
	StdDevSegment   float64
	MinSegment      float64
	MaxSegment      float64
	MaxAltitude     int
	CollisionPoints int
}

// SegmentLengths returns the 3D length of each consecutive route segment.
func SegmentLengths(r Route) []float64 {
	if len(r) < 2 {
		return nil
	}
	lengths := make([]float64, len(r)-1)
	for i := 1; i < len(r); i++ {
		lengths[i-1] = r[i-1].Distance(r[i])
	}
	return lengths
}

// ComputeStats measures the route and counts collision points.
func ComputeStats(r Route, cloud CollisionCloud) Stats {
	s := Stats{
		RoutePoints:     len(r),
		CollisionPoints: len(cloud),
	}
	for _, p := range r {
		if p.Z > s.MaxAltitude {
			s.MaxAltitude = p.Z
		}
	}

	lengths := SegmentLengths(r)
	s.Segments = len(lengths)
	if s.Segments == 0 {
		return s
	}

	s.Length = floats.Sum(lengths)
	s.MinSegment = floats.Min(lengths)
	s.MaxSegment = floats.Max(lengths)
	if s.Segments > 1 {
		s.MeanSegment, s.StdDevSegment = stat.MeanStdDev(lengths, nil)
	} else {
		s.MeanSegment = lengths[0]
	}
	return s
}
