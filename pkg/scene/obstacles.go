package scene

import "github.com/Faultbox/skyroute/pkg/math"

// ObstacleSet is a set of unique 3D obstacle positions. Iteration follows
// insertion order so seeded runs serialize identically.
type ObstacleSet struct {
	index  map[math.Point3]int
	points []math.Point3
}

// NewObstacleSet creates an empty set.
func NewObstacleSet() *ObstacleSet {
	return &ObstacleSet{index: make(map[math.Point3]int)}
}

// Add inserts p and reports whether it was new.
func (s *ObstacleSet) Add(p math.Point3) bool {
	if _, ok := s.index[p]; ok {
		return false
	}
	s.index[p] = len(s.points)
	s.points = append(s.points, p)
	return true
}

// Contains reports whether p is in the set.
func (s *ObstacleSet) Contains(p math.Point3) bool {
	_, ok := s.index[p]
	return ok
}

// Len returns the number of obstacles.
func (s *ObstacleSet) Len() int {
	return len(s.points)
}

// Points returns a copy of the obstacles in insertion order.
func (s *ObstacleSet) Points() []math.Point3 {
	out := make([]math.Point3, len(s.points))
	copy(out, s.points)
	return out
}

// RemoveFunc deletes every obstacle for which drop returns true and returns
// how many were removed.
func (s *ObstacleSet) RemoveFunc(drop func(math.Point3) bool) int {
	kept := s.points[:0]
	removed := 0
	for _, p := range s.points {
		if drop(p) {
			delete(s.index, p)
			removed++
			continue
		}
		s.index[p] = len(kept)
		kept = append(kept, p)
	}
	clear(s.points[len(kept):])
	s.points = kept
	return removed
}
