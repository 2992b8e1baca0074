package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	// DouglasPeuckerToleranceM is the default simplification tolerance for route geometry.
	DouglasPeuckerToleranceM = 7.0
)

// SimplifyLine runs Ramer-Douglas-Peucker over the polyline lats/lons and returns the indices of
// the points to keep, in order. The first and last points are always kept. A point is kept when
// its great-circle distance to the chord of its current span exceeds toleranceM.
func SimplifyLine(lats, lons []float64, toleranceM float64) []int {
	size := len(lats)
	if size <= 2 {
		keep := make([]int, size)
		for i := range keep {
			keep[i] = i
		}
		return keep
	}

	points := make([]s2.Point, size)
	for i := range points {
		points[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(lats[i], lons[i]))
	}

	threshold := s1.Angle(toleranceM / EarthRadiusM)

	kept := make([]bool, size)
	kept[0] = true
	kept[size-1] = true

	stack := [][2]int{{0, size - 1}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		left, right := span[0], span[1]

		var maxDist s1.Angle
		farthest := -1
		for i := left + 1; i < right; i++ {
			dist := s2.DistanceFromSegment(points[i], points[left], points[right])
			if dist > threshold && dist > maxDist {
				maxDist = dist
				farthest = i
			}
		}
		if farthest < 0 {
			continue
		}

		kept[farthest] = true
		stack = append(stack, [2]int{left, farthest}, [2]int{farthest, right})
	}

	keep := make([]int, 0, size)
	for i, ok := range kept {
		if ok {
			keep = append(keep, i)
		}
	}
	return keep
}
