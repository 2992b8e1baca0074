package geo

import "math"

const (
	// EarthRadiusM is the mean earth radius used by every distance in the engine.
	EarthRadiusM = 6371000.0
)

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance returns the great-circle distance in meters between two points.
// It is a lower bound of any road distance between them, so A* may use it as its heuristic.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	dLat := degreeToRadians(latTwo - latOne)
	dLon := degreeToRadians(longTwo - longOne)
	latOne = degreeToRadians(latOne)
	latTwo = degreeToRadians(latTwo)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(latOne)*math.Cos(latTwo)*sinLon*sinLon

	return 2 * EarthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
