package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Bound is a lat/lon rectangle in degrees.
type Bound struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundOf returns the smallest lat/lon rectangle containing all points.
// lats and lons must have the same length. ok is false for an empty input.
// MinLon never exceeds MaxLon: points on both sides of the antimeridian get the
// plain longitude range instead of a rectangle that wraps.
func BoundOf(lats, lons []float64) (Bound, bool) {
	if len(lats) == 0 {
		return Bound{}, false
	}

	rect := s2.EmptyRect()
	for i := range lats {
		rect = rect.AddPoint(s2.LatLngFromDegrees(lats[i], lons[i]))
	}

	b := Bound{
		MinLat: rect.Lo().Lat.Degrees(),
		MaxLat: rect.Hi().Lat.Degrees(),
		MinLon: rect.Lo().Lng.Degrees(),
		MaxLon: rect.Hi().Lng.Degrees(),
	}
	if rect.Lng.IsInverted() {
		b.MinLon, b.MaxLon = lons[0], lons[0]
		for _, lon := range lons[1:] {
			b.MinLon = math.Min(b.MinLon, lon)
			b.MaxLon = math.Max(b.MaxLon, lon)
		}
	}
	return b, true
}

const (
	// pad keeps points lying exactly on the window border inside it.
	windowPadDegrees = 1e-9
)

// SnapSearchWindow returns a rectangle that contains every point within radiusM meters
// (great-circle) of (lat, lon). ok is false when that rectangle would cover a pole or wrap
// the antimeridian; callers should scan everything in that case.
func SnapSearchWindow(lat, lon, radiusM float64) (Bound, bool) {
	center := s2.LatLngFromDegrees(lat, lon)
	r := radiusM / EarthRadiusM

	if r >= math.Pi/2 {
		return Bound{}, false
	}

	latLo := center.Lat.Radians() - r
	latHi := center.Lat.Radians() + r
	if latLo <= -math.Pi/2 || latHi >= math.Pi/2 {
		return Bound{}, false
	}

	// widest longitude offset reachable within r from the center latitude
	sinDLon := math.Sin(r) / math.Cos(center.Lat.Radians())
	if sinDLon >= 1 {
		return Bound{}, false
	}
	dLon := math.Asin(sinDLon)

	lngLo := center.Lng.Radians() - dLon
	lngHi := center.Lng.Radians() + dLon
	if lngLo <= -math.Pi || lngHi >= math.Pi {
		return Bound{}, false
	}

	rect := s2.RectFromLatLng(s2.LatLng{Lat: s1.Angle(latLo), Lng: s1.Angle(lngLo)}).
		AddPoint(s2.LatLng{Lat: s1.Angle(latHi), Lng: s1.Angle(lngHi)})

	return Bound{
		MinLat: rect.Lo().Lat.Degrees() - windowPadDegrees,
		MaxLat: rect.Hi().Lat.Degrees() + windowPadDegrees,
		MinLon: rect.Lo().Lng.Degrees() - windowPadDegrees,
		MaxLon: rect.Hi().Lng.Degrees() + windowPadDegrees,
	}, true
}
