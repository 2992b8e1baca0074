package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	cases := []struct {
		name                             string
		latOne, longOne, latTwo, longTwo float64
		expectedDist                     float64
		delta                            float64
	}{
		{
			name:   "same point",
			latOne: 40.3712, longOne: 49.8411,
			latTwo: 40.3712, longTwo: 49.8411,
			expectedDist: 0,
			delta:        1e-9,
		},
		{
			name:   "one degree of latitude",
			latOne: 0, longOne: 0,
			latTwo: 1, longTwo: 0,
			expectedDist: 111194.93,
			delta:        0.1,
		},
		{
			name:   "surakarta",
			latOne: -7.557155997491524, longOne: 110.77170252731288,
			latTwo: -7.550209300671982, longTwo: 110.78942094938256,
			expectedDist: 2100,
			delta:        50,
		},
		{
			name:   "antipodal on equator",
			latOne: 0, longOne: 0,
			latTwo: 0, longTwo: 180,
			expectedDist: 20015086.8,
			delta:        1,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dist := CalculateHaversineDistance(c.latOne, c.longOne, c.latTwo, c.longTwo)
			assert.InDelta(t, c.expectedDist, dist, c.delta)

			reverse := CalculateHaversineDistance(c.latTwo, c.longTwo, c.latOne, c.longOne)
			assert.InDelta(t, dist, reverse, 1e-6)
		})
	}
}

func TestBoundOf(t *testing.T) {
	_, ok := BoundOf(nil, nil)
	assert.False(t, ok)

	b, ok := BoundOf([]float64{40.368, 40.375, 40.370}, []float64{49.847, 49.836, 49.840})
	assert.True(t, ok)
	assert.InDelta(t, 40.368, b.MinLat, 1e-9)
	assert.InDelta(t, 40.375, b.MaxLat, 1e-9)
	assert.InDelta(t, 49.836, b.MinLon, 1e-9)
	assert.InDelta(t, 49.847, b.MaxLon, 1e-9)

	// across the antimeridian
	b, ok = BoundOf([]float64{10, 11, 12}, []float64{179.5, -179.5, 179.9})
	assert.True(t, ok)
	assert.LessOrEqual(t, b.MinLon, b.MaxLon)
	assert.InDelta(t, -179.5, b.MinLon, 1e-9)
	assert.InDelta(t, 179.9, b.MaxLon, 1e-9)
	assert.InDelta(t, 10, b.MinLat, 1e-9)
	assert.InDelta(t, 12, b.MaxLat, 1e-9)
}

func TestSnapSearchWindow(t *testing.T) {
	lat, lon := 40.3712, 49.8411
	radius := 500.0

	w, ok := SnapSearchWindow(lat, lon, radius)
	assert.True(t, ok)
	assert.Less(t, w.MinLat, lat)
	assert.Greater(t, w.MaxLat, lat)

	// points exactly radius away in the four directions must fall inside
	dLat := radius / EarthRadiusM * 180 / 3.141592653589793
	assert.LessOrEqual(t, w.MinLat, lat-dLat+1e-9)
	assert.GreaterOrEqual(t, w.MaxLat, lat+dLat-1e-9)

	east := CalculateHaversineDistance(lat, lon, lat, w.MaxLon)
	assert.GreaterOrEqual(t, east, radius-1e-3)

	_, ok = SnapSearchWindow(89.9999, 0, 50000)
	assert.False(t, ok)

	_, ok = SnapSearchWindow(0, 179.9999, 50000)
	assert.False(t, ok)
}
