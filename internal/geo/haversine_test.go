package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

const distEps = 1e-9

func TestDistanceKmKnownPairs(t *testing.T) {
	// Phoenix -> Tucson is roughly 173 km great-circle.
	phx := domain.Coordinates{Lat: 33.4484, Lon: -112.0740}
	tus := domain.Coordinates{Lat: 32.2226, Lon: -110.9747}

	d := DistanceKm(phx, tus)
	assert.InDelta(t, 173.0, d, 2.0)

	// One degree of latitude on the meridian is ~111.19 km.
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 1, Lon: 0}
	assert.InDelta(t, 111.19, DistanceKm(a, b), 0.05)
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][2]domain.Coordinates{
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}},
		{{Lat: 33.45, Lon: -112.07}, {Lat: 51.51, Lon: -0.13}},
		{{Lat: -89.9, Lon: 170}, {Lat: 89.9, Lon: -170}},
		{{Lat: 12.3456, Lon: 65.4321}, {Lat: -12.3456, Lon: -65.4321}},
	}

	for _, p := range pairs {
		assert.InDelta(t, DistanceKm(p[0], p[1]), DistanceKm(p[1], p[0]), distEps)
	}
}

func TestDistanceKmZeroIdentity(t *testing.T) {
	pts := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 0},
		{Lat: -33.87, Lon: 151.21},
	}

	for _, p := range pts {
		assert.Zero(t, DistanceKm(p, p))
	}
}

func TestDistanceKmNonNegativeAndTriangle(t *testing.T) {
	pts := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: 10, Lon: 20},
		{Lat: -45, Lon: 100},
		{Lat: 60, Lon: -120},
		{Lat: 0.001, Lon: 0.001},
	}

	for _, a := range pts {
		for _, b := range pts {
			require.GreaterOrEqual(t, DistanceKm(a, b), 0.0)
			for _, c := range pts {
				ac := DistanceKm(a, c)
				detour := DistanceKm(a, b) + DistanceKm(b, c)
				assert.LessOrEqual(t, ac, detour+distEps,
					"triangle inequality violated: %v %v %v", a, b, c)
			}
		}
	}
}

func TestDistanceKmAntipodal(t *testing.T) {
	// Antipodal points sit half the circumference apart; the haversine
	// term is at its ceiling here, so this exercises the clamp.
	a := domain.Coordinates{Lat: 0, Lon: 0}
	b := domain.Coordinates{Lat: 0, Lon: 180}

	d := DistanceKm(a, b)
	require.False(t, d != d, "distance must not be NaN")
	assert.InDelta(t, 20015.0, d, 1.0)
}

func TestKmToMiles(t *testing.T) {
	assert.InDelta(t, 1.0, KmToMiles(1.609344), distEps)
	assert.Zero(t, KmToMiles(0))
}
