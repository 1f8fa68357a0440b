package geo

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// Earth's mean radius in kilometers (IUGG).
const earthRadiusKm = 6371.0

const kmPerMile = 1.609344

// DistanceKm returns the great-circle distance between two points in
// kilometers, using the haversine formula on a sphere of Earth's mean
// radius. The result is non-negative, symmetric, and zero only for
// identical coordinates. Inputs are assumed validated by the caller.
func DistanceKm(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// Clamp guards against rounding pushing h a hair above 1 for
	// near-antipodal points, which would make Sqrt(1-h) NaN.
	if h > 1 {
		h = 1
	}

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// KmToMiles converts a kilometer distance for display.
func KmToMiles(km float64) float64 { return km / kmPerMile }
