package domain

// Algorithm identifies the heuristic and version that produced a RouteResult.
// Clients key display and caching behavior off this string, so it only
// changes when the optimization semantics change.
const Algorithm = "nearest-neighbor+2opt-v1"

// Distance unit used when presenting results to clients.
// Distances are always kilometers internally.
type Unit string

const (
	UnitMiles      Unit = "miles"
	UnitKilometers Unit = "kilometers"
)

// ParseUnit maps a configured unit name to a Unit, defaulting to miles.
func ParseUnit(s string) Unit {
	if s == string(UnitKilometers) {
		return UnitKilometers
	}
	return UnitMiles
}

// Represents the input to one optimization request.
// Waypoints is the set being ordered; Start, when present, is a fixed
// depot that always occupies position 0 and is excluded from permutation.
// DriverID is opaque and passed through unmodified.
type RouteRequest struct {
	Waypoints []Waypoint
	Start     *Waypoint
	DriverID  string
}

// Represents a single position in an optimized tour.
// CumulativeDistanceKm is the distance traveled from the first stop up to
// and including the leg arriving here; it is non-decreasing along the tour.
type TourStop struct {
	WaypointID           int64
	Position             int
	CumulativeDistanceKm float64
}

// Represents the output of one optimization request.
// The order sequence visits every input waypoint exactly once; positions
// are contiguous from 0. A RouteResult is immutable planning data and is
// never persisted by this service.
type RouteResult struct {
	Order           []TourStop
	TotalDistanceKm float64
	Algorithm       string
}
