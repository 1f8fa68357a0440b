package dto

type OptimizeRequest struct {
	HostIDs  []int64 `json:"hostIds"`
	DriverID *string `json:"driverId"`
}

// One stop in the optimized visiting order. Lat/lon are included so the
// dashboard can build map deep links straight from this sequence without
// re-sorting or a second lookup.
type OptimizedStop struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	Position           int     `json:"position"`
	Lat                float64 `json:"lat"`
	Lon                float64 `json:"lon"`
	CumulativeDistance float64 `json:"cumulativeDistance"`
}

type OptimizeResponse struct {
	OptimizedOrder []OptimizedStop `json:"optimizedOrder"`
	TotalDistance  float64         `json:"totalDistance"`
	Unit           string          `json:"unit"`
	Algorithm      string          `json:"algorithm"`
	// Encoded polyline of the tour for map rendering.
	Geometry string  `json:"geometry,omitempty"`
	DriverID *string `json:"driverId,omitempty"`
	Cached   bool    `json:"cached,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
