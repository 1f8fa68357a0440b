package domain

// Represents a single geographic stop (host location) to be visited.
// A Waypoint has a caller-supplied unique identifier and fixed coordinates.
// It is read-only for the duration of one optimization request.
type Waypoint struct {
	ID     int64
	Name   string
	Coords Coordinates
}
