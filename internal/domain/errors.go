package domain

import "fmt"

// ErrorKind classifies optimization failures for clients.
// The wire values are part of the HTTP contract and must not change.
type ErrorKind string

const (
	// A coordinate is missing, NaN, or outside valid lat/lon range.
	ErrInvalidWaypoint ErrorKind = "InvalidWaypoint"
	// Two waypoints share an identifier.
	ErrDuplicateID ErrorKind = "DuplicateId"
	// Zero waypoints were supplied in the original request.
	ErrEmptyRequest ErrorKind = "EmptyRequest"
	// The waypoint count exceeds the configured ceiling.
	ErrTooManyWaypoints ErrorKind = "TooManyWaypoints"
	// The request missed its hard deadline before the heuristic could run.
	ErrTimeout ErrorKind = "Timeout"
)

// RouteError is the only error type crossing the optimizer boundary.
// It carries a client-facing kind plus a human-readable message; callers
// unwrap it with errors.As to map kinds onto response codes.
type RouteError struct {
	Kind ErrorKind
	Msg  string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func NewRouteError(kind ErrorKind, format string, args ...any) *RouteError {
	return &RouteError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
