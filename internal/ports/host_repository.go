package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for resolving host locations from a data source.
type HostRepository interface {
	// Resolve host IDs to waypoints. Unknown IDs are omitted from the
	// result, not reported as errors; callers decide how to react.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Waypoint, error)
	// Retrieve all hosts available for route planning.
	ListHosts(ctx context.Context) ([]domain.Waypoint, error)
}
