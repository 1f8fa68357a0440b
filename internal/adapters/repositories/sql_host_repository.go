package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// SQLHostRepository is a Postgres-backed implementation of the
// HostRepository port.
type SQLHostRepository struct{ DB *sql.DB }

func NewSQLHostRepository(db *sql.DB) *SQLHostRepository {
	return &SQLHostRepository{DB: db}
}

// Resolve host IDs to waypoints. IDs with no matching row are omitted.
func (s *SQLHostRepository) GetByIDs(ctx context.Context, ids []int64) (_ []domain.Waypoint, err error) {
	defer obs.Time(ctx, "hosts.repo.GetByIDs")(&err)

	if s.DB == nil {
		return nil, errors.New("host repository: db is nil")
	}

	if len(ids) == 0 {
		return []domain.Waypoint{}, nil
	}

	query := `
	SELECT host_id, name, lat, lon
	FROM hosts
	WHERE host_id = ANY($1::bigint[])
	ORDER BY host_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get hosts by ids: query hosts table: %w", err)
	}
	defer rows.Close()

	return scanWaypoints(rows, len(ids))
}

// Return all hosts stored in the database.
func (s *SQLHostRepository) ListHosts(ctx context.Context) (_ []domain.Waypoint, err error) {
	defer obs.Time(ctx, "hosts.repo.ListHosts")(&err)

	if s.DB == nil {
		return nil, errors.New("host repository: db is nil")
	}

	query := `
	SELECT host_id, name, lat, lon
	FROM hosts
	ORDER BY host_id;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list hosts: query hosts table: %w", err)
	}
	defer rows.Close()

	return scanWaypoints(rows, 64)
}
