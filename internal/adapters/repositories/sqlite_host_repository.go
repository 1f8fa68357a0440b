package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
)

// SQLite-backed implementation of the HostRepository port.
type SqliteHostRepository struct{ DB *sql.DB }

func NewSqliteHostRepository(db *sql.DB) *SqliteHostRepository {
	return &SqliteHostRepository{DB: db}
}

// Resolve host IDs to waypoints. IDs with no matching row are omitted.
func (s *SqliteHostRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Waypoint, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite host repository: DB is nil")
	}

	if len(ids) == 0 {
		return []domain.Waypoint{}, nil
	}

	ph := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		ph = append(ph, "?")
		args = append(args, id)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	query := fmt.Sprintf(`
	SELECT
		host_id,
		name,
		lat,
		lon
	FROM hosts
	WHERE host_id IN (%s)
	ORDER BY host_id;
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get hosts by ids: query hosts table: %w", err)
	}
	defer rows.Close()

	return scanWaypoints(rows, len(ids))
}

// Return all hosts stored in the database.
func (s *SqliteHostRepository) ListHosts(ctx context.Context) ([]domain.Waypoint, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite host repository: DB is nil")
	}

	query := `
	SELECT
		host_id,
		name,
		lat,
		lon
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

func scanWaypoints(rows *sql.Rows, sizeHint int) ([]domain.Waypoint, error) {
	hosts := make([]domain.Waypoint, 0, sizeHint)
	for rows.Next() {
		var (
			id       int64
			name     string
			lat, lon float64
		)
		if err := rows.Scan(&id, &name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("scan host row: %w", err)
		}
		hosts = append(hosts, domain.Waypoint{
			ID:     id,
			Name:   name,
			Coords: domain.Coordinates{Lat: lat, Lon: lon},
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("host row iteration: %w", err)
	}

	return hosts, nil
}
