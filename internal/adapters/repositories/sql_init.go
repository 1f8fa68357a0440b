package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchemaPostgres(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createHostsQuery := `
	CREATE TABLE IF NOT EXISTS hosts (
		host_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL
	);
	`

	if _, err := db.Exec(createHostsQuery); err != nil {
		return fmt.Errorf("init schema: create hosts table: %w", err)
	}

	return nil
}

// Populate the Postgres database with host rows.
func SeedHostsPostgres(db *sql.DB, hosts []HostSeed) error {
	if db == nil {
		return errors.New("seed hosts: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed hosts: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO hosts (host_id, name, lat, lon)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (host_id) DO UPDATE
	SET name = EXCLUDED.name, lat = EXCLUDED.lat, lon = EXCLUDED.lon;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed hosts: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range hosts {
		if _, err := stmt.Exec(h.HostID, h.Name, h.Lat, h.Lon); err != nil {
			return fmt.Errorf("seed hosts: insert host_id=%d: %w", h.HostID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed hosts: commit tx: %w", err)
	}

	return nil
}
