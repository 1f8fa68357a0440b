package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createHostsQuery := `
	CREATE TABLE IF NOT EXISTS hosts (
		host_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	if _, err := tx.Exec(createHostsQuery); err != nil {
		return fmt.Errorf("init schema: create hosts table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type HostSeed struct {
	HostID int64   `json:"host_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Populate the database with host data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed hosts: read %q: %w", jsonPath, err)
	}

	var data []HostSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed hosts: parse json: %w", err)
	}

	rows := make([]HostSeed, 0, len(data))
	for i, item := range data {
		if item.HostID <= 0 {
			return fmt.Errorf("seed hosts: invalid host_id at index %d: %d", i+1, item.HostID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed hosts: item at index %d: name cannot be empty", i+1)
		}

		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return fmt.Errorf("seed hosts: host_id=%d has out-of-range coordinates (%v, %v)",
				item.HostID, item.Lat, item.Lon)
		}

		rows = append(rows, HostSeed{HostID: item.HostID, Name: name, Lat: item.Lat, Lon: item.Lon})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed hosts: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO hosts (
		host_id,
		name,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed hosts: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range rows {
		if _, err := stmt.Exec(h.HostID, h.Name, h.Lat, h.Lon); err != nil {
			return fmt.Errorf("seed hosts: insert host_id=%d: %w", h.HostID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed hosts: commit tx: %w", err)
	}

	return nil
}
