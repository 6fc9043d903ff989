package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS uploads (
		id          TEXT PRIMARY KEY,
		filename    TEXT NOT NULL UNIQUE,
		columns     TEXT NOT NULL,
		row_count   INTEGER NOT NULL DEFAULT 0,
		records     TEXT NOT NULL,
		uploaded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_uploads_uploaded ON uploads(uploaded_at)`,

	`CREATE TABLE IF NOT EXISTS stations (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS sensor_readings (
		id          TEXT PRIMARY KEY,
		station_id  TEXT NOT NULL REFERENCES stations(id) ON DELETE CASCADE,
		recorded_at TEXT NOT NULL,
		parameter   TEXT NOT NULL,
		value       REAL NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_readings_station ON sensor_readings(station_id)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_recorded ON sensor_readings(recorded_at)`,

	// Lake name shown next to the station in listings
	`ALTER TABLE stations ADD COLUMN lake TEXT NOT NULL DEFAULT ''`,
}
