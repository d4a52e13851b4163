package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the export tables. The artifact is written once
// per invocation, so every table is dropped and recreated.
var schemaStatements = []string{
	`DROP TABLE IF EXISTS outcome_stats`,
	`DROP TABLE IF EXISTS summary`,
	`DROP TABLE IF EXISTS derived`,
	`DROP TABLE IF EXISTS records`,
	`DROP TABLE IF EXISTS runs`,
	`CREATE TABLE runs (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL UNIQUE,
		rows   INTEGER NOT NULL
	)`,
	`CREATE TABLE records (
		run_id      INTEGER NOT NULL REFERENCES runs(id),
		month       INTEGER NOT NULL,
		total_alive INTEGER NOT NULL,
		males       INTEGER NOT NULL,
		females     INTEGER NOT NULL,
		births      INTEGER NOT NULL,
		deaths      INTEGER NOT NULL
	)`,
	`CREATE TABLE derived (
		run_id      INTEGER NOT NULL REFERENCES runs(id),
		month       INTEGER NOT NULL,
		growth_rate REAL,
		net_change  INTEGER NOT NULL
	)`,
	`CREATE TABLE summary (
		sim_number       INTEGER PRIMARY KEY,
		final_alive      INTEGER NOT NULL,
		months_simulated INTEGER NOT NULL,
		extinction_month INTEGER NOT NULL,
		cohort           TEXT NOT NULL CHECK (cohort IN ('extinct', 'surviving'))
	)`,
	`CREATE TABLE outcome_stats (
		n           INTEGER NOT NULL,
		mean_alive  REAL NOT NULL,
		std_alive   REAL NOT NULL,
		min_alive   INTEGER NOT NULL,
		max_alive   INTEGER NOT NULL,
		ci_low      REAL NOT NULL,
		ci_high     REAL NOT NULL,
		extinctions INTEGER NOT NULL,
		extinct_pct REAL NOT NULL
	)`,
}

// InitSchema creates the export schema on db.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
