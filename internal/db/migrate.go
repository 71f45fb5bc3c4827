package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillScenarioDataset(db); err != nil {
		return fmt.Errorf("backfilling scenario dataset: %w", err)
	}
	return nil
}

// migrateBackfillScenarioDataset stamps scenarios saved before the dataset
// column existed with the dataset that was active at the time, recorded in
// settings under "dataset".
func migrateBackfillScenarioDataset(db *sql.DB) error {
	ctx := context.Background()

	var active string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = 'dataset'`).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading active dataset: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`UPDATE scenarios SET dataset = ? WHERE dataset = ''`, active); err != nil {
		return fmt.Errorf("updating scenarios: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS settings (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS group_state (
		dataset    TEXT NOT NULL,
		group_id   TEXT NOT NULL,
		expanded   INTEGER NOT NULL CHECK(expanded IN (0, 1)),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (dataset, group_id)
	)`,
	`CREATE TABLE IF NOT EXISTS phase_state (
		dataset    TEXT NOT NULL,
		phase_id   TEXT NOT NULL,
		enabled    INTEGER NOT NULL CHECK(enabled IN (0, 1)),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (dataset, phase_id)
	)`,
	`CREATE TABLE IF NOT EXISTS scenarios (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		hourly_rate REAL NOT NULL DEFAULT 0 CHECK(hourly_rate >= 0),
		created_at  TEXT NOT NULL
	)`,
	`ALTER TABLE scenarios ADD COLUMN dataset TEXT NOT NULL DEFAULT ''`,
	`CREATE TABLE IF NOT EXISTS scenario_nodes (
		scenario_id TEXT NOT NULL REFERENCES scenarios(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		node_id     INTEGER NOT NULL,
		PRIMARY KEY (scenario_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scenario_nodes_scenario ON scenario_nodes(scenario_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scenarios_created ON scenarios(created_at)`,
}
