package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"settings", "group_state", "phase_state", "scenarios", "scenario_nodes"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_scenario_nodes_scenario", "idx_scenarios_created"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestOpenDB_MemoryJournalMode(t *testing.T) {
	// In-memory SQLite ignores the WAL request.
	db := openTestDB(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "memory", mode)
}

func TestOpenDB_FileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "docketflow.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}

func TestOpenDB_MemorySharesOneDatabase(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES ('k', 'v', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	// A second query must see the row rather than a fresh empty database.
	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM settings WHERE key = 'k'`).Scan(&v))
	assert.Equal(t, "v", v)
}

func TestMigrate_ScenarioNodesCascade(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO scenarios (id, name, hourly_rate, created_at) VALUES ('s1', 'base', 300, '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO scenario_nodes (scenario_id, position, node_id) VALUES ('s1', 0, 4), ('s1', 1, 7)`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM scenarios WHERE id = 's1'`)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM scenario_nodes`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestMigrate_Constraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO scenarios (id, name, hourly_rate, created_at) VALUES ('s1', 'neg', -1, '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "negative hourly rate is rejected")

	_, err = db.Exec(`INSERT INTO group_state (dataset, group_id, expanded, updated_at) VALUES ('d', 'g', 2, '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "expanded must be 0 or 1")

	_, err = db.Exec(`INSERT INTO scenario_nodes (scenario_id, position, node_id) VALUES ('missing', 0, 1)`)
	assert.Error(t, err, "scenario_nodes requires an existing scenario")
}
