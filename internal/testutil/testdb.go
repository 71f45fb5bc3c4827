package testutil

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/db"
)

// NewTestDB opens a migrated in-memory store, closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return NewTestDBAt(t, db.MemoryPath)
}

// NewTestDBAt opens the store at path, typically under t.TempDir(). Opening
// the same path twice within a test simulates a restart.
func NewTestDBAt(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// NewTestUoW wraps database in a UnitOfWork.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
