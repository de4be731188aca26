package iocache

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/akbargherbal/git-viz-sub001/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrateRunsNoneBackend verifies migrations are rejected without a database.
func TestMigrateRunsNoneBackend(t *testing.T) {
	err := MigrateRuns(schema.NoneBackend, "", -1)
	assert.Error(t, err, "Migrations should fail for none backend")
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

// TestMigrateRunsSQLite exercises the full up/down cycle against a temp database.
func TestMigrateRunsSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "runs_migrate_test.db")

	// Migrate up to the latest version
	err := MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err, "Migrating up should not fail")
	assertRunTablesExist(t, dbPath, true)

	// Migrating up again is a no-op
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err, "Repeated migrate up should be a no-op")

	// Migrating to version 1 explicitly is also a no-op
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err, "Migrating to current version should be a no-op")

	// Roll everything back
	err = MigrateRuns(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err, "Rolling back should not fail")
	assertRunTablesExist(t, dbPath, false)

	// And back up again
	err = MigrateRuns(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err, "Migrating up after rollback should not fail")
	assertRunTablesExist(t, dbPath, true)
}

// TestMigrateRunsSQLiteInMemory verifies the migration machinery against an in-memory database.
func TestMigrateRunsSQLiteInMemory(t *testing.T) {
	err := MigrateRuns(schema.SQLiteBackend, ":memory:", -1)
	assert.NoError(t, err, "Migrating an in-memory database should not fail")
}

// assertRunTablesExist checks whether the run tracking tables are present.
func assertRunTablesExist(t *testing.T, dbPath string, want bool) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err, "Failed to open database for verification")
	defer func() { _ = db.Close() }()

	for _, table := range []string{loadRunsTable, runDocumentsTable} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table).Scan(&name)
		if want {
			assert.NoError(t, err, "Table %s should exist", table)
			assert.Equal(t, table, name)
		} else {
			assert.Equal(t, sql.ErrNoRows, err, "Table %s should not exist", table)
		}
	}
}
