package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAppliesMigrations(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var version int
	require.NoError(t, db.Get(&version, "SELECT MAX(version) FROM schema_version"))
	require.Equal(t, 1, version)

	for _, table := range []string{"profiles", "lists", "tasks", "tags", "task_tags", "reminders", "activity"} {
		var n int
		require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM "+table), "table %s missing", table)
		require.Zero(t, n)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")

	db, err := Open("sqlite", dsn)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO lists (id, owner_id, title, archived, rank, created_at, updated_at)
		VALUES ('l1', 'alice', 'Inbox', FALSE, 1, '2026-01-01 00:00:00', '2026-01-01 00:00:00')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening an already-migrated store applies nothing and loses nothing.
	db, err = Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM lists"))
	require.Equal(t, 1, n)

	var versions int
	require.NoError(t, db.Get(&versions, "SELECT COUNT(*) FROM schema_version"))
	require.Equal(t, 1, versions)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	require.Error(t, err)
}
