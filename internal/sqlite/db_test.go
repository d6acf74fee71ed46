package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"streak_state",
		"activity_days",
		"check_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsAreRepeatable verifies a second start does not fail
func TestMigrationsAreRepeatable(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestStreakStateSingleRow verifies the state table only accepts id 1
func TestStreakStateSingleRow(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO streak_state (id, current_streak, longest_streak) VALUES (2, 0, 0)`)
	require.Error(t, err)
	require.True(t, isCheckViolation(err))
}
