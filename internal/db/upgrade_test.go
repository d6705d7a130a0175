package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_ActivitiesWithoutEndDate simulates a database
// created before activities stored their end date. Existing rows must survive
// and get an end date derived from their schedule.
func TestMigrate_UpgradePath_ActivitiesWithoutEndDate(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacyStatements := []string{
		`CREATE TABLE activities (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			category           TEXT NOT NULL DEFAULT '',
			priority           TEXT NOT NULL DEFAULT 'medium',
			start_date         TEXT NOT NULL,
			weekday_mask       INTEGER NOT NULL,
			target_occurrences INTEGER NOT NULL DEFAULT 0,
			status             TEXT NOT NULL DEFAULT 'active',
			archived_at        TEXT,
			created_at         TEXT NOT NULL,
			updated_at         TEXT NOT NULL
		)`,
		// Weekdays, ten occurrences from Monday 2024-01-01.
		`INSERT INTO activities (id, name, start_date, weekday_mask, target_occurrences, created_at, updated_at)
			VALUES ('weekdays', 'Run', '2024-01-01', 31, 10, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
		// Empty pattern with a positive target no longer validates.
		`INSERT INTO activities (id, name, start_date, weekday_mask, target_occurrences, created_at, updated_at)
			VALUES ('broken', 'Nothing', '2024-02-01', 0, 5, '2024-01-01T00:00:00Z', '2024-01-01T00:00:00Z')`,
	}
	for _, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var name, end, description string
	err = db.QueryRow(`SELECT name, end_date, description FROM activities WHERE id = 'weekdays'`).Scan(&name, &end, &description)
	require.NoError(t, err)
	assert.Equal(t, "Run", name)
	assert.Equal(t, "2024-01-12", end)
	assert.Empty(t, description)

	err = db.QueryRow(`SELECT end_date FROM activities WHERE id = 'broken'`).Scan(&end)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", end, "invalid schedules fall back to the start date")

	// Re-running leaves the backfilled values alone.
	require.NoError(t, Migrate(db))
	err = db.QueryRow(`SELECT end_date FROM activities WHERE id = 'weekdays'`).Scan(&end)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-12", end)
}
