package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
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
	if err := migrateBackfillEndDates(db); err != nil {
		return fmt.Errorf("backfilling activity end dates: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		category           TEXT NOT NULL DEFAULT '',
		priority           TEXT NOT NULL DEFAULT 'medium'
		                   CHECK(priority IN ('low','medium','high')),
		start_date         TEXT NOT NULL,
		weekday_mask       INTEGER NOT NULL
		                   CHECK(weekday_mask BETWEEN 0 AND 127),
		target_occurrences INTEGER NOT NULL DEFAULT 0
		                   CHECK(target_occurrences >= 0),
		status             TEXT NOT NULL DEFAULT 'active'
		                   CHECK(status IN ('active','archived')),
		archived_at        TEXT,
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status)`,

	`CREATE TABLE IF NOT EXISTS completion_entries (
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		kind        TEXT NOT NULL CHECK(kind IN ('completed','skipped')),
		created_at  TEXT NOT NULL,
		PRIMARY KEY (activity_id, day, kind)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_completion_entries_day ON completion_entries(day)`,

	`CREATE TABLE IF NOT EXISTS activity_notes (
		activity_id TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		day         TEXT NOT NULL,
		note        TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (activity_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS activity_covers (
		activity_id TEXT PRIMARY KEY REFERENCES activities(id) ON DELETE CASCADE,
		cover       TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tracker_profile (
		id                       TEXT PRIMARY KEY DEFAULT 'default',
		on_track_tolerance       INTEGER NOT NULL DEFAULT 2
		                         CHECK(on_track_tolerance >= 0),
		skip_preserves_streak    INTEGER NOT NULL DEFAULT 1,
		skip_exempts_penalty     INTEGER NOT NULL DEFAULT 1,
		strict_completion_window INTEGER NOT NULL DEFAULT 0
	)`,

	// Seed default tracker profile
	`INSERT OR IGNORE INTO tracker_profile (id) VALUES ('default')`,

	// Add description to activities
	`ALTER TABLE activities ADD COLUMN description TEXT NOT NULL DEFAULT ''`,

	// Persist the derived end date; rows from before this column are backfilled
	`ALTER TABLE activities ADD COLUMN end_date TEXT NOT NULL DEFAULT ''`,
}

// migrateBackfillEndDates derives end_date for activities stored before the
// column existed (end_date = ''). Rows whose schedule no longer validates
// fall back to their start date so they stay readable.
// Idempotent: a second run finds nothing to update.
func migrateBackfillEndDates(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx,
		`SELECT id, start_date, weekday_mask, target_occurrences FROM activities WHERE end_date = ''`)
	if err != nil {
		return fmt.Errorf("listing activities without end date: %w", err)
	}
	type pending struct {
		id  string
		end string
	}
	var updates []pending
	for rows.Next() {
		var id, start string
		var mask, target int
		if err := rows.Scan(&id, &start, &mask, &target); err != nil {
			rows.Close()
			return fmt.Errorf("scanning activity: %w", err)
		}
		startDate, err := calendar.Parse(start)
		if err != nil {
			rows.Close()
			return fmt.Errorf("activity %s: %w", id, err)
		}
		end, err := schedule.ComputeEndDate(startDate, domain.PatternFromMask(mask), target)
		if err != nil {
			end = startDate
		}
		updates = append(updates, pending{id: id, end: end.String()})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, u := range updates {
		if _, err := db.ExecContext(ctx,
			`UPDATE activities SET end_date = ? WHERE id = ? AND end_date = ''`, u.end, u.id); err != nil {
			return fmt.Errorf("updating end date for %s: %w", u.id, err)
		}
	}
	return nil
}
