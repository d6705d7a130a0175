package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteCompletionRepo implements CompletionRepo using a SQLite database.
// Completions and skips share the completion_entries table, told apart by kind.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

// NewSQLiteCompletionRepo creates a new SQLiteCompletionRepo.
func NewSQLiteCompletionRepo(conn db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: conn}
}

func (r *SQLiteCompletionRepo) SetCompleted(ctx context.Context, activityID string, day calendar.Date) error {
	return r.setEntry(ctx, activityID, day, domain.KindCompleted)
}

func (r *SQLiteCompletionRepo) ClearCompleted(ctx context.Context, activityID string, day calendar.Date) error {
	return r.clearEntry(ctx, activityID, day, domain.KindCompleted)
}

func (r *SQLiteCompletionRepo) SetSkipped(ctx context.Context, activityID string, day calendar.Date) error {
	return r.setEntry(ctx, activityID, day, domain.KindSkipped)
}

func (r *SQLiteCompletionRepo) ClearSkipped(ctx context.Context, activityID string, day calendar.Date) error {
	return r.clearEntry(ctx, activityID, day, domain.KindSkipped)
}

func (r *SQLiteCompletionRepo) setEntry(ctx context.Context, activityID string, day calendar.Date, kind domain.CompletionKind) error {
	query := `INSERT OR IGNORE INTO completion_entries (activity_id, day, kind, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, activityID, day.String(), string(kind), nowUTC()); err != nil {
		return fmt.Errorf("recording %s entry: %w", kind, err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) clearEntry(ctx context.Context, activityID string, day calendar.Date, kind domain.CompletionKind) error {
	query := `DELETE FROM completion_entries WHERE activity_id = ? AND day = ? AND kind = ?`
	if _, err := r.db.ExecContext(ctx, query, activityID, day.String(), string(kind)); err != nil {
		return fmt.Errorf("clearing %s entry: %w", kind, err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) SetNote(ctx context.Context, activityID string, day calendar.Date, note string) error {
	query := `INSERT INTO activity_notes (activity_id, day, note, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(activity_id, day) DO UPDATE SET note = excluded.note, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, activityID, day.String(), note, nowUTC()); err != nil {
		return fmt.Errorf("upserting note: %w", err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) ClearNote(ctx context.Context, activityID string, day calendar.Date) error {
	query := `DELETE FROM activity_notes WHERE activity_id = ? AND day = ?`
	if _, err := r.db.ExecContext(ctx, query, activityID, day.String()); err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return nil
}

// Load reads every entry and note of an activity into a fresh
// CompletionState. An activity without records yields an empty state.
func (r *SQLiteCompletionRepo) Load(ctx context.Context, activityID string) (*domain.CompletionState, error) {
	completions := make(map[calendar.Date]bool)
	skips := make(map[calendar.Date]bool)
	notes := make(map[calendar.Date]string)

	rows, err := r.db.QueryContext(ctx,
		`SELECT day, kind FROM completion_entries WHERE activity_id = ? ORDER BY day`, activityID)
	if err != nil {
		return nil, fmt.Errorf("loading completion entries: %w", err)
	}
	for rows.Next() {
		var dayStr, kind string
		if err := rows.Scan(&dayStr, &kind); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning completion entry: %w", err)
		}
		day, err := parseDay("day", dayStr)
		if err != nil {
			rows.Close()
			return nil, err
		}
		switch domain.CompletionKind(kind) {
		case domain.KindCompleted:
			completions[day] = true
		case domain.KindSkipped:
			skips[day] = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating completion entries: %w", err)
	}
	rows.Close()

	noteRows, err := r.db.QueryContext(ctx,
		`SELECT day, note FROM activity_notes WHERE activity_id = ?`, activityID)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	defer noteRows.Close()
	for noteRows.Next() {
		var dayStr, note string
		if err := noteRows.Scan(&dayStr, &note); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		day, err := parseDay("day", dayStr)
		if err != nil {
			return nil, err
		}
		notes[day] = note
	}
	if err := noteRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return domain.CompletionStateFrom(completions, skips, notes), nil
}
