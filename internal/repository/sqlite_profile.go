package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteTrackerProfileRepo implements TrackerProfileRepo using a SQLite database.
type SQLiteTrackerProfileRepo struct {
	db db.DBTX
}

// NewSQLiteTrackerProfileRepo creates a new SQLiteTrackerProfileRepo.
func NewSQLiteTrackerProfileRepo(conn db.DBTX) *SQLiteTrackerProfileRepo {
	return &SQLiteTrackerProfileRepo{db: conn}
}

func (r *SQLiteTrackerProfileRepo) Get(ctx context.Context) (*domain.TrackerProfile, error) {
	query := `SELECT id, on_track_tolerance, skip_preserves_streak, skip_exempts_penalty, strict_completion_window
		FROM tracker_profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.TrackerProfile
	var preserve, exempt, strict int
	err := row.Scan(&p.ID, &p.OnTrackTolerance, &preserve, &exempt, &strict)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tracker profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning tracker profile: %w", err)
	}
	p.SkipPreservesStreak = intToBool(preserve)
	p.SkipExemptsPenalty = intToBool(exempt)
	p.StrictCompletionWindow = intToBool(strict)
	return &p, nil
}

func (r *SQLiteTrackerProfileRepo) Upsert(ctx context.Context, p *domain.TrackerProfile) error {
	query := `INSERT OR REPLACE INTO tracker_profile (id, on_track_tolerance, skip_preserves_streak,
		skip_exempts_penalty, strict_completion_window)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.OnTrackTolerance,
		boolToInt(p.SkipPreservesStreak),
		boolToInt(p.SkipExemptsPenalty),
		boolToInt(p.StrictCompletionWindow),
	)
	if err != nil {
		return fmt.Errorf("upserting tracker profile: %w", err)
	}
	return nil
}
