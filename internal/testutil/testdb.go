package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// NewTestDB opens a migrated in-memory cadence database. The migrations seed
// the default tracker profile, so analytics policy reads work immediately.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW returns the unit of work services use to group activity and
// completion writes.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// ProfileOption adjusts the tracker profile written by SeedProfile.
type ProfileOption func(*domain.TrackerProfile)

func WithTolerance(k int) ProfileOption {
	return func(p *domain.TrackerProfile) {
		p.OnTrackTolerance = k
	}
}

// WithSkipPolicy sets whether skips bridge streaks and whether they are
// exempt from the miss and percent penalties.
func WithSkipPolicy(preservesStreak, exemptsPenalty bool) ProfileOption {
	return func(p *domain.TrackerProfile) {
		p.SkipPreservesStreak = preservesStreak
		p.SkipExemptsPenalty = exemptsPenalty
	}
}

func WithStrictWindow() ProfileOption {
	return func(p *domain.TrackerProfile) {
		p.StrictCompletionWindow = true
	}
}

// SeedProfile overwrites the default tracker profile with the defaults plus
// opts and returns what was written.
func SeedProfile(t *testing.T, database *sql.DB, opts ...ProfileOption) *domain.TrackerProfile {
	t.Helper()
	p := domain.DefaultTrackerProfile()
	for _, opt := range opts {
		opt(p)
	}
	_, err := database.Exec(`UPDATE tracker_profile
		SET on_track_tolerance = ?, skip_preserves_streak = ?, skip_exempts_penalty = ?, strict_completion_window = ?
		WHERE id = ?`,
		p.OnTrackTolerance, flag(p.SkipPreservesStreak), flag(p.SkipExemptsPenalty), flag(p.StrictCompletionWindow), p.ID)
	if err != nil {
		t.Fatalf("seeding tracker profile: %v", err)
	}
	return p
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
