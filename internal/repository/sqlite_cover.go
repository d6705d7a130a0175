package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/db"
)

// SQLiteCoverRepo implements CoverRepo using a SQLite database.
type SQLiteCoverRepo struct {
	db db.DBTX
}

// NewSQLiteCoverRepo creates a new SQLiteCoverRepo.
func NewSQLiteCoverRepo(conn db.DBTX) *SQLiteCoverRepo {
	return &SQLiteCoverRepo{db: conn}
}

// Get returns the stored cover, or ErrNotFound when none is set.
func (r *SQLiteCoverRepo) Get(ctx context.Context, activityID string) (string, error) {
	var cover string
	err := r.db.QueryRowContext(ctx,
		`SELECT cover FROM activity_covers WHERE activity_id = ?`, activityID).Scan(&cover)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("cover for %s: %w", activityID, ErrNotFound)
		}
		return "", fmt.Errorf("scanning cover: %w", err)
	}
	return cover, nil
}

// Set stores the cover. A blank value removes it.
func (r *SQLiteCoverRepo) Set(ctx context.Context, activityID, cover string) error {
	if strings.TrimSpace(cover) == "" {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM activity_covers WHERE activity_id = ?`, activityID); err != nil {
			return fmt.Errorf("removing cover: %w", err)
		}
		return nil
	}
	query := `INSERT INTO activity_covers (activity_id, cover, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(activity_id) DO UPDATE SET cover = excluded.cover, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, activityID, cover, nowUTC()); err != nil {
		return fmt.Errorf("upserting cover: %w", err)
	}
	return nil
}
