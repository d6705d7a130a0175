package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteActivityRepo implements ActivityRepo using a SQLite database.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(conn db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: conn}
}

const activityColumns = `id, name, category, priority, description, start_date, weekday_mask,
	target_occurrences, end_date, status, archived_at, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (` + activityColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Name,
		a.Category,
		string(a.Priority),
		a.Description,
		a.Schedule.StartDate.String(),
		a.Schedule.Pattern.Mask(),
		a.Schedule.TargetOccurrences,
		a.Schedule.EndDate.String(),
		string(a.Status),
		nullableTimeToString(a.ArchivedAt, time.RFC3339),
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return a, err
}

// ResolveID expands a full ID or a unique ID prefix to the full ID.
func (r *SQLiteActivityRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("activity id: %w", ErrNotFound)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM activities WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		prefix, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("resolving activity id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning activity id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating activity ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("activity %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("activity %s: %w", prefix, ErrAmbiguousID)
	}
}

func (r *SQLiteActivityRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities`
	if !includeArchived {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY created_at, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return activities, nil
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET name = ?, category = ?, priority = ?, description = ?,
		start_date = ?, weekday_mask = ?, target_occurrences = ?, end_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Name,
		a.Category,
		string(a.Priority),
		a.Description,
		a.Schedule.StartDate.String(),
		a.Schedule.Pattern.Mask(),
		a.Schedule.TargetOccurrences,
		a.Schedule.EndDate.String(),
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return requireAffected(res, "updating activity")
}

func (r *SQLiteActivityRepo) Archive(ctx context.Context, id string) error {
	now := nowUTC()
	query := `UPDATE activities SET status = 'archived', archived_at = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, now, now, id)
	if err != nil {
		return fmt.Errorf("archiving activity: %w", err)
	}
	return requireAffected(res, "archiving activity")
}

func (r *SQLiteActivityRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return requireAffected(res, "deleting activity")
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var priority, status, startStr, endStr, createdAtStr, updatedAtStr string
	var mask int
	var archivedAtStr sql.NullString

	err := row.Scan(
		&a.ID, &a.Name, &a.Category, &priority, &a.Description,
		&startStr, &mask, &a.Schedule.TargetOccurrences, &endStr,
		&status, &archivedAtStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning activity: %w", err)
	}

	a.Priority = domain.Priority(priority)
	a.Status = domain.ActivityStatus(status)
	a.Schedule.Pattern = domain.PatternFromMask(mask)

	if a.Schedule.StartDate, err = parseDay("start_date", startStr); err != nil {
		return nil, err
	}
	if a.Schedule.EndDate, err = parseDay("end_date", endStr); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	a.ArchivedAt = parseNullableTime(archivedAtStr, time.RFC3339)

	return &a, nil
}
