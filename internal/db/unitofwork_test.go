package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeActivityWithHistory creates an activity and marks two days inside
// the same transaction, the way an import writes one record.
func writeActivityWithHistory(ctx context.Context, tx db.DBTX, id string) error {
	a := testutil.NewTestActivity("Run")
	a.ID = id
	if err := repository.NewSQLiteActivityRepo(tx).Create(ctx, a); err != nil {
		return err
	}
	completions := repository.NewSQLiteCompletionRepo(tx)
	if err := completions.SetCompleted(ctx, id, calendar.MustParse("2024-01-01")); err != nil {
		return err
	}
	return completions.SetSkipped(ctx, id, calendar.MustParse("2024-01-02"))
}

func countActivityRows(t *testing.T, database *sql.DB, id string) (activities, entries int) {
	t.Helper()
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM activities WHERE id = ?`, id).Scan(&activities))
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM completion_entries WHERE activity_id = ?`, id).Scan(&entries))
	return activities, entries
}

func TestWithinTx_CommitsActivityAndEntries(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return writeActivityWithHistory(ctx, tx, "committed")
	})
	require.NoError(t, err)

	activities, entries := countActivityRows(t, database, "committed")
	assert.Equal(t, 1, activities)
	assert.Equal(t, 2, entries)

	state, err := repository.NewSQLiteCompletionRepo(database).Load(context.Background(), "committed")
	require.NoError(t, err)
	assert.True(t, state.IsComplete(calendar.MustParse("2024-01-01")))
	assert.True(t, state.IsSkipped(calendar.MustParse("2024-01-02")))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	errLate := errors.New("late failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := writeActivityWithHistory(ctx, tx, "rolled-back"); err != nil {
			return err
		}
		return errLate
	})
	require.ErrorIs(t, err, errLate)

	activities, entries := countActivityRows(t, database, "rolled-back")
	assert.Zero(t, activities, "activity row must not survive rollback")
	assert.Zero(t, entries, "completion entries must not survive rollback")
}

func TestWithinTx_RollbackOnFailedEntryWrite(t *testing.T) {
	database := testutil.NewTestDB(t)
	errDisk := errors.New("disk full")
	// Exec 1 inserts the activity, exec 2 the completion entry.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errDisk}

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return writeActivityWithHistory(ctx, tx, "half-written")
	})
	require.ErrorIs(t, err, errDisk)

	activities, entries := countActivityRows(t, database, "half-written")
	assert.Zero(t, activities)
	assert.Zero(t, entries)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = writeActivityWithHistory(ctx, tx, "panicked")
			panic("boom")
		})
	})

	activities, entries := countActivityRows(t, database, "panicked")
	assert.Zero(t, activities)
	assert.Zero(t, entries)
}
