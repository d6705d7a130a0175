package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerProfileRepo_Get_DefaultSeededProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackerProfileRepo(db)

	profile, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTrackerProfile(), profile)
}

func TestTrackerProfileRepo_Upsert_UpdatesProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackerProfileRepo(db)
	ctx := context.Background()

	updated := &domain.TrackerProfile{
		ID:                     "default",
		OnTrackTolerance:       0,
		SkipPreservesStreak:    false,
		SkipExemptsPenalty:     true,
		StrictCompletionWindow: true,
	}
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestTrackerProfileRepo_Get_NotFoundWhenDefaultDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTrackerProfileRepo(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `DELETE FROM tracker_profile WHERE id = 'default'`)
	require.NoError(t, err)

	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
