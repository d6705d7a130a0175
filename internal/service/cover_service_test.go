package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverService_SetGetClear(t *testing.T) {
	r := setupRepos(t)
	svc := NewCoverService(r.activities, r.covers)
	ctx := context.Background()
	a := seedActivity(t, r, testutil.NewTestActivity("Run"))

	cover, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, cover)

	require.NoError(t, svc.Set(ctx, a.ID, " covers/run.png "))
	cover, err = svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "covers/run.png", cover)

	require.NoError(t, svc.Set(ctx, a.ID, ""))
	cover, err = svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, cover)
}

func TestCoverService_UnknownActivity(t *testing.T) {
	r := setupRepos(t)
	svc := NewCoverService(r.activities, r.covers)

	err := svc.Set(context.Background(), "missing", "x.png")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
