package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileRepo_Get_DefaultSeededProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)

	profile, err := repo.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "default", profile.ID)
	assert.Equal(t, 0.0, profile.LeisurePoints)
	assert.True(t, profile.AutoScheduleReminders)
	assert.False(t, profile.Initialized)
}

func TestUserProfileRepo_Upsert_UpdatesProfile(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	updated := domain.DefaultProfile()
	updated.LeisurePoints = 12.75
	updated.AutoScheduleReminders = false
	updated.Initialized = true
	require.NoError(t, repo.Upsert(ctx, updated))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12.75, got.LeisurePoints)
	assert.False(t, got.AutoScheduleReminders)
	assert.True(t, got.Initialized)
}

func TestUserProfileRepo_AddPoints(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteUserProfileRepo(db)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := repo.AddPoints(ctx, domain.PointsPerCompletedTask)
		require.NoError(t, err)
	}
	balance, err := repo.AddPoints(ctx, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, balance, 1e-9)

	balance, err = repo.AddPoints(ctx, -1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, balance, 1e-9)

	_, err = repo.AddPoints(ctx, -5)
	assert.Error(t, err, "balance may not go negative")

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got.LeisurePoints, 1e-9)
}
