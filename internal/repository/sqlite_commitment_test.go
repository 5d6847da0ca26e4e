package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitmentRepo_CRUD(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCommitmentRepo(db)
	ctx := context.Background()

	c := testutil.NewTestCommitment("Standup", domain.Monday, "09:00", "09:15")
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Monday, got.Weekday)
	assert.Equal(t, "09:15", got.EndTime)

	c.EndTime = "09:30"
	c.Weekday = domain.Tuesday
	require.NoError(t, repo.Update(ctx, c))
	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:30", got.EndTime)
	assert.Equal(t, domain.Tuesday, got.Weekday)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}

func TestCommitmentRepo_ListByWeekdayOrdersByStart(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCommitmentRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestCommitment("Lab", domain.Wednesday, "14:00", "16:00")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCommitment("Lecture", domain.Wednesday, "09:00", "11:00")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCommitment("Gym", domain.Thursday, "07:00", "08:00")))

	wed, err := repo.ListByWeekday(ctx, domain.Wednesday)
	require.NoError(t, err)
	require.Len(t, wed, 2)
	assert.Equal(t, "Lecture", wed[0].Name)
	assert.Equal(t, "Lab", wed[1].Name)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Gym", all[2].Name)

	grouped := domain.GroupCommitments(all)
	assert.Len(t, grouped[domain.Wednesday], 2)
	assert.Len(t, grouped[domain.Thursday], 1)
	assert.Empty(t, grouped[domain.Sunday])
}

func TestCommitmentRepo_RejectsInvalidWeekday(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCommitmentRepo(db)

	c := testutil.NewTestCommitment("Broken", domain.Weekday(9), "09:00", "10:00")
	assert.Error(t, repo.Create(context.Background(), c))
}
