package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGoalRepo(db)
	ctx := context.Background()

	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	goal := testutil.NewTestGoal("Learn Spanish",
		testutil.WithEndDate(end),
		testutil.WithAllocation(45),
		testutil.WithPreferredTime(domain.TimeEvening),
		testutil.WithSteps(20, 25, 30),
	)
	goal.IdentityStatement = "I am someone who practises every day."
	goal.HabitTips = []string{"Stack after dinner", "Keep the book on the table"}
	goal.Steps[1].CueStackingIdea = "After coffee"
	require.NoError(t, repo.Create(ctx, goal))

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Description, got.Description)
	assert.Equal(t, domain.TimeEvening, got.PreferredTime)
	assert.Equal(t, end, got.EndDate)
	require.NotNil(t, got.DailyTimeAllocation)
	assert.Equal(t, 45, *got.DailyTimeAllocation)
	assert.Equal(t, goal.IdentityStatement, got.IdentityStatement)
	assert.Equal(t, goal.HabitTips, got.HabitTips)
	assert.Equal(t, goal.Steps, got.Steps, "steps round-trip in order")
	assert.Equal(t, goal.CreatedAt, got.CreatedAt)
}

func TestGoalRepo_NilAllocationMeansUnlimited(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGoalRepo(db)
	ctx := context.Background()

	goal := testutil.NewTestGoal("Walk")
	require.NoError(t, repo.Create(ctx, goal))

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DailyTimeAllocation)
	assert.Nil(t, got.HabitTips)
}

func TestGoalRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGoalRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalRepo_ListKeepsCreationOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGoalRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		g := testutil.NewTestGoal(name, testutil.WithSteps(10*(i+1)))
		g.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, g))
	}

	goals, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "first", goals[0].Description)
	assert.Equal(t, "third", goals[2].Description)
	require.Len(t, goals[2].Steps, 1)
	assert.Equal(t, 30, goals[2].Steps[0].DurationMin)
}

func TestGoalRepo_UpdateReplacesSteps(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGoalRepo(db)
	ctx := context.Background()

	goal := testutil.NewTestGoal("Guitar", testutil.WithSteps(15, 15, 15))
	require.NoError(t, repo.Create(ctx, goal))

	require.NoError(t, goal.CompleteStep(0, time.Now().UTC()))
	goal.Steps = goal.Steps[:2]
	goal.Progress = goal.ComputeProgress()
	goal.TimesPerWeek = 2
	require.NoError(t, repo.Update(ctx, goal))

	got, err := repo.GetByID(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, got.Steps, 2)
	assert.True(t, got.Steps[0].Completed)
	assert.False(t, got.Steps[1].Completed)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 2, got.TimesPerWeek)
}

func TestGoalRepo_UpdateMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGoalRepo(db)

	err := repo.Update(context.Background(), testutil.NewTestGoal("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalRepo_DeleteCascadesToStepsAndTasks(t *testing.T) {
	db := testutil.NewTestDB(t)
	goals := NewSQLiteGoalRepo(db)
	tasks := NewSQLiteTaskRepo(db)
	ctx := context.Background()

	goal := testutil.NewTestGoal("Cook")
	require.NoError(t, goals.Create(ctx, goal))
	day := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask(day, "chop", "05:00", "05:30", testutil.WithGoalStep(goal.ID, 0))
	require.NoError(t, tasks.Upsert(ctx, task))

	require.NoError(t, goals.Delete(ctx, goal.ID))

	_, err := tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, goals.Delete(ctx, goal.ID), ErrNotFound)
}
