package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/importer"
	"github.com/alexanderramin/todoer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importPlanYAML = `
goals:
  - id: spanish
    description: Learn Spanish
    preferred_time: morning
    end_date: 2099-12-31
    steps:
      - text: Duolingo lesson
        duration_min: 15
  - description: Run a 10k
    end_date: 2099-09-01
    times_per_week: 3
    steps:
      - text: Easy run
        duration_min: 40
commitments:
  monday:
    - name: Standup
      start: "09:00"
      end: "09:30"
    - name: Gym
      start: "18:00"
      end: "19:00"
`

func writePlan(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestImportService_ImportFile(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := NewImportService(r.uow, obs)

	result, err := svc.ImportFile(ctx, writePlan(t, importPlanYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, result.GoalsCreated)
	assert.Equal(t, 2, result.CommitmentsWritten)

	g, err := r.goals.GetByID(ctx, "spanish")
	require.NoError(t, err)
	assert.Equal(t, "Learn Spanish", g.Description)

	monday, err := r.commitments.ListByWeekday(ctx, domain.Monday)
	require.NoError(t, err)
	assert.Len(t, monday, 2)
	assert.Equal(t, []string{"import-plan"}, obs.names())
}

func TestImportService_ReimportUpdatesInPlace(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)
	path := writePlan(t, importPlanYAML)

	_, err := svc.ImportFile(ctx, path)
	require.NoError(t, err)
	second, err := svc.ImportFile(ctx, path)
	require.NoError(t, err)

	assert.Zero(t, second.GoalsCreated)
	assert.Equal(t, 2, second.GoalsUpdated, "goals match by id, then by description")
	assert.Equal(t, 2, second.CommitmentsRemoved)

	goals, err := r.goals.List(ctx)
	require.NoError(t, err)
	assert.Len(t, goals, 2)

	commitments, err := r.commitments.List(ctx)
	require.NoError(t, err)
	assert.Len(t, commitments, 2, "weekday commitments are replaced, not duplicated")
}

func TestImportService_LeavesUndeclaredWeekdays(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	require.NoError(t, r.commitments.Create(ctx, testutil.NewTestCommitment("Choir", domain.Thursday, "19:00", "21:00")))

	_, err := NewImportService(r.uow).ImportFile(ctx, writePlan(t, importPlanYAML))
	require.NoError(t, err)

	thursday, err := r.commitments.ListByWeekday(ctx, domain.Thursday)
	require.NoError(t, err)
	assert.Len(t, thursday, 1)
}

func TestImportService_InvalidPlanWritesNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewImportService(r.uow)

	plan := &importer.PlanFile{
		Goals: []importer.GoalImport{{Description: "ok", EndDate: "2099-01-01"}, {Description: ""}},
	}
	_, err := svc.ImportPlan(ctx, plan)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	goals, err := r.goals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestImportService_RollsBackOnWriteFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	// Exec #1 inserts the first goal, #2 its step, #3 the second goal.
	failUoW := &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 3, Err: fmt.Errorf("injected failure")}

	_, err := NewImportService(failUoW).ImportFile(ctx, writePlan(t, importPlanYAML))
	require.Error(t, err)

	goals, err := r.goals.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, goals, "first goal rolled back")
}

func TestImportService_MissingFile(t *testing.T) {
	r := setupRepos(t)
	_, err := NewImportService(r.uow).ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading plan file")
}
