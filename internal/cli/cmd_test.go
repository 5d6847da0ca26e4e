package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/todoer/internal/app"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/alexanderramin/todoer/internal/service"
	"github.com/alexanderramin/todoer/internal/testutil"
)

// Monday, before the day window opens.
var fixedNow = time.Date(2025, 6, 16, 4, 0, 0, 0, time.UTC)

func testApp(t *testing.T) *app.App {
	t.Helper()
	return app.Wire(testutil.NewTestDB(t), app.Options{Clock: scheduler.FixedClock{T: fixedNow}})
}

// executeCmd runs one invocation of the root command against a, returning
// combined stdout and stderr.
func executeCmd(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()
	var loads int
	root := NewRootCmd(func(context.Context, string) (*app.App, error) {
		loads++
		return a, nil
	})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	assert.LessOrEqual(t, loads, 1)
	return buf.String(), err
}

func mustExec(t *testing.T, a *app.App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, a, args...)
	require.NoError(t, err, out)
	return out
}

func TestInit_SeedsOnce(t *testing.T) {
	a := testApp(t)

	out := mustExec(t, a, "init")
	assert.Contains(t, out, "Seeded 8 leisure items")

	out = mustExec(t, a, "init")
	assert.Contains(t, out, "Already initialized.")

	out = mustExec(t, a, "leisure", "list")
	assert.Contains(t, out, "30min Gaming")
	assert.Contains(t, out, "Leisure balance")
}

func TestGoalAddGenerateComplete(t *testing.T) {
	a := testApp(t)

	out := mustExec(t, a, "goal", "add",
		"--description", "Learn Go",
		"--sector", "Academic",
		"--when", "morning",
		"--end", "2025-09-30",
		"--step", "Read chapter: intro:30",
		"--step", "Write exercises:45",
	)
	assert.Contains(t, out, "Created goal Learn Go")
	assert.Contains(t, out, "2 steps")

	mustExec(t, a, "commitment", "add", "--day", "mon", "--name", "Gym", "--start", "05:00", "--end", "05:30")

	out = mustExec(t, a, "schedule", "generate")
	assert.Contains(t, out, "Generated 2025-06-16 schedule (strict mode): 3 placed")
	assert.Contains(t, out, "Gym")
	assert.Contains(t, out, "Read chapter: intro")
	assert.Contains(t, out, "reminder(s) set.")

	out = mustExec(t, a, "schedule", "show")
	assert.Contains(t, out, "3 tasks · 0 done")

	out = mustExec(t, a, "task", "complete", "2", "--proof", "read it")
	assert.Contains(t, out, "Completed Read chapter: intro")
	assert.Contains(t, out, "Goal progress")

	out = mustExec(t, a, "task", "complete", "2")
	assert.Contains(t, out, "already completed")

	out = mustExec(t, a, "points")
	assert.Contains(t, out, "Leisure balance")
}

func TestGoalUpdateAndCompleteStep(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	g := testutil.NewTestGoal("Run a 10k")
	require.NoError(t, a.Goals.Create(ctx, g))

	out := mustExec(t, a, "goal", "update", g.ID[:8], "--description", "Run a half marathon", "--allocation", "45")
	assert.Contains(t, out, "Updated goal Run a half marathon")

	got, err := a.Goals.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run a half marathon", got.Description)
	require.NotNil(t, got.DailyTimeAllocation)
	assert.Equal(t, 45, *got.DailyTimeAllocation)
	assert.Equal(t, g.Sector, got.Sector, "unchanged flags keep their values")

	out = mustExec(t, a, "goal", "complete-step", g.ID, "1")
	assert.Contains(t, out, "Step 1 done.")
	assert.Contains(t, out, "50%")

	out = mustExec(t, a, "goal", "show", g.ID)
	assert.Contains(t, out, "Run a half marathon")

	out = mustExec(t, a, "goal", "delete", g.ID)
	assert.Contains(t, out, "Deleted goal")
	out = mustExec(t, a, "goal", "list")
	assert.Contains(t, out, "No goals found.")
}

func TestGoalAdd_RejectsBadStep(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "goal", "add", "--description", "x", "--end", "2025-09-30", "--step", "no duration")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "text:minutes")
}

func TestCommitmentListAndRemove(t *testing.T) {
	a := testApp(t)
	mustExec(t, a, "commitment", "add", "--day", "tuesday", "--name", "Lecture", "--start", "09:00", "--end", "11:00")

	out := mustExec(t, a, "commitment", "list", "--day", "tue")
	assert.Contains(t, out, "Lecture")

	out = mustExec(t, a, "commitment", "list", "--day", "wed")
	assert.Contains(t, out, "No commitments found.")

	list, err := a.Commitments.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	out = mustExec(t, a, "commitment", "rm", list[0].ID[:6])
	assert.Contains(t, out, "Removed Lecture (Tuesday)")
}

func TestEventLifecycle(t *testing.T) {
	a := testApp(t)
	out := mustExec(t, a, "event", "add", "--title", "Exam", "--date", "2025-06-18")
	assert.Contains(t, out, "Added event Exam on 2025-06-18")

	out = mustExec(t, a, "event", "list")
	assert.Contains(t, out, "Exam")
	assert.Contains(t, out, "URGENT")

	list, err := a.Events.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Priority)

	mustExec(t, a, "event", "update", list[0].ID, "--priority", "5")
	got, err := a.Events.GetByID(context.Background(), list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Priority)

	out = mustExec(t, a, "event", "delete", list[0].ID)
	assert.Contains(t, out, "Deleted event Exam")
}

func TestLeisureRedeem_InsufficientPoints(t *testing.T) {
	a := testApp(t)
	mustExec(t, a, "init")

	_, err := executeCmd(t, a, "leisure", "redeem", "movie night", "--at", "20:00")
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInsufficientPoints)

	out := mustExec(t, a, "leisure", "purchases")
	assert.Contains(t, out, "No purchases yet.")
}

func TestTaskAddAndDelete(t *testing.T) {
	a := testApp(t)
	out := mustExec(t, a, "task", "add", "--name", "Call mom", "--start", "18:00", "--end", "18:20")
	assert.Contains(t, out, "Added Call mom 18:00-18:20 on 2025-06-16")

	out = mustExec(t, a, "task", "delete", "1")
	assert.Contains(t, out, "Deleted Call mom")

	_, err := executeCmd(t, a, "task", "delete", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no task #1")
}

func TestScheduleExplain(t *testing.T) {
	a := testApp(t)
	ctx := context.Background()
	require.NoError(t, a.Goals.Create(ctx, testutil.NewTestGoal("Huge", testutil.WithSteps(30, 30), testutil.WithAllocation(30))))

	out := mustExec(t, a, "schedule", "explain")
	assert.Contains(t, out, "STEP_OVER_BUDGET")

	_, err := executeCmd(t, a, "schedule", "explain", "--mode", "sideways")
	require.Error(t, err)
}

func TestImport(t *testing.T) {
	a := testApp(t)
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`goals:
  - description: Learn Spanish
    sector: Personal
    preferred_time: evening
    end_date: "2025-12-31"
    times_per_week: 3
    steps:
      - text: Duolingo lesson
        duration_min: 15
commitments:
  monday:
    - name: Gym
      start: "06:00"
      end: "07:00"
`), 0o644))

	out := mustExec(t, a, "import", path)
	assert.Contains(t, out, "1 goal(s) created")
	assert.Contains(t, out, "1 commitment(s) written")
}

func TestAIPing_DisabledWithoutLLM(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "ai", "ping")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI features are disabled")

	_, err = executeCmd(t, a, "goal", "add", "--description", "x", "--end", "2025-09-30", "--ai")
	require.Error(t, err)
}

func TestReminders(t *testing.T) {
	a := testApp(t)
	mustExec(t, a, "task", "add", "--name", "Stretch", "--start", "06:00", "--end", "06:15")

	out := mustExec(t, a, "reminders", "refresh")
	assert.Contains(t, out, "2 reminder(s) set.")

	out = mustExec(t, a, "reminders", "list")
	assert.Contains(t, out, "Stretch")

	out = mustExec(t, a, "reminders", "cancel")
	assert.Contains(t, out, "Cancelled 2 reminder(s).")
}

func TestHelpSkipsLoad(t *testing.T) {
	root := NewRootCmd(func(context.Context, string) (*app.App, error) {
		t.Fatal("help must not load the app")
		return nil, nil
	})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "schedule")
}
