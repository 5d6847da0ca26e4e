package scheduler

import (
	"testing"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/stretchr/testify/assert"
)

func timed(id, start string) domain.ScheduledTask {
	return domain.ScheduledTask{ID: id, StartTime: start}
}

func TestSortByStart_Ascending(t *testing.T) {
	tasks := []domain.ScheduledTask{
		timed("c", "14:00"),
		timed("a", "05:00"),
		timed("b", "09:30"),
	}

	SortByStart(tasks)

	assert.Equal(t, []string{"a", "b", "c"}, ids(tasks))
}

func TestSortByStart_StableOnTies(t *testing.T) {
	tasks := []domain.ScheduledTask{
		timed("wf-1", "09:00"),
		timed("goal-1", "09:00"),
		timed("early", "08:00"),
	}

	SortByStart(tasks)

	assert.Equal(t, []string{"early", "wf-1", "goal-1"}, ids(tasks), "ties keep emission order")
}

func TestSortByStart_UnparseableLast(t *testing.T) {
	tasks := []domain.ScheduledTask{
		timed("bad", "late"),
		timed("ok", "21:55"),
	}

	SortByStart(tasks)

	assert.Equal(t, []string{"ok", "bad"}, ids(tasks))
}

func TestSortByPriority(t *testing.T) {
	tasks := []domain.ScheduledTask{
		{ID: "none", StartTime: "05:00"},
		{ID: "low", StartTime: "06:00", Priority: domain.Ptr(40.0)},
		{ID: "high-late", StartTime: "11:00", Priority: domain.Ptr(90.0)},
		{ID: "high-early", StartTime: "07:00", Priority: domain.Ptr(90.0)},
	}

	SortByPriority(tasks)

	assert.Equal(t, []string{"high-early", "high-late", "low", "none"}, ids(tasks))
}

func ids(tasks []domain.ScheduledTask) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
