package scheduler

import (
	"sort"

	"github.com/alexanderramin/todoer/internal/domain"
)

// SortByStart orders tasks by start time ascending. The sort is stable, so
// tasks sharing a start keep their emission order (commitments before goal
// steps). Unparseable start times sort last.
func SortByStart(tasks []domain.ScheduledTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return startKey(tasks[i]) < startKey(tasks[j])
	})
}

// SortByPriority orders goal-step tasks by priority descending, falling back
// to start time. Tasks without a priority sort after those with one.
func SortByPriority(tasks []domain.ScheduledTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		// 1. Priority present
		if (a.Priority == nil) != (b.Priority == nil) {
			return a.Priority != nil
		}

		// 2. Priority (higher first)
		if a.Priority != nil && *a.Priority != *b.Priority {
			return *a.Priority > *b.Priority
		}

		// 3. Start time
		return startKey(a) < startKey(b)
	})
}

func startKey(t domain.ScheduledTask) int {
	m, err := domain.ParseClock(t.StartTime)
	if err != nil {
		return domain.MinutesPerDay + 1
	}
	return m
}
