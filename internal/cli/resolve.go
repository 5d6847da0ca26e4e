package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// resolveID finds the item whose id equals input, or failing that the only
// item whose id starts with it.
func resolveID[T any](input string, items []T, id func(T) string, kind string) (T, error) {
	var zero T
	input = strings.TrimSpace(input)
	if input == "" {
		return zero, fmt.Errorf("%s ID is required", kind)
	}

	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
	}

	var matches []T
	for _, it := range items {
		if strings.HasPrefix(id(it), input) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return zero, fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveTask accepts a 1-based position in the day's schedule or a task ID.
func (e *env) resolveTask(ctx context.Context, date time.Time, ref string) (*domain.ScheduledTask, error) {
	tasks, err := e.app.Schedule.ForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tasks) {
			return nil, fmt.Errorf("no task #%d on %s (%d scheduled)", n, date.Format("2006-01-02"), len(tasks))
		}
		return tasks[n-1], nil
	}
	return resolveID(ref, tasks, func(t *domain.ScheduledTask) string { return t.ID }, "task")
}

func (e *env) resolveGoal(ctx context.Context, ref string) (*domain.Goal, error) {
	goals, err := e.app.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	return resolveID(ref, goals, func(g *domain.Goal) string { return g.ID }, "goal")
}

func (e *env) now() time.Time {
	return e.app.Clock.Now()
}

// parseDay reads a calendar day: YYYY-MM-DD, today, tomorrow or yesterday.
// Empty means today.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := domain.DateOnly(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD, today, tomorrow or yesterday)", s)
	}
	return d, nil
}

// parseDateTime reads "<day> HH:MM" or a bare "HH:MM" meaning today.
func parseDateTime(s string, now time.Time) (time.Time, error) {
	fields := strings.Fields(s)
	var day, clock string
	switch len(fields) {
	case 1:
		clock = fields[0]
	case 2:
		day, clock = fields[0], fields[1]
	default:
		return time.Time{}, fmt.Errorf("invalid time %q (want \"YYYY-MM-DD HH:MM\" or \"HH:MM\")", s)
	}

	d, err := parseDay(day, now)
	if err != nil {
		return time.Time{}, err
	}
	m, err := domain.ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return domain.AtClock(d, m), nil
}
