package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/google/uuid"
)

var stepCounter atomic.Int64

// Goal options
type GoalOption func(*domain.Goal)

func WithEndDate(d time.Time) GoalOption {
	return func(g *domain.Goal) {
		g.EndDate = d
	}
}

func WithTimesPerWeek(n int) GoalOption {
	return func(g *domain.Goal) {
		g.TimesPerWeek = n
	}
}

func WithPreferredTime(p domain.PreferredTime) GoalOption {
	return func(g *domain.Goal) {
		g.PreferredTime = p
	}
}

func WithAllocation(min int) GoalOption {
	return func(g *domain.Goal) {
		g.DailyTimeAllocation = &min
	}
}

func WithSector(s string) GoalOption {
	return func(g *domain.Goal) {
		g.Sector = s
	}
}

// WithSteps replaces the goal's steps with one step per duration.
func WithSteps(durations ...int) GoalOption {
	return func(g *domain.Goal) {
		g.Steps = nil
		for _, d := range durations {
			g.Steps = append(g.Steps, domain.Step{
				Text:        fmt.Sprintf("step %d", stepCounter.Add(1)),
				DurationMin: d,
				HabitType:   domain.HabitProcess,
			})
		}
	}
}

func WithCompletedSteps(indexes ...int) GoalOption {
	return func(g *domain.Goal) {
		for _, i := range indexes {
			g.Steps[i].Completed = true
		}
		g.Progress = g.ComputeProgress()
	}
}

func WithGoalID(id string) GoalOption {
	return func(g *domain.Goal) {
		g.ID = id
	}
}

// NewTestGoal returns a daily, morning goal with two 30-minute steps that
// ends three months from now.
func NewTestGoal(description string, opts ...GoalOption) *domain.Goal {
	now := time.Now().UTC().Truncate(time.Second)
	g := &domain.Goal{
		ID:            uuid.New().String(),
		Description:   description,
		Sector:        "Academic",
		PreferredTime: domain.TimeMorning,
		EndDate:       domain.DateOnly(now.AddDate(0, 3, 0)),
		TimesPerWeek:  7,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	WithSteps(30, 30)(g)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewTestCommitment returns a commitment on day between start and end.
func NewTestCommitment(name string, day domain.Weekday, start, end string) *domain.WeeklyCommitment {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.WeeklyCommitment{
		ID:        uuid.New().String(),
		Name:      name,
		Weekday:   day,
		StartTime: start,
		EndTime:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Task options
type TaskOption func(*domain.ScheduledTask)

func WithTaskKind(k domain.TaskKind) TaskOption {
	return func(t *domain.ScheduledTask) {
		t.Kind = k
	}
}

func WithGoalStep(goalID string, index int) TaskOption {
	return func(t *domain.ScheduledTask) {
		t.Kind = domain.TaskGoalStep
		t.GoalID = goalID
		t.StepIndex = &index
		t.ID = domain.GoalStepTaskID(goalID, index, t.Date)
	}
}

func WithTaskCompleted(proof string) TaskOption {
	return func(t *domain.ScheduledTask) {
		t.MarkCompleted(proof, nil, t.UpdatedAt)
	}
}

// NewTestTask returns an ad-hoc task on date between start and end.
func NewTestTask(date time.Time, name, start, end string, opts ...TaskOption) *domain.ScheduledTask {
	now := time.Now().UTC().Truncate(time.Second)
	s, _ := domain.ParseClock(start)
	e, _ := domain.ParseClock(end)
	t := &domain.ScheduledTask{
		ID:          uuid.New().String(),
		Date:        domain.DateOnly(date),
		Name:        name,
		StartTime:   start,
		EndTime:     end,
		DurationMin: e - s,
		Kind:        domain.TaskAdHoc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestEvent(title string, date time.Time, priority int) *domain.Event {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Event{
		ID:        uuid.New().String(),
		Title:     title,
		Date:      date,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestLeisureItem(name string, cost float64) *domain.LeisureItem {
	return &domain.LeisureItem{
		ID:        uuid.New().String(),
		Name:      name,
		Cost:      cost,
		Icon:      "🎲",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
