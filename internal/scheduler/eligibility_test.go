package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/stretchr/testify/assert"
)

// 2025-06-16 is a Monday.
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func dayOffset(d int) time.Time { return monday.AddDate(0, 0, d) }

func eligibleGoal(timesPerWeek int) *domain.Goal {
	return &domain.Goal{
		ID:           "g1",
		Description:  "Learn Go",
		TimesPerWeek: timesPerWeek,
		EndDate:      monday.AddDate(1, 0, 0),
		Steps:        []domain.Step{{Text: "read", DurationMin: 30}},
	}
}

func TestScheduledWeekdays_Table(t *testing.T) {
	tests := []struct {
		n    int
		want []domain.Weekday
	}{
		{1, []domain.Weekday{domain.Monday}},
		{2, []domain.Weekday{domain.Monday, domain.Thursday}},
		{3, []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}},
		{4, []domain.Weekday{domain.Monday, domain.Tuesday, domain.Thursday, domain.Friday}},
		{5, []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday}},
		{6, []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday, domain.Saturday}},
		{7, domain.AllWeekdays},
		{0, []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}},
		{9, []domain.Weekday{domain.Monday, domain.Wednesday, domain.Friday}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScheduledWeekdays(tt.n), "timesPerWeek=%d", tt.n)
	}
}

func TestShouldScheduleGoal_OncePerWeekOnlyMonday(t *testing.T) {
	g := eligibleGoal(1)
	for d := 0; d < 7; d++ {
		date := dayOffset(d)
		ok, code := ShouldScheduleGoal(g, date)
		if d == 0 {
			assert.True(t, ok, "monday")
			assert.Empty(t, code)
			continue
		}
		assert.False(t, ok, date.Weekday().String())
		assert.Equal(t, SkipNotScheduledToday, code)
	}
}

func TestShouldScheduleGoal_DailyEveryDay(t *testing.T) {
	g := eligibleGoal(7)
	for d := 0; d < 7; d++ {
		ok, _ := ShouldScheduleGoal(g, dayOffset(d))
		assert.True(t, ok, dayOffset(d).Weekday().String())
	}
}

func TestShouldScheduleGoal_EndDateIsExclusive(t *testing.T) {
	g := eligibleGoal(7)

	g.EndDate = monday
	ok, code := ShouldScheduleGoal(g, monday)
	assert.False(t, ok, "deadline day itself is not scheduled")
	assert.Equal(t, SkipGoalExpired, code)

	g.EndDate = monday.AddDate(0, 0, -3)
	ok, code = ShouldScheduleGoal(g, monday)
	assert.False(t, ok)
	assert.Equal(t, SkipGoalExpired, code)

	g.EndDate = monday.AddDate(0, 0, 1)
	ok, _ = ShouldScheduleGoal(g, monday)
	assert.True(t, ok, "day before the deadline")
}

func TestShouldScheduleGoal_EndDateComparedByCalendarDay(t *testing.T) {
	g := eligibleGoal(7)
	g.EndDate = time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	lateMonday := time.Date(2025, 6, 16, 23, 30, 0, 0, time.UTC)
	ok, _ := ShouldScheduleGoal(g, lateMonday)
	assert.True(t, ok)

	ok, _ = ShouldScheduleGoal(g, time.Date(2025, 6, 17, 0, 1, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestShouldScheduleGoal_AllStepsComplete(t *testing.T) {
	g := eligibleGoal(7)
	g.Steps[0].Completed = true

	ok, code := ShouldScheduleGoal(g, monday)

	assert.False(t, ok)
	assert.Equal(t, SkipGoalComplete, code)
}

func TestShouldScheduleGoal_NoSteps(t *testing.T) {
	g := eligibleGoal(7)
	g.Steps = nil

	ok, code := ShouldScheduleGoal(g, monday)

	assert.False(t, ok)
	assert.Equal(t, SkipGoalComplete, code)
}

func TestPreferredRange(t *testing.T) {
	day := DefaultWindow
	tests := []struct {
		pref domain.PreferredTime
		want Window
	}{
		{domain.TimeMorning, Window{300, 720}},
		{domain.TimeEarlyMorning, Window{300, 480}},
		{domain.TimeMidMorning, Window{480, 600}},
		{domain.TimeLateMorning, Window{600, 720}},
		{domain.TimeAfternoon, Window{720, 1020}},
		{domain.TimeMidAfternoon, Window{840, 930}},
		{domain.TimeEvening, Window{1020, 1140}},
		{domain.TimeLateEvening, Window{1080, 1140}},
		{domain.TimeNight, Window{1140, 1320}},
		{"  Morning ", Window{300, 720}},
		{domain.TimeAnytime, day},
		{"brunch", day},
		{"", day},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PreferredRange(tt.pref, day), "pref=%q", tt.pref)
	}
}

func TestPreferredRange_FollowsWindowEdges(t *testing.T) {
	day := Window{Start: 6 * 60, End: 23 * 60}

	assert.Equal(t, Window{360, 720}, PreferredRange(domain.TimeMorning, day))
	assert.Equal(t, Window{1140, 1380}, PreferredRange(domain.TimeNight, day))
}

func TestIsKnownPreferredTime(t *testing.T) {
	assert.True(t, IsKnownPreferredTime(domain.TimeEarlyAfternoon))
	assert.True(t, IsKnownPreferredTime("NIGHT"))
	assert.True(t, IsKnownPreferredTime(domain.TimeAnytime))
	assert.False(t, IsKnownPreferredTime("brunch"))
}
