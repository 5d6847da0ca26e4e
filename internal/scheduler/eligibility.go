package scheduler

import (
	"slices"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// frequencyDays is the canonical weekday pattern for each timesPerWeek value.
var frequencyDays = map[int][]domain.Weekday{
	1: {domain.Monday},
	2: {domain.Monday, domain.Thursday},
	3: {domain.Monday, domain.Wednesday, domain.Friday},
	4: {domain.Monday, domain.Tuesday, domain.Thursday, domain.Friday},
	5: {domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday},
	6: {domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday, domain.Saturday},
	7: domain.AllWeekdays,
}

const fallbackTimesPerWeek = 3

// ScheduledWeekdays returns the days a goal with the given frequency runs on.
// Values outside 1..7 use the three-times-a-week pattern.
func ScheduledWeekdays(timesPerWeek int) []domain.Weekday {
	if days, ok := frequencyDays[timesPerWeek]; ok {
		return days
	}
	return frequencyDays[fallbackTimesPerWeek]
}

// ShouldScheduleGoal decides whether g is active on date. When it is not,
// the returned code says why.
func ShouldScheduleGoal(g *domain.Goal, date time.Time) (bool, SkipCode) {
	if !dayAfter(g.EndDate, date) {
		return false, SkipGoalExpired
	}
	if !g.HasIncompleteSteps() {
		return false, SkipGoalComplete
	}
	if !slices.Contains(ScheduledWeekdays(g.TimesPerWeek), domain.WeekdayOf(date)) {
		return false, SkipNotScheduledToday
	}
	return true, ""
}

// dayAfter reports whether a's calendar date is strictly after b's. Each
// side is read in its own location so a date-only deadline stored in UTC
// compares by its written day.
func dayAfter(a, b time.Time) bool {
	return dayKey(a) > dayKey(b)
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
