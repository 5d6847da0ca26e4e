package domain

import (
	"fmt"
	"strings"
	"time"
)

type TaskKind string

const (
	TaskGoalStep     TaskKind = "goal-step"
	TaskWeeklyFactor TaskKind = "weekly-factor"
	TaskAdHoc        TaskKind = "ad-hoc"
)

// ValidTaskKinds is the canonical set of accepted task kind strings.
var ValidTaskKinds = map[TaskKind]bool{
	TaskGoalStep: true, TaskWeeklyFactor: true, TaskAdHoc: true,
}

type HabitType string

const (
	HabitIdentity HabitType = "identity"
	HabitProcess  HabitType = "process"
	HabitOutcome  HabitType = "outcome"
)

// ValidHabitTypes is the canonical set of accepted habit type strings.
// The empty string means "unclassified".
var ValidHabitTypes = map[HabitType]bool{
	"": true, HabitIdentity: true, HabitProcess: true, HabitOutcome: true,
}

// PreferredTime is a named part of the day a goal wants its steps placed in.
type PreferredTime string

const (
	TimeMorning        PreferredTime = "morning"
	TimeEarlyMorning   PreferredTime = "early-morning"
	TimeMidMorning     PreferredTime = "mid-morning"
	TimeLateMorning    PreferredTime = "late-morning"
	TimeAfternoon      PreferredTime = "afternoon"
	TimeEarlyAfternoon PreferredTime = "early-afternoon"
	TimeMidAfternoon   PreferredTime = "mid-afternoon"
	TimeLateAfternoon  PreferredTime = "late-afternoon"
	TimeEvening        PreferredTime = "evening"
	TimeEarlyEvening   PreferredTime = "early-evening"
	TimeLateEvening    PreferredTime = "late-evening"
	TimeNight          PreferredTime = "night"
	TimeAnytime        PreferredTime = "anytime"
)

type PurchaseStatus string

const (
	PurchaseScheduled PurchaseStatus = "scheduled"
	PurchaseUsed      PurchaseStatus = "used"
)

type ReminderSource string

const (
	ReminderToDay  ReminderSource = "to-day"
	ReminderManual ReminderSource = "manual"
)

type ReminderKind string

const (
	ReminderLead     ReminderKind = "reminder"
	ReminderTaskTime ReminderKind = "task"
)

// Weekday is an explicit enumeration of the seven days, Sunday first, so that
// commitment lookups never depend on locale-specific day names.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// AllWeekdays lists the days in calendar order starting on Sunday.
var AllWeekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (d Weekday) String() string {
	if d < Sunday || d > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of the seven enumerated days.
func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

// WeekdayOf returns the Weekday of t in t's location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// ParseWeekday accepts full English names or three-letter abbreviations,
// case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range weekdayNames {
		lower := strings.ToLower(name)
		if key == lower || (len(key) == 3 && strings.HasPrefix(lower, key)) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
