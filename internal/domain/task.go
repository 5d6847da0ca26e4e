package domain

import (
	"fmt"
	"time"
)

// ScheduledTask is a dated, timed unit of work for one day. The scheduler
// creates goal-step and weekly-factor tasks; ad-hoc tasks come from the user.
type ScheduledTask struct {
	ID          string
	Date        time.Time
	Name        string
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	DurationMin int
	Kind        TaskKind
	Completed   bool

	// Goal-step back-references.
	GoalID    string
	StepIndex *int
	Sector    string
	Priority  *float64

	// Set on completion.
	Proof       string
	Attachments []string
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GoalStepTaskID is the deterministic id of a goal-step task for a day.
func GoalStepTaskID(goalID string, stepIndex int, date time.Time) string {
	return fmt.Sprintf("goal-%s-%d-%s", goalID, stepIndex, DateStamp(date))
}

// CommitmentTaskID is the deterministic id of a weekly-factor task for a day.
func CommitmentTaskID(commitmentID string, date time.Time) string {
	return fmt.Sprintf("wf-%s-%s", commitmentID, DateStamp(date))
}

// MarkCompleted records completion. It reports false when the task was
// already complete, so callers can avoid double-awarding.
func (t *ScheduledTask) MarkCompleted(proof string, attachments []string, now time.Time) bool {
	if t.Completed {
		return false
	}
	t.Completed = true
	t.Proof = proof
	t.Attachments = attachments
	t.CompletedAt = &now
	t.UpdatedAt = now
	return true
}

// StartInstant resolves the task's start time on its scheduled date.
func (t *ScheduledTask) StartInstant() (time.Time, error) {
	m, err := ParseClock(t.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return AtClock(t.Date, m), nil
}
