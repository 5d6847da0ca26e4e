package domain

import "time"

// TaskReminder is a registered notification trigger for a task.
type TaskReminder struct {
	ID             string
	TaskID         string
	TaskName       string
	DurationMin    int
	FireAt         time.Time
	Kind           ReminderKind
	Source         ReminderSource
	NotificationID string
	CreatedAt      time.Time
}
