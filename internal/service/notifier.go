package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// Notification is a rendered reminder ready for delivery.
type Notification struct {
	Title    string
	Body     string
	FireAt   time.Time
	Reminder *domain.TaskReminder
}

// Notifier delivers or schedules reminder notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier records each reminder as a structured log line. A nil
// logger uses slog.Default.
func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(ctx context.Context, note Notification) error {
	n.logger.InfoContext(ctx, "reminder_scheduled",
		"title", note.Title,
		"body", note.Body,
		"fire_at", note.FireAt.Format(time.RFC3339),
		"task_id", note.Reminder.TaskID,
		"kind", string(note.Reminder.Kind),
	)
	return nil
}

func renderNotification(r *domain.TaskReminder, leadMin int) Notification {
	n := Notification{FireAt: r.FireAt, Reminder: r}
	switch r.Kind {
	case domain.ReminderLead:
		n.Title = "🔔 Upcoming Task"
		n.Body = fmt.Sprintf("%q in %d minutes", r.TaskName, leadMin)
		if r.DurationMin > 0 {
			n.Body += fmt.Sprintf(" (%dm duration)", r.DurationMin)
		}
	default:
		n.Title = "⏰ Task Time"
		n.Body = r.TaskName
		if r.DurationMin > 0 {
			n.Body += fmt.Sprintf(" (%d min)", r.DurationMin)
		}
	}
	return n
}
