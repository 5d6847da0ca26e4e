package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

func FormatReminders(list []*domain.TaskReminder, now time.Time) string {
	if len(list) == 0 {
		return Dim("No reminders registered.") + "\n"
	}
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		when := r.FireAt.In(now.Location()).Format("15:04")
		if r.FireAt.Before(now) {
			when = Dim(when)
		}
		kind := StyleYellow.Render("🔔 lead")
		if r.Kind == domain.ReminderTaskTime {
			kind = StyleBlue.Render("⏰ start")
		}
		rows = append(rows, []string{
			when,
			kind,
			r.TaskName,
			fmt.Sprintf("%d", r.DurationMin),
			Dim(string(r.Source)),
		})
	}
	return RenderTable([]string{"AT", "KIND", "TASK", "MIN", "SOURCE"}, rows)
}
