package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// FormatEvents renders events with an urgency badge. The order of list is
// kept.
func FormatEvents(list []*domain.Event, now time.Time) string {
	if len(list) == 0 {
		return Dim("No events.") + "\n"
	}

	rows := make([][]string, 0, len(list))
	for _, e := range list {
		u := e.UrgencyAt(now)
		rows = append(rows, []string{
			UrgencyBadge(u),
			e.Title,
			e.Date.Format("2006-01-02"),
			UrgencyStyle(u).Render(RelativeDateFrom(e.Date, now)),
			PriorityStars(e.Priority),
			Dim(ShortID(e.ID)),
		})
	}
	return RenderTable([]string{"URGENCY", "EVENT", "DATE", "WHEN", "PRIORITY", "ID"}, rows)
}

func FormatEventDetail(e *domain.Event, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(e.Title), UrgencyBadge(e.UrgencyAt(now)))
	fmt.Fprintf(&b, "Date: %s (%s)\n", e.Date.Format("Mon Jan 2 2006"), RelativeDateFrom(e.Date, now))
	fmt.Fprintf(&b, "Priority: %s\n", PriorityStars(e.Priority))
	if e.Repetition > 0 {
		fmt.Fprintf(&b, "Repeats: %d\n", e.Repetition)
	}
	if e.Description != "" {
		b.WriteString("\n" + e.Description + "\n")
	}
	b.WriteString(Dim(e.ID))
	return RenderBox("Event", b.String())
}

// PriorityStars renders a 1-5 priority as filled and empty stars.
func PriorityStars(p int) string {
	p = min(max(p, 0), 5)
	return StyleYellow.Render(strings.Repeat("★", p)) + Dim(strings.Repeat("☆", 5-p))
}
