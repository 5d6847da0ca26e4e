package formatter

import (
	"strings"

	"github.com/alexanderramin/todoer/internal/domain"
)

// FormatCommitments groups commitments by weekday, Monday first.
func FormatCommitments(list []*domain.WeeklyCommitment) string {
	if len(list) == 0 {
		return Dim("No weekly commitments.") + "\n"
	}

	grouped := domain.GroupCommitments(list)
	order := append(append([]domain.Weekday(nil), domain.AllWeekdays[1:]...), domain.Sunday)

	var rows [][]string
	for _, day := range order {
		for i, c := range grouped[day] {
			label := ""
			if i == 0 {
				label = Bold(day.String())
			}
			rows = append(rows, []string{label, c.StartTime + "–" + c.EndTime, c.Name, Dim(ShortID(c.ID))})
		}
	}
	return strings.TrimRight(RenderTable([]string{"DAY", "TIME", "COMMITMENT", "ID"}, rows), "\n") + "\n"
}
