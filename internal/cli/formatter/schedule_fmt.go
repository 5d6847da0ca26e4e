package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/scheduler"
)

// FormatSchedule renders one day's tasks in start order, numbered from 1 so
// the numbers can be passed to "task complete".
func FormatSchedule(date time.Time, tasks []domain.ScheduledTask) string {
	var b strings.Builder
	b.WriteString(Header("Schedule · " + date.Format("Monday, Jan 2 2006")))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(Dim("Nothing scheduled. Run 'todoer schedule generate' to plan the day."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(tasks))
	done, planned := 0, 0
	for i, t := range tasks {
		name := t.Name
		if t.Completed {
			done++
			name = Dim(name)
		}
		planned += t.DurationMin
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.StartTime + "–" + t.EndTime,
			name,
			KindBadge(t.Kind),
			strconv.Itoa(t.DurationMin),
			checkMark(t.Completed),
		})
	}
	b.WriteString(RenderTable([]string{"#", "TIME", "TASK", "KIND", "MIN", "DONE"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d tasks · %d done · %d min planned", len(tasks), done, planned)))
	b.WriteString("\n")
	return b.String()
}

// FormatGenerate renders the outcome of a schedule run.
func FormatGenerate(resp *contract.ScheduleResponse, dryRun bool) string {
	var b strings.Builder

	verb := "Generated"
	if dryRun {
		verb = "Preview of"
	}
	fmt.Fprintf(&b, "%s %s schedule (%s mode): %d placed", verb, resp.Date.Format("2006-01-02"), resp.Mode, resp.Placed)
	if !dryRun {
		fmt.Fprintf(&b, ", %d already done, %d removed", resp.Preserved, resp.Removed)
	}
	b.WriteString("\n\n")
	b.WriteString(FormatSchedule(resp.Date, resp.Tasks))

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! " + w))
		b.WriteString("\n")
	}
	if n := countSkips(resp.Skips); n > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d item(s) left off the day. Run 'todoer schedule explain' for details.", n)))
		b.WriteString("\n")
	}
	return b.String()
}

// countSkips ignores goals that simply do not run on this day.
func countSkips(skips []contract.Skip) int {
	n := 0
	for _, s := range skips {
		switch s.Code {
		case scheduler.SkipGoalComplete, scheduler.SkipGoalExpired, scheduler.SkipNotScheduledToday:
		default:
			n++
		}
	}
	return n
}

// FormatExplain lists every skip diagnostic from a preview run.
func FormatExplain(resp *contract.ScheduleResponse) string {
	var b strings.Builder
	b.WriteString(Header("Why not scheduled · " + resp.Date.Format("Mon Jan 2")))
	b.WriteString("\n")

	if len(resp.Skips) == 0 {
		b.WriteString(StyleGreen.Render("Everything eligible fits on the day."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(resp.Skips))
	for _, s := range resp.Skips {
		ref := s.GoalID
		if ref == "" {
			ref = s.CommitmentID
		}
		step := ""
		if s.StepIndex != nil {
			step = strconv.Itoa(*s.StepIndex + 1)
		}
		rows = append(rows, []string{skipStyle(s.Code), ShortID(ref), orDash(step), s.Message})
	}
	b.WriteString(RenderTable([]string{"CODE", "REF", "STEP", "REASON"}, rows))
	return b.String()
}

func skipStyle(code scheduler.SkipCode) string {
	switch code {
	case scheduler.SkipStepNoFit, scheduler.SkipStepOverBudget, scheduler.SkipCommitmentMalformed, scheduler.SkipStepInvalidDuration:
		return StyleRed.Render(string(code))
	case scheduler.SkipStepHalted, scheduler.SkipCommitmentOutOfWindow:
		return StyleYellow.Render(string(code))
	}
	return Dim(string(code))
}

// FormatCompletion renders the result of completing a task.
func FormatCompletion(resp *contract.CompleteTaskResponse) string {
	if resp.AlreadyCompleted {
		return fmt.Sprintf("%s was already completed. Balance: %s\n", Bold(resp.Task.Name), Points(resp.Balance))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Completed %s  %s\n", StyleGreen.Render("✔"), Bold(resp.Task.Name),
		StyleGreen.Render("+"+Points(resp.PointsAwarded)))
	if resp.GoalProgress != nil {
		fmt.Fprintf(&b, "Goal progress %s\n", RenderProgress(*resp.GoalProgress, 20))
	}
	fmt.Fprintf(&b, "Balance: %s\n", Points(resp.Balance))
	return b.String()
}

// KindBadge labels a task by origin.
func KindBadge(k domain.TaskKind) string {
	switch k {
	case domain.TaskGoalStep:
		return StyleBlue.Render("goal")
	case domain.TaskWeeklyFactor:
		return StylePurple.Render("weekly")
	case domain.TaskAdHoc:
		return StyleYellow.Render("ad-hoc")
	}
	return Dim(string(k))
}
