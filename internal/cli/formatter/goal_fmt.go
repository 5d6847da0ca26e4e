package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/intelligence"
)

func FormatGoalList(goals []*domain.Goal, now time.Time) string {
	if len(goals) == 0 {
		return Dim("No goals yet. Add one with 'todoer goal add'.") + "\n"
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		ends := RelativeDateFrom(g.EndDate, now)
		if domain.DateOnly(g.EndDate).Before(domain.DateOnly(now)) {
			ends = StyleRed.Render("ended")
		}
		rows = append(rows, []string{
			ShortID(g.ID),
			g.Description,
			orDash(g.Sector),
			string(g.PreferredTime),
			fmt.Sprintf("%dx/wk", g.TimesPerWeek),
			RenderProgress(g.Progress, 10),
			ends,
		})
	}
	return RenderTable([]string{"ID", "GOAL", "SECTOR", "WHEN", "FREQ", "PROGRESS", "ENDS"}, rows)
}

func FormatGoalDetail(g *domain.Goal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(g.Description), Dim(g.ID))
	fmt.Fprintf(&b, "Sector: %s · When: %s · %dx/week · Ends %s\n",
		orDash(g.Sector), g.PreferredTime, g.TimesPerWeek, g.EndDate.Format("2006-01-02"))
	if g.DailyTimeAllocation != nil {
		fmt.Fprintf(&b, "Daily allocation: %d min\n", *g.DailyTimeAllocation)
	}
	fmt.Fprintf(&b, "Progress %s\n", RenderProgress(g.Progress, 20))
	if g.IdentityStatement != "" {
		fmt.Fprintf(&b, "\n%s\n", StylePurple.Render("“"+g.IdentityStatement+"”"))
	}

	b.WriteString("\n")
	b.WriteString(formatSteps(g.Steps))

	if len(g.HabitTips) > 0 {
		b.WriteString("\n" + Header("Tips") + "\n")
		for _, tip := range g.HabitTips {
			b.WriteString("• " + tip + "\n")
		}
	}
	return RenderBox("Goal", strings.TrimRight(b.String(), "\n"))
}

func formatSteps(steps []domain.Step) string {
	if len(steps) == 0 {
		return Dim("No steps.") + "\n"
	}
	rows := make([][]string, 0, len(steps))
	for i, st := range steps {
		text := st.Text
		if st.Completed {
			text = Dim(text)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			checkMark(st.Completed),
			text,
			strconv.Itoa(st.DurationMin),
			orDash(string(st.HabitType)),
		})
	}
	return RenderTable([]string{"#", "", "STEP", "MIN", "HABIT"}, rows)
}

// FormatBreakdown renders an AI breakdown before it is saved.
func FormatBreakdown(bd *intelligence.Breakdown) string {
	var b strings.Builder
	if bd.IdentityStatement != "" {
		b.WriteString(StylePurple.Render("“"+bd.IdentityStatement+"”") + "\n\n")
	}
	b.WriteString(formatSteps(bd.Steps))
	for _, st := range bd.Steps {
		if st.CueStackingIdea != "" {
			b.WriteString(Dim("  ↳ "+st.CueStackingIdea) + "\n")
		}
	}
	if len(bd.HabitTips) > 0 {
		b.WriteString("\n" + Header("Tips") + "\n")
		for _, tip := range bd.HabitTips {
			b.WriteString("• " + tip + "\n")
		}
	}
	return b.String()
}
