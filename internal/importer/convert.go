package importer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/google/uuid"
)

const defaultTimesPerWeek = 7

// Plan holds domain objects converted from a plan file, ready for
// persistence.
type Plan struct {
	Goals       []*domain.Goal
	Commitments []*domain.WeeklyCommitment
	// Weekdays lists each day the file declares commitments for, including
	// days declared with an empty list.
	Weekdays []domain.Weekday
}

// Convert transforms a validated PlanFile into domain objects. Call
// ValidatePlanFile first; Convert assumes the plan is valid.
func Convert(file *PlanFile, now time.Time) (*Plan, error) {
	now = now.UTC()
	plan := &Plan{}

	for i, gi := range file.Goals {
		end, err := time.Parse("2006-01-02", gi.EndDate)
		if err != nil {
			return nil, fmt.Errorf("goals[%d]: parsing end_date: %w", i, err)
		}
		g := &domain.Goal{
			ID:                  gi.ID,
			Description:         strings.TrimSpace(gi.Description),
			Sector:              gi.Sector,
			PreferredTime:       domain.PreferredTime(strings.ToLower(strings.TrimSpace(gi.PreferredTime))),
			EndDate:             end,
			TimesPerWeek:        gi.TimesPerWeek,
			DailyTimeAllocation: gi.DailyTimeAllocation,
			IdentityStatement:   gi.IdentityStatement,
			HabitTips:           gi.HabitTips,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		if g.PreferredTime == "" {
			g.PreferredTime = domain.TimeAnytime
		}
		if g.TimesPerWeek == 0 {
			g.TimesPerWeek = defaultTimesPerWeek
		}
		for _, si := range gi.Steps {
			g.Steps = append(g.Steps, domain.Step{
				Text:            strings.TrimSpace(si.Text),
				DurationMin:     si.DurationMin,
				Completed:       si.Completed,
				HabitType:       domain.HabitType(si.HabitType),
				CueStackingIdea: si.CueStackingIdea,
			})
		}
		g.Progress = g.ComputeProgress()
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("goals[%d]: %w", i, err)
		}
		plan.Goals = append(plan.Goals, g)
	}

	days := make([]string, 0, len(file.Commitments))
	for day := range file.Commitments {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		wd, err := domain.ParseWeekday(day)
		if err != nil {
			return nil, fmt.Errorf("commitments: %w", err)
		}
		plan.Weekdays = append(plan.Weekdays, wd)
		for i, ci := range file.Commitments[day] {
			c, err := convertCommitment(ci, wd, now)
			if err != nil {
				return nil, fmt.Errorf("commitments.%s[%d]: %w", day, i, err)
			}
			plan.Commitments = append(plan.Commitments, c)
		}
	}
	sort.SliceStable(plan.Weekdays, func(i, j int) bool { return plan.Weekdays[i] < plan.Weekdays[j] })
	sort.SliceStable(plan.Commitments, func(i, j int) bool {
		return plan.Commitments[i].Weekday < plan.Commitments[j].Weekday
	})

	return plan, nil
}

func convertCommitment(ci CommitmentImport, day domain.Weekday, now time.Time) (*domain.WeeklyCommitment, error) {
	start, err := domain.ParseClock(ci.Start)
	if err != nil {
		return nil, err
	}
	end, err := domain.ParseClock(ci.End)
	if err != nil {
		return nil, err
	}
	c := &domain.WeeklyCommitment{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(ci.Name),
		Weekday:   day,
		StartTime: domain.FormatClock(start),
		EndTime:   domain.FormatClock(end),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return c, c.Validate()
}
