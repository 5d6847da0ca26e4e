package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type Goal struct {
	ID                  string
	Description         string
	Sector              string
	PreferredTime       PreferredTime
	EndDate             time.Time
	TimesPerWeek        int
	Steps               []Step
	Progress            int
	DailyTimeAllocation *int // minutes; nil means unlimited
	IdentityStatement   string
	HabitTips           []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Step struct {
	Text            string
	DurationMin     int
	Completed       bool
	HabitType       HabitType
	CueStackingIdea string
}

// Validate checks the fields a goal needs before it can be stored or scheduled.
func (g *Goal) Validate() error {
	if strings.TrimSpace(g.Description) == "" {
		return fmt.Errorf("goal description is required")
	}
	if g.EndDate.IsZero() {
		return fmt.Errorf("goal end date is required")
	}
	if g.TimesPerWeek < 1 || g.TimesPerWeek > 7 {
		return fmt.Errorf("times per week must be between 1 and 7, got %d", g.TimesPerWeek)
	}
	if g.DailyTimeAllocation != nil && *g.DailyTimeAllocation <= 0 {
		return fmt.Errorf("daily time allocation must be positive, got %d", *g.DailyTimeAllocation)
	}
	for i, s := range g.Steps {
		if strings.TrimSpace(s.Text) == "" {
			return fmt.Errorf("step %d: text is required", i)
		}
		if s.DurationMin <= 0 {
			return fmt.Errorf("step %d: duration must be positive, got %d", i, s.DurationMin)
		}
		if !ValidHabitTypes[s.HabitType] {
			return fmt.Errorf("step %d: unknown habit type %q", i, s.HabitType)
		}
	}
	return nil
}

// ComputeProgress returns round(completed / total * 100); zero for a goal
// without steps.
func (g *Goal) ComputeProgress() int {
	if len(g.Steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range g.Steps {
		if s.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(g.Steps)) * 100))
}

// HasIncompleteSteps reports whether any step remains to be done.
func (g *Goal) HasIncompleteSteps() bool {
	for _, s := range g.Steps {
		if !s.Completed {
			return true
		}
	}
	return false
}

// CompleteStep marks the step at index done and refreshes Progress.
// Completing an already completed step is a no-op.
func (g *Goal) CompleteStep(index int, now time.Time) error {
	if index < 0 || index >= len(g.Steps) {
		return fmt.Errorf("step index %d out of range (goal has %d steps)", index, len(g.Steps))
	}
	if g.Steps[index].Completed {
		return nil
	}
	g.Steps[index].Completed = true
	g.Progress = g.ComputeProgress()
	g.UpdatedAt = now
	return nil
}

// RemainingMinutes sums the durations of the remaining steps.
func (g *Goal) RemainingMinutes() int {
	total := 0
	for _, s := range g.Steps {
		if !s.Completed {
			total += s.DurationMin
		}
	}
	return total
}
