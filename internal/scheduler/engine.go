package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// Clock supplies the current instant. Deadline scoring reads it, so tests
// inject a FixedClock to keep output deterministic.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// PlacementMode controls what happens when a goal step cannot be placed.
type PlacementMode string

const (
	// ModeStrict halts a goal for the day at its first step that is over
	// budget or does not fit.
	ModeStrict PlacementMode = "strict"
	// ModeBestEffort skips such a step and keeps trying later ones.
	ModeBestEffort PlacementMode = "best-effort"
)

func ParsePlacementMode(s string) (PlacementMode, error) {
	switch PlacementMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeStrict:
		return ModeStrict, nil
	case ModeBestEffort, "besteffort", "best_effort":
		return ModeBestEffort, nil
	}
	return "", fmt.Errorf("unknown placement mode %q (want strict or best-effort)", s)
}

type Options struct {
	Window  Window
	SlotMin int
	Mode    PlacementMode
}

func DefaultOptions() Options {
	return Options{Window: DefaultWindow, SlotMin: DefaultSlotMin, Mode: ModeStrict}
}

// SkipCode classifies why an input produced no task.
type SkipCode string

const (
	SkipGoalExpired           SkipCode = "GOAL_EXPIRED"
	SkipGoalComplete          SkipCode = "GOAL_COMPLETE"
	SkipNotScheduledToday     SkipCode = "NOT_SCHEDULED_TODAY"
	SkipStepOverBudget        SkipCode = "STEP_OVER_BUDGET"
	SkipStepNoFit             SkipCode = "STEP_NO_FIT"
	SkipStepInvalidDuration   SkipCode = "STEP_INVALID_DURATION"
	SkipStepHalted            SkipCode = "STEP_HALTED"
	SkipCommitmentMalformed   SkipCode = "COMMITMENT_MALFORMED"
	SkipCommitmentOutOfWindow SkipCode = "COMMITMENT_OUTSIDE_WINDOW"
)

// Skip is a diagnostic for a goal, step or commitment left off the day.
type Skip struct {
	Code         SkipCode
	GoalID       string
	StepIndex    *int
	CommitmentID string
	Message      string
}

type Request struct {
	Date        time.Time
	Goals       []domain.Goal
	Commitments domain.WeeklyCommitments
	// Reserved are tasks already fixed on the day (completed or user-added).
	// Their time is blocked before goal steps are placed; they are not
	// emitted again.
	Reserved []domain.ScheduledTask
}

type Result struct {
	Tasks []domain.ScheduledTask
	Skips []Skip
}

// Engine builds one day's timetable. It holds no state between calls.
type Engine struct {
	opts  Options
	clock Clock
}

// NewEngine fills zero-valued options from DefaultOptions. A nil clock
// means the system clock.
func NewEngine(opts Options, clock Clock) *Engine {
	def := DefaultOptions()
	if opts.Window == (Window{}) {
		opts.Window = def.Window
	}
	if opts.SlotMin <= 0 {
		opts.SlotMin = def.SlotMin
	}
	if opts.Mode == "" {
		opts.Mode = def.Mode
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{opts: opts, clock: clock}
}

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) Clock() Clock { return e.clock }

// WithMode returns a copy of e that places steps in mode. An empty mode
// keeps the current one.
func (e *Engine) WithMode(mode PlacementMode) *Engine {
	if mode == "" {
		return e
	}
	cp := *e
	cp.opts.Mode = mode
	return &cp
}

// GenerateDailySchedule places date's commitments and eligible goal steps
// with the default options and the system clock.
func GenerateDailySchedule(date time.Time, goals []domain.Goal, commitments domain.WeeklyCommitments) []domain.ScheduledTask {
	return NewEngine(DefaultOptions(), nil).GenerateDailySchedule(date, goals, commitments)
}

func (e *Engine) GenerateDailySchedule(date time.Time, goals []domain.Goal, commitments domain.WeeklyCommitments) []domain.ScheduledTask {
	return e.Plan(Request{Date: date, Goals: goals, Commitments: commitments}).Tasks
}

// Plan runs the full placement for one day: commitments first, then goal
// steps in goal order, then a stable sort by start time. Inputs are never
// mutated.
func (e *Engine) Plan(req Request) Result {
	date := domain.DateOnly(req.Date)
	now := e.clock.Now()
	grid := NewGrid(e.opts.Window, e.opts.SlotMin)

	var res Result
	e.placeCommitments(&res, grid, date, req.Commitments[domain.WeekdayOf(date)])
	e.reserve(grid, req.Reserved)
	for i := range req.Goals {
		e.placeGoal(&res, grid, date, now, &req.Goals[i])
	}

	SortByStart(res.Tasks)
	return res
}

func (e *Engine) placeCommitments(res *Result, grid *Grid, date time.Time, list []domain.WeeklyCommitment) {
	for _, c := range list {
		start, errStart := domain.ParseClock(c.StartTime)
		end, errEnd := domain.ParseClock(c.EndTime)
		if errStart != nil || errEnd != nil || end <= start {
			res.Skips = append(res.Skips, Skip{
				Code:         SkipCommitmentMalformed,
				CommitmentID: c.ID,
				Message:      fmt.Sprintf("%q has an unusable time range %q-%q", c.Name, c.StartTime, c.EndTime),
			})
			continue
		}

		start, end, ok := e.opts.Window.Clamp(start, end)
		if !ok {
			res.Skips = append(res.Skips, Skip{
				Code:         SkipCommitmentOutOfWindow,
				CommitmentID: c.ID,
				Message:      fmt.Sprintf("%q lies outside the day window", c.Name),
			})
			continue
		}

		grid.MarkOccupied(start, end)
		res.Tasks = append(res.Tasks, domain.ScheduledTask{
			ID:          domain.CommitmentTaskID(c.ID, date),
			Date:        date,
			Name:        c.Name,
			StartTime:   domain.FormatClock(start),
			EndTime:     domain.FormatClock(end),
			DurationMin: end - start,
			Kind:        domain.TaskWeeklyFactor,
		})
	}
}

func (e *Engine) reserve(grid *Grid, tasks []domain.ScheduledTask) {
	for _, t := range tasks {
		start, errStart := domain.ParseClock(t.StartTime)
		end, errEnd := domain.ParseClock(t.EndTime)
		if errStart != nil || errEnd != nil || end <= start {
			continue
		}
		if start, end, ok := e.opts.Window.Clamp(start, end); ok {
			grid.MarkOccupied(start, end)
		}
	}
}

func (e *Engine) placeGoal(res *Result, grid *Grid, date, now time.Time, g *domain.Goal) {
	if ok, code := ShouldScheduleGoal(g, date); !ok {
		res.Skips = append(res.Skips, Skip{Code: code, GoalID: g.ID, Message: skipMessage(code, g)})
		return
	}

	band := PreferredRange(g.PreferredTime, e.opts.Window)
	used := 0
	for i, step := range g.Steps {
		if step.Completed {
			continue
		}

		var code SkipCode
		switch {
		case step.DurationMin <= 0:
			code = SkipStepInvalidDuration
		case g.DailyTimeAllocation != nil && used+step.DurationMin > *g.DailyTimeAllocation:
			code = SkipStepOverBudget
		}

		var iv Interval
		if code == "" {
			var ok bool
			if iv, ok = grid.FindFirstFit(step.DurationMin, band.Start, band.End); !ok {
				code = SkipStepNoFit
			}
		}

		if code != "" {
			res.Skips = append(res.Skips, stepSkip(code, g, i, step))
			if e.opts.Mode == ModeStrict {
				e.haltRemaining(res, g, i+1)
				return
			}
			continue
		}

		priority := CalculatePriority(g, i, now)
		res.Tasks = append(res.Tasks, domain.ScheduledTask{
			ID:          domain.GoalStepTaskID(g.ID, i, date),
			Date:        date,
			Name:        step.Text,
			StartTime:   domain.FormatClock(iv.Start),
			EndTime:     domain.FormatClock(iv.End),
			DurationMin: step.DurationMin,
			Kind:        domain.TaskGoalStep,
			GoalID:      g.ID,
			StepIndex:   domain.Ptr(i),
			Sector:      g.Sector,
			Priority:    &priority,
		})
		used += step.DurationMin
	}
}

// haltRemaining records the incomplete steps after a strict-mode stop so
// explain output shows them as not attempted.
func (e *Engine) haltRemaining(res *Result, g *domain.Goal, from int) {
	for i := from; i < len(g.Steps); i++ {
		if g.Steps[i].Completed {
			continue
		}
		res.Skips = append(res.Skips, stepSkip(SkipStepHalted, g, i, g.Steps[i]))
	}
}

func stepSkip(code SkipCode, g *domain.Goal, i int, step domain.Step) Skip {
	var msg string
	switch code {
	case SkipStepInvalidDuration:
		msg = fmt.Sprintf("step %q has no positive duration", step.Text)
	case SkipStepOverBudget:
		msg = fmt.Sprintf("step %q (%dm) exceeds the daily allocation of %dm", step.Text, step.DurationMin, domain.ValueOr(g.DailyTimeAllocation, 0))
	case SkipStepNoFit:
		msg = fmt.Sprintf("no free %dm block in the %s band for step %q", step.DurationMin, bandLabel(g.PreferredTime), step.Text)
	case SkipStepHalted:
		msg = fmt.Sprintf("step %q not attempted after an earlier step stopped", step.Text)
	}
	return Skip{Code: code, GoalID: g.ID, StepIndex: domain.Ptr(i), Message: msg}
}

func skipMessage(code SkipCode, g *domain.Goal) string {
	switch code {
	case SkipGoalExpired:
		return fmt.Sprintf("goal %q ended on %s", g.Description, g.EndDate.Format("2006-01-02"))
	case SkipGoalComplete:
		return fmt.Sprintf("goal %q has no incomplete steps", g.Description)
	case SkipNotScheduledToday:
		return fmt.Sprintf("goal %q (%dx/week) does not run on this weekday", g.Description, g.TimesPerWeek)
	}
	return string(code)
}

func bandLabel(p domain.PreferredTime) string {
	if p == "" {
		return string(domain.TimeAnytime)
	}
	return string(p)
}
