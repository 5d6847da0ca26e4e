package contract

import (
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/scheduler"
)

type ScheduleRequest struct {
	Date time.Time
	// DryRun runs the engine without touching the stored schedule.
	DryRun bool
	// Mode overrides the configured placement mode for this run.
	Mode scheduler.PlacementMode
}

func NewScheduleRequest(date time.Time) ScheduleRequest {
	return ScheduleRequest{Date: domain.DateOnly(date)}
}

type Skip = scheduler.Skip

type ScheduleResponse struct {
	Date        time.Time
	GeneratedAt time.Time
	Mode        scheduler.PlacementMode
	// Tasks is the full stored day after the run: generated tasks plus any
	// ad-hoc or already completed tasks, by start time.
	Tasks []domain.ScheduledTask
	Skips []Skip
	// Placed counts tasks the engine produced on this run.
	Placed int
	// Preserved counts generated tasks that were already completed.
	Preserved int
	// Removed counts stale incomplete tasks dropped from the day.
	Removed  int
	Warnings []string
}

type CompleteTaskRequest struct {
	TaskID      string
	Proof       string
	Attachments []string
}

type CompleteTaskResponse struct {
	Task             *domain.ScheduledTask
	AlreadyCompleted bool
	PointsAwarded    float64
	Balance          float64
	// GoalProgress is set for goal-step tasks.
	GoalProgress *int
}

type AdHocTaskRequest struct {
	Date      time.Time
	Name      string
	StartTime string
	EndTime   string
}
