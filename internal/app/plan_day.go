package app

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/alexanderramin/todoer/internal/service"
)

type PlanDayRequest struct {
	Date   time.Time // zero means today
	Mode   scheduler.PlacementMode
	DryRun bool
}

type PlanDayResponse struct {
	Schedule *contract.ScheduleResponse
	// Reminders is set when the planned day is today and the run was stored.
	Reminders []*domain.TaskReminder
	// ReminderErr reports a reminder refresh failure. The schedule is
	// stored regardless.
	ReminderErr error
}

// PlanDay generates a day's schedule and, for today, re-registers its
// reminders.
func (a *App) PlanDay(ctx context.Context, req PlanDayRequest) (*PlanDayResponse, error) {
	sreq := contract.NewScheduleRequest(req.Date)
	sreq.Mode = req.Mode
	sreq.DryRun = req.DryRun

	sched, err := a.Schedule.Generate(ctx, sreq)
	if err != nil {
		return nil, err
	}
	resp := &PlanDayResponse{Schedule: sched}
	if req.DryRun || !sameDay(sched.Date, a.Clock.Now()) {
		return resp, nil
	}

	resp.Reminders, resp.ReminderErr = a.Reminders.RefreshToday(ctx, sched.Date)
	return resp, nil
}

type ReimportResponse struct {
	Import *service.ImportResult
	Plan   *PlanDayResponse
}

// Reimport loads a plan file and replans today on top of it.
func (a *App) Reimport(ctx context.Context, path string) (*ReimportResponse, error) {
	res, err := a.Import.ImportFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}
	plan, err := a.PlanDay(ctx, PlanDayRequest{})
	if err != nil {
		return &ReimportResponse{Import: res}, fmt.Errorf("replanning today: %w", err)
	}
	return &ReimportResponse{Import: res, Plan: plan}, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
