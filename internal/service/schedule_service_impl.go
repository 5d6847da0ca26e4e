package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/google/uuid"
)

type scheduleService struct {
	goals       repository.GoalRepo
	commitments repository.CommitmentRepo
	tasks       repository.TaskRepo
	engine      *scheduler.Engine
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewScheduleService(
	goals repository.GoalRepo,
	commitments repository.CommitmentRepo,
	tasks repository.TaskRepo,
	engine *scheduler.Engine,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ScheduleService {
	if engine == nil {
		engine = scheduler.NewEngine(scheduler.DefaultOptions(), nil)
	}
	return &scheduleService{
		goals:       goals,
		commitments: commitments,
		tasks:       tasks,
		engine:      engine,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) now() time.Time {
	return s.engine.Clock().Now()
}

func (s *scheduleService) Generate(ctx context.Context, req contract.ScheduleRequest) (resp *contract.ScheduleResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"dry_run": req.DryRun}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "generate-schedule",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	date = domain.DateOnly(date)
	fields["date"] = date.Format("2006-01-02")

	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	commitments, err := s.commitments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading commitments: %w", err)
	}

	current, err := s.tasks.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("loading stored schedule: %w", err)
	}

	engine := s.engine.WithMode(req.Mode)
	goalValues := make([]domain.Goal, len(goals))
	for i, g := range goals {
		goalValues[i] = *g
	}
	res := engine.Plan(scheduler.Request{
		Date:        date,
		Goals:       goalValues,
		Commitments: domain.GroupCommitments(commitments),
		Reserved:    reservedTasks(current),
	})

	resp = &contract.ScheduleResponse{
		Date:        date,
		GeneratedAt: s.now().UTC(),
		Mode:        engine.Options().Mode,
		Skips:       res.Skips,
		Placed:      len(res.Tasks),
		Warnings:    planWarnings(goals),
	}
	fields["placed"] = resp.Placed
	fields["skips"] = len(res.Skips)
	fields["mode"] = string(resp.Mode)

	if req.DryRun {
		resp.Tasks = res.Tasks
		return resp, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		keep := make([]string, 0, len(res.Tasks))
		for i := range res.Tasks {
			t := &res.Tasks[i]
			if t.Kind == domain.TaskGoalStep {
				if err := detachFromCompleted(ctx, txTasks, t); err != nil {
					return err
				}
			}
			existing, err := txTasks.GetByID(ctx, t.ID)
			switch {
			case err == nil:
				t.CreatedAt = existing.CreatedAt
				if existing.Completed {
					resp.Preserved++
				}
			case isNotFound(err):
				t.CreatedAt = resp.GeneratedAt
			default:
				return err
			}
			t.UpdatedAt = resp.GeneratedAt
			if err := txTasks.Upsert(ctx, t); err != nil {
				return err
			}
			keep = append(keep, t.ID)
		}

		removed, err := txTasks.DeleteStale(ctx, date, keep)
		if err != nil {
			return err
		}
		resp.Removed = removed

		stored, err := txTasks.ListByDate(ctx, date)
		if err != nil {
			return err
		}
		resp.Tasks = derefTasks(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["removed"] = resp.Removed
	return resp, nil
}

func (s *scheduleService) Preview(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error) {
	req.DryRun = true
	return s.Generate(ctx, req)
}

func (s *scheduleService) ForDate(ctx context.Context, date time.Time) ([]*domain.ScheduledTask, error) {
	return s.tasks.ListByDate(ctx, domain.DateOnly(date))
}

func (s *scheduleService) Today(ctx context.Context) ([]*domain.ScheduledTask, error) {
	return s.ForDate(ctx, s.now())
}

// CompleteTask records completion, awards points and advances the goal
// step in one transaction. A second completion of the same task changes
// nothing.
func (s *scheduleService) CompleteTask(ctx context.Context, req contract.CompleteTaskRequest) (resp *contract.CompleteTaskResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{"task_id": req.TaskID}
		if resp != nil {
			fields["already_completed"] = resp.AlreadyCompleted
			fields["points"] = resp.PointsAwarded
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "complete-task",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	out := &contract.CompleteTaskResponse{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txProfile := repository.NewSQLiteUserProfileRepo(tx)
		txGoals := repository.NewSQLiteGoalRepo(tx)

		t, err := txTasks.GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		out.Task = t

		now := s.now().UTC()
		if !t.MarkCompleted(req.Proof, req.Attachments, now) {
			out.AlreadyCompleted = true
			profile, err := txProfile.Get(ctx)
			if err != nil {
				return err
			}
			out.Balance = profile.LeisurePoints
			return nil
		}
		if err := txTasks.MarkCompleted(ctx, t); err != nil {
			return err
		}

		balance, err := txProfile.AddPoints(ctx, domain.PointsPerCompletedTask)
		if err != nil {
			return err
		}
		out.PointsAwarded = domain.PointsPerCompletedTask
		out.Balance = balance

		if t.Kind != domain.TaskGoalStep || t.GoalID == "" || t.StepIndex == nil {
			return nil
		}
		g, err := txGoals.GetByID(ctx, t.GoalID)
		if err != nil {
			return err
		}
		if err := g.CompleteStep(*t.StepIndex, now); err != nil {
			return err
		}
		if err := txGoals.Update(ctx, g); err != nil {
			return err
		}
		out.GoalProgress = domain.Ptr(g.Progress)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *scheduleService) AddAdHoc(ctx context.Context, req contract.AdHocTaskRequest) (*domain.ScheduledTask, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput(fmt.Errorf("task name is required"))
	}
	start, err := domain.ParseClock(req.StartTime)
	if err != nil {
		return nil, invalidInput(err)
	}
	end, err := domain.ParseClock(req.EndTime)
	if err != nil {
		return nil, invalidInput(err)
	}
	if end <= start {
		return nil, invalidInput(fmt.Errorf("end %s must be after start %s", req.EndTime, req.StartTime))
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}
	now := s.now().UTC()
	t := &domain.ScheduledTask{
		ID:          uuid.New().String(),
		Date:        domain.DateOnly(date),
		Name:        name,
		StartTime:   domain.FormatClock(start),
		EndTime:     domain.FormatClock(end),
		DurationMin: end - start,
		Kind:        domain.TaskAdHoc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *scheduleService) DeleteTask(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// planWarnings flags stored goals whose labels the engine will not
// recognise. Such goals still run, using the whole day.
func planWarnings(goals []*domain.Goal) []string {
	var out []string
	for _, g := range goals {
		if g.PreferredTime != "" && !scheduler.IsKnownPreferredTime(g.PreferredTime) {
			out = append(out, fmt.Sprintf("goal %q has unknown preferred time %q; using the whole day", g.Description, g.PreferredTime))
		}
	}
	return out
}

// reservedTasks are stored tasks a regeneration must route around:
// anything completed, and every ad-hoc task.
func reservedTasks(stored []*domain.ScheduledTask) []domain.ScheduledTask {
	var out []domain.ScheduledTask
	for _, t := range stored {
		if t.Completed || t.Kind == domain.TaskAdHoc {
			out = append(out, *t)
		}
	}
	return out
}

func derefTasks(in []*domain.ScheduledTask) []domain.ScheduledTask {
	out := make([]domain.ScheduledTask, len(in))
	for i, t := range in {
		out[i] = *t
	}
	return out
}

// detachFromCompleted moves a goal-step task off any id that already holds a
// completed row. The engine never emits completed steps, so such a row belongs
// to a step that has since been replaced and must keep its own completion.
// Suffixes are tried in order, which keeps repeated generation stable.
func detachFromCompleted(ctx context.Context, tasks repository.TaskRepo, t *domain.ScheduledTask) error {
	base := t.ID
	for n := 2; ; n++ {
		existing, err := tasks.GetByID(ctx, t.ID)
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if !existing.Completed {
			return nil
		}
		t.ID = fmt.Sprintf("%s-%d", base, n)
	}
}
