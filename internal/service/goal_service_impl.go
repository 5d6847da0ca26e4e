package service

import (
	"context"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/google/uuid"
)

const defaultTimesPerWeek = 7

type goalService struct {
	goals    repository.GoalRepo
	uow      db.UnitOfWork
	clock    scheduler.Clock
	observer UseCaseObserver
}

func NewGoalService(goals repository.GoalRepo, uow db.UnitOfWork, clock scheduler.Clock, observers ...UseCaseObserver) GoalService {
	return &goalService{goals: goals, uow: uow, clock: clockOrSystem(clock), observer: useCaseObserverOrNoop(observers)}
}

func (s *goalService) Create(ctx context.Context, g *domain.Goal) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-goal",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"goal_id": g.ID, "steps": len(g.Steps)},
		})
	}()

	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.TimesPerWeek == 0 {
		g.TimesPerWeek = defaultTimesPerWeek
	}
	if err = s.prepare(g); err != nil {
		return err
	}
	now := s.clock.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.goals.Create(ctx, g)
}

func (s *goalService) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id)
}

func (s *goalService) List(ctx context.Context) ([]*domain.Goal, error) {
	return s.goals.List(ctx)
}

func (s *goalService) Update(ctx context.Context, g *domain.Goal) error {
	if err := s.prepare(g); err != nil {
		return err
	}
	g.UpdatedAt = s.clock.Now().UTC()
	return s.goals.Update(ctx, g)
}

func (s *goalService) Delete(ctx context.Context, id string) error {
	return s.goals.Delete(ctx, id)
}

// CompleteStep marks one step done outside of any scheduled task.
func (s *goalService) CompleteStep(ctx context.Context, goalID string, stepIndex int) (*domain.Goal, error) {
	var out *domain.Goal
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		g, err := txGoals.GetByID(ctx, goalID)
		if err != nil {
			return err
		}
		if err := g.CompleteStep(stepIndex, s.clock.Now().UTC()); err != nil {
			return invalidInput(err)
		}
		if err := txGoals.Update(ctx, g); err != nil {
			return err
		}
		out = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// prepare normalises labels, refreshes progress and validates.
func (s *goalService) prepare(g *domain.Goal) error {
	pref, err := normalizePreferredTime(g.PreferredTime)
	if err != nil {
		return invalidInput(err)
	}
	g.PreferredTime = pref
	g.EndDate = domain.DateOnly(g.EndDate)
	g.Progress = g.ComputeProgress()
	if err := g.Validate(); err != nil {
		return invalidInput(err)
	}
	return nil
}
