package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/importer"
	"github.com/alexanderramin/todoer/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	file, err := importer.LoadPlanFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	return s.ImportPlan(ctx, file)
}

// ImportPlan writes the plan in one transaction. Goals are matched to
// stored goals by id, then by description, and replaced in place.
// Commitments replace the stored ones on each weekday the plan declares.
func (s *importService) ImportPlan(ctx context.Context, file *importer.PlanFile) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{}
		if result != nil {
			fields["goals_created"] = result.GoalsCreated
			fields["goals_updated"] = result.GoalsUpdated
			fields["commitments"] = result.CommitmentsWritten
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-plan",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidatePlanFile(file); len(errs) > 0 {
		return nil, invalidInput(errors.Join(errs...))
	}
	plan, err := importer.Convert(file, startedAt)
	if err != nil {
		return nil, invalidInput(err)
	}

	out := &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txGoals := repository.NewSQLiteGoalRepo(tx)
		txCommitments := repository.NewSQLiteCommitmentRepo(tx)

		stored, err := txGoals.List(ctx)
		if err != nil {
			return err
		}
		byID := make(map[string]*domain.Goal, len(stored))
		byDesc := make(map[string]*domain.Goal, len(stored))
		for _, g := range stored {
			byID[g.ID] = g
			byDesc[g.Description] = g
		}

		for _, g := range plan.Goals {
			existing := byID[g.ID]
			if existing == nil {
				existing = byDesc[g.Description]
			}
			if existing == nil {
				if err := txGoals.Create(ctx, g); err != nil {
					return err
				}
				out.GoalsCreated++
				continue
			}
			g.ID = existing.ID
			g.CreatedAt = existing.CreatedAt
			if err := txGoals.Update(ctx, g); err != nil {
				return err
			}
			out.GoalsUpdated++
		}

		for _, day := range plan.Weekdays {
			current, err := txCommitments.ListByWeekday(ctx, day)
			if err != nil {
				return err
			}
			for _, c := range current {
				if err := txCommitments.Delete(ctx, c.ID); err != nil {
					return err
				}
				out.CommitmentsRemoved++
			}
		}
		for _, c := range plan.Commitments {
			if err := txCommitments.Create(ctx, c); err != nil {
				return err
			}
			out.CommitmentsWritten++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
