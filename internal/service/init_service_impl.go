package service

import (
	"context"
	"time"

	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/repository"
)

type initService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewInitService(uow db.UnitOfWork, observers ...UseCaseObserver) InitService {
	return &initService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Initialize prepares the profile and seeds the leisure shop on first run.
// Later calls report AlreadyInitialized and write nothing.
func (s *initService) Initialize(ctx context.Context) (resp *contract.InitResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		fields := map[string]any{}
		if resp != nil {
			fields["already_initialized"] = resp.AlreadyInitialized
			fields["seeded_items"] = resp.SeededItems
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "initialize",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	out := &contract.InitResponse{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProfile := repository.NewSQLiteUserProfileRepo(tx)
		profile, err := txProfile.Get(ctx)
		if err != nil {
			return err
		}
		if profile.Initialized {
			out.AlreadyInitialized = true
			return nil
		}

		n, err := seedLeisureItems(ctx, repository.NewSQLiteLeisureItemRepo(tx), startedAt)
		if err != nil {
			return err
		}
		out.SeededItems = n

		profile.Initialized = true
		profile.UpdatedAt = startedAt
		return txProfile.Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
