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

type leisureService struct {
	items     repository.LeisureItemRepo
	purchases repository.PurchaseRepo
	profile   repository.UserProfileRepo
	uow       db.UnitOfWork
	clock     scheduler.Clock
	observer  UseCaseObserver
}

func NewLeisureService(
	items repository.LeisureItemRepo,
	purchases repository.PurchaseRepo,
	profile repository.UserProfileRepo,
	uow db.UnitOfWork,
	clock scheduler.Clock,
	observers ...UseCaseObserver,
) LeisureService {
	return &leisureService{
		items:     items,
		purchases: purchases,
		profile:   profile,
		uow:       uow,
		clock:     clockOrSystem(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *leisureService) Items(ctx context.Context) ([]*domain.LeisureItem, error) {
	return s.items.List(ctx)
}

func (s *leisureService) AddItem(ctx context.Context, item *domain.LeisureItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := item.Validate(); err != nil {
		return invalidInput(err)
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = s.clock.Now().UTC()
	return s.items.Create(ctx, item)
}

func (s *leisureService) DeleteItem(ctx context.Context, id string) error {
	return s.items.Delete(ctx, id)
}

func (s *leisureService) Seed(ctx context.Context) (int, error) {
	var n int
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		n, err = seedLeisureItems(ctx, repository.NewSQLiteLeisureItemRepo(tx), s.clock.Now().UTC())
		return err
	})
	return n, err
}

func (s *leisureService) Balance(ctx context.Context) (float64, error) {
	p, err := s.profile.Get(ctx)
	if err != nil {
		return 0, err
	}
	return p.LeisurePoints, nil
}

// Redeem spends points on an item and books it for req.ScheduledAt. The
// balance check and the deduction run in the same transaction.
func (s *leisureService) Redeem(ctx context.Context, req contract.RedeemRequest) (resp *contract.RedeemResponse, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "redeem-leisure",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"item_id": req.ItemID},
		})
	}()

	if req.ScheduledAt.IsZero() {
		return nil, invalidInput(fmt.Errorf("a scheduled time is required"))
	}

	out := &contract.RedeemResponse{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteLeisureItemRepo(tx)
		txPurchases := repository.NewSQLitePurchaseRepo(tx)
		txProfile := repository.NewSQLiteUserProfileRepo(tx)

		item, err := txItems.GetByID(ctx, req.ItemID)
		if err != nil {
			return err
		}
		profile, err := txProfile.Get(ctx)
		if err != nil {
			return err
		}
		if profile.LeisurePoints < item.Cost {
			return fmt.Errorf("%w: %q costs %.2f, balance is %.2f", ErrInsufficientPoints, item.Name, item.Cost, profile.LeisurePoints)
		}

		balance, err := txProfile.AddPoints(ctx, -item.Cost)
		if err != nil {
			return err
		}

		p := &domain.Purchase{
			ID:          uuid.New().String(),
			ItemID:      item.ID,
			ItemName:    item.Name,
			ItemIcon:    item.Icon,
			Cost:        item.Cost,
			ScheduledAt: req.ScheduledAt.UTC(),
			PurchasedAt: s.clock.Now().UTC(),
			Status:      domain.PurchaseScheduled,
		}
		if err := txPurchases.Create(ctx, p); err != nil {
			return err
		}
		out.Purchase = p
		out.Balance = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *leisureService) Purchases(ctx context.Context) ([]*domain.Purchase, error) {
	return s.purchases.List(ctx)
}

func (s *leisureService) Reschedule(ctx context.Context, purchaseID string, at time.Time) (*domain.Purchase, error) {
	if at.IsZero() {
		return nil, invalidInput(fmt.Errorf("a scheduled time is required"))
	}
	return s.updatePurchase(ctx, purchaseID, func(p *domain.Purchase) {
		p.ScheduledAt = at.UTC()
	})
}

func (s *leisureService) MarkUsed(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	return s.updatePurchase(ctx, purchaseID, func(p *domain.Purchase) {
		p.Status = domain.PurchaseUsed
	})
}

func (s *leisureService) DeletePurchase(ctx context.Context, purchaseID string) error {
	return s.purchases.Delete(ctx, purchaseID)
}

func (s *leisureService) updatePurchase(ctx context.Context, id string, apply func(*domain.Purchase)) (*domain.Purchase, error) {
	var out *domain.Purchase
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPurchases := repository.NewSQLitePurchaseRepo(tx)
		p, err := txPurchases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		apply(p)
		if err := txPurchases.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
