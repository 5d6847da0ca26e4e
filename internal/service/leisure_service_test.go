package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/alexanderramin/todoer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLeisureService(r *repos, observers ...UseCaseObserver) LeisureService {
	return NewLeisureService(r.items, r.purchases, r.profile, r.uow, scheduler.FixedClock{T: fixedNow}, observers...)
}

func TestLeisureService_SeedOnlyWhenEmpty(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newTestLeisureService(r)

	n, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a non-empty shop is left alone")

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 8)
	assert.Equal(t, "30min Gaming", items[0].Name, "items are listed cheapest first")
}

func TestLeisureService_Redeem(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	svc := newTestLeisureService(r, obs)

	item := testutil.NewTestLeisureItem("Movie Night", 10)
	require.NoError(t, r.items.Create(ctx, item))
	_, err := r.profile.AddPoints(ctx, 12.5)
	require.NoError(t, err)

	at := time.Date(2025, 6, 20, 19, 0, 0, 0, time.UTC)
	resp, err := svc.Redeem(ctx, contract.RedeemRequest{ItemID: item.ID, ScheduledAt: at})
	require.NoError(t, err)
	assert.Equal(t, 2.5, resp.Balance)
	assert.Equal(t, "Movie Night", resp.Purchase.ItemName)
	assert.Equal(t, 10.0, resp.Purchase.Cost)
	assert.Equal(t, domain.PurchaseScheduled, resp.Purchase.Status)
	assert.True(t, at.Equal(resp.Purchase.ScheduledAt))
	assert.True(t, fixedNow.Equal(resp.Purchase.PurchasedAt))

	balance, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2.5, balance)

	purchases, err := svc.Purchases(ctx)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
	assert.Equal(t, []string{"redeem-leisure"}, obs.names())
}

func TestLeisureService_Redeem_InsufficientPoints(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newTestLeisureService(r)

	item := testutil.NewTestLeisureItem("Rest Day", 20)
	require.NoError(t, r.items.Create(ctx, item))
	_, err := r.profile.AddPoints(ctx, 5)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, contract.RedeemRequest{ItemID: item.ID, ScheduledAt: time.Now()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientPoints))

	balance, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance, "balance untouched")

	purchases, err := svc.Purchases(ctx)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestLeisureService_Redeem_Validation(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newTestLeisureService(r)

	_, err := svc.Redeem(ctx, contract.RedeemRequest{ItemID: "x"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = svc.Redeem(ctx, contract.RedeemRequest{ItemID: "missing", ScheduledAt: time.Now()})
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestLeisureService_PurchaseLifecycle(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newTestLeisureService(r)

	item := testutil.NewTestLeisureItem("Hobby Time", 8)
	require.NoError(t, r.items.Create(ctx, item))
	_, err := r.profile.AddPoints(ctx, 8)
	require.NoError(t, err)

	resp, err := svc.Redeem(ctx, contract.RedeemRequest{ItemID: item.ID, ScheduledAt: time.Date(2025, 6, 21, 10, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Zero(t, resp.Balance)

	later := time.Date(2025, 6, 22, 15, 0, 0, 0, time.UTC)
	moved, err := svc.Reschedule(ctx, resp.Purchase.ID, later)
	require.NoError(t, err)
	assert.True(t, later.Equal(moved.ScheduledAt))

	used, err := svc.MarkUsed(ctx, resp.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseUsed, used.Status)

	stored, err := r.purchases.GetByID(ctx, resp.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseUsed, stored.Status)
	assert.True(t, later.Equal(stored.ScheduledAt))

	require.NoError(t, svc.DeletePurchase(ctx, resp.Purchase.ID))
	_, err = svc.Reschedule(ctx, resp.Purchase.ID, later)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestLeisureService_AddAndDeleteItem(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newTestLeisureService(r)

	err := svc.AddItem(ctx, &domain.LeisureItem{Name: "Free", Cost: 0})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	item := &domain.LeisureItem{Name: " Board games ", Cost: 4, Icon: "🎲"}
	require.NoError(t, svc.AddItem(ctx, item))
	assert.Equal(t, "Board games", item.Name)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, svc.DeleteItem(ctx, item.ID))
	items, err = svc.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
