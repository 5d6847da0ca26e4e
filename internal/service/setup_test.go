package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/alexanderramin/todoer/internal/testutil"
)

// monday is 2025-06-16; the clock starts before the day window opens.
var (
	monday   = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	fixedNow = time.Date(2025, 6, 16, 4, 0, 0, 0, time.UTC)
)

type repos struct {
	db          *sql.DB
	uow         db.UnitOfWork
	goals       *repository.SQLiteGoalRepo
	commitments *repository.SQLiteCommitmentRepo
	tasks       *repository.SQLiteTaskRepo
	events      *repository.SQLiteEventRepo
	items       *repository.SQLiteLeisureItemRepo
	purchases   *repository.SQLitePurchaseRepo
	profile     *repository.SQLiteUserProfileRepo
	reminders   *repository.SQLiteReminderRepo
}

func setupRepos(t *testing.T) *repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &repos{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		goals:       repository.NewSQLiteGoalRepo(database),
		commitments: repository.NewSQLiteCommitmentRepo(database),
		tasks:       repository.NewSQLiteTaskRepo(database),
		events:      repository.NewSQLiteEventRepo(database),
		items:       repository.NewSQLiteLeisureItemRepo(database),
		purchases:   repository.NewSQLitePurchaseRepo(database),
		profile:     repository.NewSQLiteUserProfileRepo(database),
		reminders:   repository.NewSQLiteReminderRepo(database),
	}
}

func newTestScheduleService(r *repos, now time.Time, observers ...UseCaseObserver) ScheduleService {
	engine := scheduler.NewEngine(scheduler.DefaultOptions(), scheduler.FixedClock{T: now})
	return NewScheduleService(r.goals, r.commitments, r.tasks, engine, r.uow, observers...)
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}
