package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/todoer/internal/contract"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/importer"
)

var (
	// ErrInvalidInput wraps validation failures on user-supplied data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientPoints is returned when a redemption costs more than
	// the current balance.
	ErrInsufficientPoints = errors.New("insufficient leisure points")
)

type GoalService interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
	CompleteStep(ctx context.Context, goalID string, stepIndex int) (*domain.Goal, error)
}

type CommitmentService interface {
	Add(ctx context.Context, c *domain.WeeklyCommitment) error
	GetByID(ctx context.Context, id string) (*domain.WeeklyCommitment, error)
	List(ctx context.Context) ([]*domain.WeeklyCommitment, error)
	ListByWeekday(ctx context.Context, day domain.Weekday) ([]*domain.WeeklyCommitment, error)
	Update(ctx context.Context, c *domain.WeeklyCommitment) error
	Remove(ctx context.Context, id string) error
}

type ScheduleService interface {
	// Generate runs the engine for req.Date and, unless req.DryRun is set,
	// stores the result as that day's schedule.
	Generate(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error)
	// Preview is Generate with DryRun forced on.
	Preview(ctx context.Context, req contract.ScheduleRequest) (*contract.ScheduleResponse, error)
	ForDate(ctx context.Context, date time.Time) ([]*domain.ScheduledTask, error)
	Today(ctx context.Context) ([]*domain.ScheduledTask, error)
	CompleteTask(ctx context.Context, req contract.CompleteTaskRequest) (*contract.CompleteTaskResponse, error)
	AddAdHoc(ctx context.Context, req contract.AdHocTaskRequest) (*domain.ScheduledTask, error)
	DeleteTask(ctx context.Context, id string) error
}

type LeisureService interface {
	Items(ctx context.Context) ([]*domain.LeisureItem, error)
	AddItem(ctx context.Context, item *domain.LeisureItem) error
	DeleteItem(ctx context.Context, id string) error
	// Seed writes the default catalogue when no items exist and returns how
	// many were written.
	Seed(ctx context.Context) (int, error)
	Balance(ctx context.Context) (float64, error)
	Redeem(ctx context.Context, req contract.RedeemRequest) (*contract.RedeemResponse, error)
	Purchases(ctx context.Context) ([]*domain.Purchase, error)
	Reschedule(ctx context.Context, purchaseID string, at time.Time) (*domain.Purchase, error)
	MarkUsed(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	DeletePurchase(ctx context.Context, purchaseID string) error
}

type EventService interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

type ReminderService interface {
	// RefreshToday replaces the day's task reminders with fresh ones for
	// every incomplete task that has not started yet.
	RefreshToday(ctx context.Context, date time.Time) ([]*domain.TaskReminder, error)
	List(ctx context.Context) ([]*domain.TaskReminder, error)
	CancelAll(ctx context.Context) (int, error)
}

type InitService interface {
	Initialize(ctx context.Context) (*contract.InitResponse, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	GoalsCreated       int
	GoalsUpdated       int
	CommitmentsWritten int
	// CommitmentsRemoved counts stored commitments replaced on the weekdays
	// the file declares.
	CommitmentsRemoved int
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportPlan(ctx context.Context, file *importer.PlanFile) (*ImportResult, error)
}
