package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	// Update rewrites the goal row and replaces its steps.
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type CommitmentRepo interface {
	Create(ctx context.Context, c *domain.WeeklyCommitment) error
	GetByID(ctx context.Context, id string) (*domain.WeeklyCommitment, error)
	List(ctx context.Context) ([]*domain.WeeklyCommitment, error)
	ListByWeekday(ctx context.Context, day domain.Weekday) ([]*domain.WeeklyCommitment, error)
	Update(ctx context.Context, c *domain.WeeklyCommitment) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	// Upsert inserts the task or refreshes its schedule fields. Completion,
	// proof and attachments of an existing row are left as stored.
	Upsert(ctx context.Context, t *domain.ScheduledTask) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledTask, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.ScheduledTask, error)
	ListByGoal(ctx context.Context, goalID string) ([]*domain.ScheduledTask, error)
	MarkCompleted(ctx context.Context, t *domain.ScheduledTask) error
	// DeleteStale removes incomplete engine-generated tasks on date whose ids
	// are not in keep. Ad-hoc and completed tasks are never removed.
	DeleteStale(ctx context.Context, date time.Time, keep []string) (int, error)
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	// List orders by priority descending, then date ascending.
	List(ctx context.Context) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}

type LeisureItemRepo interface {
	Create(ctx context.Context, item *domain.LeisureItem) error
	GetByID(ctx context.Context, id string) (*domain.LeisureItem, error)
	List(ctx context.Context) ([]*domain.LeisureItem, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type PurchaseRepo interface {
	Create(ctx context.Context, p *domain.Purchase) error
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)
	// List returns newest purchases first.
	List(ctx context.Context) ([]*domain.Purchase, error)
	Update(ctx context.Context, p *domain.Purchase) error
	Delete(ctx context.Context, id string) error
}

type UserProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
	// AddPoints adjusts the balance by delta and returns the new balance.
	AddPoints(ctx context.Context, delta float64) (float64, error)
}

type ReminderRepo interface {
	Create(ctx context.Context, r *domain.TaskReminder) error
	List(ctx context.Context) ([]*domain.TaskReminder, error)
	ListBySource(ctx context.Context, source domain.ReminderSource) ([]*domain.TaskReminder, error)
	DeleteBySource(ctx context.Context, source domain.ReminderSource) (int, error)
	DeleteAll(ctx context.Context) (int, error)
}
