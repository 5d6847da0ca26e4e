package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/todoer/internal/db"
	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/google/uuid"
)

// DefaultReminderLeadMin is how far ahead of a task the lead reminder fires.
const DefaultReminderLeadMin = 5

type reminderService struct {
	tasks     repository.TaskRepo
	reminders repository.ReminderRepo
	profile   repository.UserProfileRepo
	uow       db.UnitOfWork
	notifier  Notifier
	leadMin   int
	clock     scheduler.Clock
	observer  UseCaseObserver
}

func NewReminderService(
	tasks repository.TaskRepo,
	reminders repository.ReminderRepo,
	profile repository.UserProfileRepo,
	uow db.UnitOfWork,
	notifier Notifier,
	leadMin int,
	clock scheduler.Clock,
	observers ...UseCaseObserver,
) ReminderService {
	if notifier == nil {
		notifier = NewLogNotifier(nil)
	}
	if leadMin <= 0 {
		leadMin = DefaultReminderLeadMin
	}
	return &reminderService{
		tasks:     tasks,
		reminders: reminders,
		profile:   profile,
		uow:       uow,
		notifier:  notifier,
		leadMin:   leadMin,
		clock:     clockOrSystem(clock),
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *reminderService) RefreshToday(ctx context.Context, date time.Time) (out []*domain.TaskReminder, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "refresh-reminders",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"date": date.Format("2006-01-02"), "scheduled": len(out)},
		})
	}()

	profile, err := s.profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByDate(ctx, domain.DateOnly(date))
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if profile.AutoScheduleReminders {
		out = s.plan(tasks, now)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txReminders := repository.NewSQLiteReminderRepo(tx)
		if _, err := txReminders.DeleteBySource(ctx, domain.ReminderToDay); err != nil {
			return err
		}
		for _, r := range out {
			if err := txReminders.Create(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var notifyErrs []error
	for _, r := range out {
		if err := s.notifier.Notify(ctx, renderNotification(r, s.leadMin)); err != nil {
			notifyErrs = append(notifyErrs, fmt.Errorf("notifying %s: %w", r.TaskID, err))
		}
	}
	return out, errors.Join(notifyErrs...)
}

// plan builds a task-time reminder for every incomplete task that has not
// started, plus a lead reminder when that instant is still ahead of now.
func (s *reminderService) plan(tasks []*domain.ScheduledTask, now time.Time) []*domain.TaskReminder {
	var out []*domain.TaskReminder
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		start, err := t.StartInstant()
		if err != nil {
			continue
		}
		// Stored dates are calendar dates; place the clock time in now's zone.
		start = time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
		if !start.After(now) {
			continue
		}

		if lead := start.Add(-time.Duration(s.leadMin) * time.Minute); lead.After(now) {
			out = append(out, s.newReminder(t, lead, domain.ReminderLead, now))
		}
		out = append(out, s.newReminder(t, start, domain.ReminderTaskTime, now))
	}
	return out
}

func (s *reminderService) newReminder(t *domain.ScheduledTask, at time.Time, kind domain.ReminderKind, now time.Time) *domain.TaskReminder {
	id := uuid.New().String()
	return &domain.TaskReminder{
		ID:             id,
		TaskID:         t.ID,
		TaskName:       t.Name,
		DurationMin:    t.DurationMin,
		FireAt:         at,
		Kind:           kind,
		Source:         domain.ReminderToDay,
		NotificationID: id,
		CreatedAt:      now.UTC(),
	}
}

func (s *reminderService) List(ctx context.Context) ([]*domain.TaskReminder, error) {
	return s.reminders.List(ctx)
}

func (s *reminderService) CancelAll(ctx context.Context) (int, error) {
	return s.reminders.DeleteAll(ctx)
}
