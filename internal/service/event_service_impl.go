package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/google/uuid"
)

const defaultEventPriority = 3

type eventService struct {
	events repository.EventRepo
	clock  scheduler.Clock
}

func NewEventService(events repository.EventRepo, clock scheduler.Clock) EventService {
	return &eventService{events: events, clock: clockOrSystem(clock)}
}

func (s *eventService) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Priority == 0 {
		e.Priority = defaultEventPriority
	}
	e.Title = strings.TrimSpace(e.Title)
	if err := e.Validate(); err != nil {
		return invalidInput(err)
	}
	now := s.clock.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.events.Create(ctx, e)
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) Update(ctx context.Context, e *domain.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	if err := e.Validate(); err != nil {
		return invalidInput(err)
	}
	e.UpdatedAt = s.clock.Now().UTC()
	return s.events.Update(ctx, e)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}
