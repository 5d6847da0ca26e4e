package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/google/uuid"
)

type commitmentService struct {
	commitments repository.CommitmentRepo
	clock       scheduler.Clock
}

func NewCommitmentService(commitments repository.CommitmentRepo, clock scheduler.Clock) CommitmentService {
	return &commitmentService{commitments: commitments, clock: clockOrSystem(clock)}
}

func (s *commitmentService) Add(ctx context.Context, c *domain.WeeklyCommitment) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if err := normalizeCommitment(c); err != nil {
		return err
	}
	now := s.clock.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.commitments.Create(ctx, c)
}

func (s *commitmentService) GetByID(ctx context.Context, id string) (*domain.WeeklyCommitment, error) {
	return s.commitments.GetByID(ctx, id)
}

func (s *commitmentService) List(ctx context.Context) ([]*domain.WeeklyCommitment, error) {
	return s.commitments.List(ctx)
}

func (s *commitmentService) ListByWeekday(ctx context.Context, day domain.Weekday) ([]*domain.WeeklyCommitment, error) {
	return s.commitments.ListByWeekday(ctx, day)
}

func (s *commitmentService) Update(ctx context.Context, c *domain.WeeklyCommitment) error {
	if err := normalizeCommitment(c); err != nil {
		return err
	}
	c.UpdatedAt = s.clock.Now().UTC()
	return s.commitments.Update(ctx, c)
}

func (s *commitmentService) Remove(ctx context.Context, id string) error {
	return s.commitments.Delete(ctx, id)
}

func normalizeCommitment(c *domain.WeeklyCommitment) error {
	c.Name = strings.TrimSpace(c.Name)
	start, err := normalizeClock(c.StartTime)
	if err != nil {
		return invalidInput(fmt.Errorf("start: %w", err))
	}
	end, err := normalizeClock(c.EndTime)
	if err != nil {
		return invalidInput(fmt.Errorf("end: %w", err))
	}
	c.StartTime, c.EndTime = start, end
	if err := c.Validate(); err != nil {
		return invalidInput(err)
	}
	return nil
}
