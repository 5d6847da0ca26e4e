package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/repository"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/google/uuid"
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func clockOrSystem(c scheduler.Clock) scheduler.Clock {
	if c == nil {
		return scheduler.SystemClock{}
	}
	return c
}

// seedLeisureItems writes the default catalogue when the shop is empty.
func seedLeisureItems(ctx context.Context, items repository.LeisureItemRepo, now time.Time) (int, error) {
	n, err := items.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, def := range domain.DefaultLeisureItems() {
		item := def
		item.ID = uuid.New().String()
		item.CreatedAt = now
		if err := items.Create(ctx, &item); err != nil {
			return 0, fmt.Errorf("seeding %q: %w", item.Name, err)
		}
	}
	return len(domain.DefaultLeisureItems()), nil
}

// normalizeClock rewrites an "H:MM" value as zero-padded "HH:MM".
func normalizeClock(s string) (string, error) {
	m, err := domain.ParseClock(s)
	if err != nil {
		return "", err
	}
	return domain.FormatClock(m), nil
}

func normalizePreferredTime(p domain.PreferredTime) (domain.PreferredTime, error) {
	label := domain.PreferredTime(strings.ToLower(strings.TrimSpace(string(p))))
	if label == "" {
		return domain.TimeAnytime, nil
	}
	if !scheduler.IsKnownPreferredTime(label) {
		return "", fmt.Errorf("unknown preferred time %q", p)
	}
	return label, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
