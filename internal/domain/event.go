package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Event is a dated item the user is tracking (exam, birthday, deadline).
type Event struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Priority    int // 1 (low) to 5 (high)
	Repetition  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Urgency string

const (
	UrgencyUrgent   Urgency = "urgent"
	UrgencySoon     Urgency = "soon"
	UrgencyUpcoming Urgency = "upcoming"
	UrgencyLater    Urgency = "later"
)

func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("event date is required")
	}
	if e.Priority < 1 || e.Priority > 5 {
		return fmt.Errorf("event priority must be between 1 and 5, got %d", e.Priority)
	}
	if e.Repetition < 0 {
		return fmt.Errorf("event repetition must not be negative, got %d", e.Repetition)
	}
	return nil
}

// DaysUntil rounds the time to the event up to whole days.
func (e *Event) DaysUntil(now time.Time) int {
	return int(math.Ceil(e.Date.Sub(now).Hours() / 24))
}

// UrgencyAt classifies how close the event is.
func (e *Event) UrgencyAt(now time.Time) Urgency {
	days := e.DaysUntil(now)
	switch {
	case days <= 3:
		return UrgencyUrgent
	case days <= 7:
		return UrgencySoon
	case days <= 14:
		return UrgencyUpcoming
	default:
		return UrgencyLater
	}
}
