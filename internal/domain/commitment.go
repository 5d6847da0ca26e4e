package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeeklyCommitment is a fixed recurring block (class, shift) the scheduler
// must route around. It is never moved.
type WeeklyCommitment struct {
	ID        string
	Name      string
	Weekday   Weekday
	StartTime string // HH:MM
	EndTime   string // HH:MM
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *WeeklyCommitment) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("commitment name is required")
	}
	if !c.Weekday.Valid() {
		return fmt.Errorf("commitment weekday %d is invalid", int(c.Weekday))
	}
	start, err := ParseClock(c.StartTime)
	if err != nil {
		return fmt.Errorf("commitment start: %w", err)
	}
	end, err := ParseClock(c.EndTime)
	if err != nil {
		return fmt.Errorf("commitment end: %w", err)
	}
	if end <= start {
		return fmt.Errorf("commitment end %s must be after start %s", c.EndTime, c.StartTime)
	}
	return nil
}

// WeeklyCommitments maps each weekday to its commitments in insertion order.
type WeeklyCommitments map[Weekday][]WeeklyCommitment

// GroupCommitments buckets a flat list by weekday, preserving order.
func GroupCommitments(list []*WeeklyCommitment) WeeklyCommitments {
	out := make(WeeklyCommitments, len(AllWeekdays))
	for _, c := range list {
		if c == nil {
			continue
		}
		out[c.Weekday] = append(out[c.Weekday], *c)
	}
	return out
}
