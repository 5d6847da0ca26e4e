package domain

import "time"

// PointsPerCompletedTask is the leisure reward for finishing any daily task.
const PointsPerCompletedTask = 0.25

// UserProfile is the single local user's wallet and preferences.
type UserProfile struct {
	ID                    string
	LeisurePoints         float64
	AutoScheduleReminders bool
	Initialized           bool
	UpdatedAt             time.Time
}

// DefaultProfile returns the profile written on first launch.
func DefaultProfile() *UserProfile {
	return &UserProfile{
		ID:                    "default",
		LeisurePoints:         0,
		AutoScheduleReminders: true,
	}
}
