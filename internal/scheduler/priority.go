package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

const (
	basePriority       = 100.0
	bonusDueThisWeek   = 30.0
	bonusDueThisMonth  = 15.0
	stepPositionWeight = 20.0
	goalProgressWeight = 15.0
	minPriority        = 0.0
	maxPriority        = 100.0
	hoursPerDay        = 24.0
)

// CalculatePriority scores a goal step for display ordering. It never
// influences placement.
func CalculatePriority(g *domain.Goal, stepIndex int, now time.Time) float64 {
	daysLeft := g.EndDate.Sub(now).Hours() / hoursPerDay

	score := basePriority
	switch {
	case daysLeft < 7:
		score += bonusDueThisWeek
	case daysLeft < 30:
		score += bonusDueThisMonth
	}

	if n := len(g.Steps); n > 0 {
		score -= float64(stepIndex) / float64(n) * stepPositionWeight
	}
	score -= float64(g.Progress) / 100 * goalProgressWeight

	return math.Max(minPriority, math.Min(maxPriority, score))
}
