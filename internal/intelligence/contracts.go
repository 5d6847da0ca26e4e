package intelligence

import (
	"context"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
)

// BreakdownRequest describes a goal to be split into daily habit steps.
type BreakdownRequest struct {
	Description   string
	Sector        string
	PreferredTime domain.PreferredTime
	EndDate       time.Time
	TimesPerWeek  int
}

// Breakdown is the validated result of a goal breakdown. Steps are never
// completed and always carry a usable duration.
type Breakdown struct {
	Steps             []domain.Step
	HabitTips         []string
	IdentityStatement string
}

// BreakdownService turns goals into atomic habit steps using an LLM.
type BreakdownService interface {
	// Breakdown asks the model for 5-8 progressive steps. It fails when the
	// model is unreachable or its output has no usable steps.
	Breakdown(ctx context.Context, req BreakdownRequest) (*Breakdown, error)

	// IdentityStatement returns a one-line "I am ..." statement. It falls
	// back to a fixed statement on any failure.
	IdentityStatement(ctx context.Context, goal, sector string) string

	// HabitTips returns 3-5 optimisation tips for the given steps. It falls
	// back to a fixed list on any failure.
	HabitTips(ctx context.Context, steps []string) []string

	// Ping sends a tiny completion to check the credentials and endpoint.
	Ping(ctx context.Context) error
}
