package intelligence

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/llm"
)

const (
	defaultStepMinutes = 30
	minStepMinutes     = 5
	maxStepMinutes     = 120
)

// breakdownResponse is the JSON the model is asked to return.
type breakdownResponse struct {
	Steps []struct {
		Text              string  `json:"text"`
		HabitType         string  `json:"habitType"`
		CueStackingIdea   string  `json:"cueStackingIdea"`
		EstimatedDuration float64 `json:"estimatedDuration"`
	} `json:"steps"`
	HabitFormationTips []string `json:"habitFormationTips"`
	IdentityStatement  string   `json:"identityStatement"`
}

type breakdownService struct {
	client llm.LLMClient
	logger *slog.Logger
	now    func() time.Time
}

// NewBreakdownService creates a BreakdownService backed by an LLM client.
// A nil logger discards fallback warnings.
func NewBreakdownService(client llm.LLMClient, logger *slog.Logger) BreakdownService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &breakdownService{client: client, logger: logger, now: time.Now}
}

func (s *breakdownService) Breakdown(ctx context.Context, req BreakdownRequest) (*Breakdown, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("goal description is required")
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskBreakdown,
		SystemPrompt: breakdownSystemPrompt,
		UserPrompt:   buildBreakdownPrompt(req, s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("llm goal breakdown failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[breakdownResponse](resp.Text, validateBreakdownResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract goal breakdown: %w", err)
	}

	out := &Breakdown{
		HabitTips:         nonEmpty(parsed.HabitFormationTips),
		IdentityStatement: strings.TrimSpace(parsed.IdentityStatement),
	}
	for _, st := range parsed.Steps {
		out.Steps = append(out.Steps, domain.Step{
			Text:            strings.TrimSpace(st.Text),
			DurationMin:     stepMinutes(st.EstimatedDuration),
			HabitType:       habitType(st.HabitType),
			CueStackingIdea: strings.TrimSpace(st.CueStackingIdea),
		})
	}
	return out, nil
}

func (s *breakdownService) IdentityStatement(ctx context.Context, goal, sector string) string {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskIdentity,
		SystemPrompt: identitySystemPrompt,
		UserPrompt:   buildIdentityPrompt(goal, sector),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "identity statement fallback", slog.String("error", err.Error()))
		return fallbackIdentityStatement
	}
	text := strings.Trim(strings.TrimSpace(resp.Text), `"'`)
	if text == "" {
		return fallbackIdentityStatement
	}
	return text
}

func (s *breakdownService) HabitTips(ctx context.Context, steps []string) []string {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskHabitTips,
		SystemPrompt: habitTipsSystemPrompt,
		UserPrompt:   buildHabitTipsPrompt(steps),
	})
	if err == nil {
		var tips []string
		tips, err = llm.ExtractJSON[[]string](resp.Text, func(t []string) error {
			if len(nonEmpty(t)) == 0 {
				return fmt.Errorf("no tips")
			}
			return nil
		})
		if err == nil {
			return nonEmpty(tips)
		}
	}
	s.logger.WarnContext(ctx, "habit tips fallback", slog.String("error", err.Error()))
	return FallbackHabitTips()
}

func (s *breakdownService) Ping(ctx context.Context) error {
	_, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPing,
		SystemPrompt: pingSystemPrompt,
		UserPrompt:   `Say "connected" if you can read this.`,
	})
	return err
}

func validateBreakdownResponse(r breakdownResponse) error {
	if len(r.Steps) == 0 {
		return fmt.Errorf("at least one step is required")
	}
	for i, st := range r.Steps {
		if strings.TrimSpace(st.Text) == "" {
			return fmt.Errorf("step %d: text is required", i)
		}
	}
	return nil
}

// stepMinutes rounds the model's estimate and clamps it to a placeable
// range. Missing or non-positive estimates get the default.
func stepMinutes(estimate float64) int {
	if estimate <= 0 {
		return defaultStepMinutes
	}
	return min(max(int(estimate+0.5), minStepMinutes), maxStepMinutes)
}

func habitType(s string) domain.HabitType {
	ht := domain.HabitType(strings.ToLower(strings.TrimSpace(s)))
	if domain.ValidHabitTypes[ht] {
		return ht
	}
	return ""
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
