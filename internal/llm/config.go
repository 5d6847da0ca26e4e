package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskBreakdown TaskType = "breakdown"
	TaskIdentity  TaskType = "identity"
	TaskHabitTips TaskType = "habit_tips"
	TaskPing      TaskType = "ping"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	Token      string
	TimeoutMs  int
	MaxRetries int
	TopP       float64
	Tasks      map[TaskType]TaskConfig
}

const (
	DefaultEndpoint = "https://models.github.ai/inference"
	DefaultModel    = "openai/gpt-4o-mini"
)

// DefaultConfig targets GitHub Models. It has no token, so Configured
// reports false until one is supplied.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		LogCalls:   false,
		Endpoint:   DefaultEndpoint,
		Model:      DefaultModel,
		TimeoutMs:  30000,
		MaxRetries: 1,
		TopP:       0.9,
		Tasks: map[TaskType]TaskConfig{
			TaskBreakdown: {Temperature: 0.7, MaxTokens: 2000, TimeoutMs: 45000},
			TaskIdentity:  {Temperature: 0.8, MaxTokens: 50, TimeoutMs: 15000},
			TaskHabitTips: {Temperature: 0.7, MaxTokens: 500, TimeoutMs: 20000},
			TaskPing:      {MaxTokens: 10, TimeoutMs: 10000},
		},
	}
}

// Configured reports whether calls can be made at all.
func (c LLMConfig) Configured() bool {
	return c.Enabled && c.Token != "" && c.Endpoint != "" && c.Model != ""
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// WithTimeout returns a copy whose global and per-task timeouts are all
// timeoutMs. A non-positive value leaves c unchanged.
func (c LLMConfig) WithTimeout(timeoutMs int) LLMConfig {
	if timeoutMs <= 0 {
		return c
	}
	tasks := make(map[TaskType]TaskConfig, len(c.Tasks))
	for k, tc := range c.Tasks {
		tc.TimeoutMs = timeoutMs
		tasks[k] = tc
	}
	c.Tasks = tasks
	c.TimeoutMs = timeoutMs
	return c
}
