package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
	Attempts  int
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available sends a tiny completion and reports whether it succeeded.
	Available(ctx context.Context) bool
}

// chatClient implements LLMClient against an OpenAI-compatible
// /chat/completions endpoint such as GitHub Models.
type chatClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
}

// NewChatClient creates an LLMClient for an OpenAI-compatible endpoint.
func NewChatClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &chatClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the JSON body sent to POST /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// statusError carries a non-200 reply so the retry loop can tell
// transient failures from rejected requests.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("endpoint returned status %d: %s", e.Code, e.Body)
}

func (e *statusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

func (c *chatClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	if timeoutMs := c.cfg.TaskTimeout(req.Task); timeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
		defer cancel()
	}

	body := chatRequest{
		Model:       c.cfg.Model,
		Temperature: temp,
		TopP:        c.cfg.TopP,
		MaxTokens:   maxTok,
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.UserPrompt})

	var lastErr error
	attempts := 0
	maxAttempts := 1 + max(c.cfg.MaxRetries, 0)

	for attempts < maxAttempts {
		attempts++
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(LLMCallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Attempts:  attempts,
				Success:   true,
			})
			return &GenerateResponse{
				Text:      resp.text,
				Model:     resp.model,
				LatencyMs: latency,
				Attempts:  attempts,
			}, nil
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	final := classify(ctx, lastErr, attempts)
	c.observer.OnCallComplete(LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   false,
		ErrorCode: errorCode(final),
	})
	return nil, final
}

func classify(ctx context.Context, err error, attempts int) error {
	var se *statusError
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.Is(err, ErrInvalidOutput):
		return err
	case errors.As(err, &se) && !se.retryable():
		return fmt.Errorf("%w: %v", ErrRejected, err)
	case attempts > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

type completion struct {
	text  string
	model string
}

func (c *chatClient) doRequest(ctx context.Context, body chatRequest) (*completion, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{Code: httpResp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var resp chatResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrInvalidOutput, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response has no choices", ErrInvalidOutput)
	}

	model := resp.Model
	if model == "" {
		model = body.Model
	}
	return &completion{text: resp.Choices[0].Message.Content, model: model}, nil
}

func (c *chatClient) Available(ctx context.Context) bool {
	_, err := c.Generate(ctx, GenerateRequest{
		Task:       TaskPing,
		UserPrompt: `Say "connected" if you can read this.`,
	})
	return err == nil
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	if errors.Is(err, ErrInvalidOutput) {
		return false
	}
	return true
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "NOT_CONFIGURED"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}
