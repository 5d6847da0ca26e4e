package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.Token = "test-token"
	return cfg
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": "openai/gpt-4o-mini",
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
}

func TestChatClient_Generate_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultModel, req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		assert.InDelta(t, 0.9, req.TopP, 1e-9)
		assert.Equal(t, 2000, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, chatMessage{Role: "system", Content: "system prompt"}, req.Messages[0])
		assert.Equal(t, chatMessage{Role: "user", Content: "user prompt"}, req.Messages[1])

		writeCompletion(w, `{"steps":[]}`)
	}))
	defer srv.Close()

	client := NewChatClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskBreakdown,
		SystemPrompt: "system prompt",
		UserPrompt:   "user prompt",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"steps":[]}`, resp.Text)
	assert.Equal(t, "openai/gpt-4o-mini", resp.Model)
	assert.Equal(t, 1, resp.Attempts)
}

func TestChatClient_Generate_Overrides(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.InDelta(t, 0.1, req.Temperature, 1e-9)
		assert.Equal(t, 7, req.MaxTokens)
		require.Len(t, req.Messages, 1, "no system message when the prompt is empty")
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	temp, maxTok := 0.1, 7
	client := NewChatClient(testConfig(srv.URL+"/"), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskIdentity,
		UserPrompt:  "hi",
		Temperature: &temp,
		MaxTokens:   &maxTok,
	})
	require.NoError(t, err)
}

func TestChatClient_Generate_NotConfigured(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Token = ""

	_, err := NewChatClient(cfg, nil).Generate(context.Background(), GenerateRequest{Task: TaskPing, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	cfg.Token = "t"
	cfg.Enabled = false
	_, err = NewChatClient(cfg, nil).Generate(context.Background(), GenerateRequest{Task: TaskPing, UserPrompt: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskBreakdown: {Temperature: 0.7, MaxTokens: 100, TimeoutMs: 50},
	}

	_, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{
		Task:       TaskBreakdown,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestChatClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	_, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{
		Task:       TaskBreakdown,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestChatClient_Generate_RetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeCompletion(w, "second time lucky")
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	resp, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{
		Task:       TaskBreakdown,
		UserPrompt: "test",
	})
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", resp.Text)
	assert.Equal(t, 2, resp.Attempts)
	assert.Equal(t, int32(2), calls.Load())
}

func TestChatClient_Generate_RetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2

	_, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{
		Task:       TaskBreakdown,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(3), calls.Load())
}

func TestChatClient_Generate_RejectedNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3

	_, err := NewChatClient(cfg, NoopObserver{}).Generate(context.Background(), GenerateRequest{
		Task:       TaskBreakdown,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "401")
	assert.Equal(t, int32(1), calls.Load())
}

func TestChatClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewChatClient(testConfig(srv.URL), NoopObserver{}).Generate(context.Background(), GenerateRequest{
		Task:       TaskBreakdown,
		UserPrompt: "test",
	})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestChatClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 10, req.MaxTokens)
		writeCompletion(w, "connected")
	}))
	defer srv.Close()

	assert.True(t, NewChatClient(testConfig(srv.URL), nil).Available(context.Background()))

	cfg := testConfig("http://127.0.0.1:1")
	cfg.MaxRetries = 0
	assert.False(t, NewChatClient(cfg, nil).Available(context.Background()))
}

func TestChatClient_ObserverCalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "ok")
	}))
	defer srv.Close()

	var events []LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { events = append(events, e) }}

	_, err := NewChatClient(testConfig(srv.URL), obs).Generate(context.Background(), GenerateRequest{
		Task:       TaskHabitTips,
		UserPrompt: "test",
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, TaskHabitTips, events[0].Task)
	assert.Equal(t, DefaultModel, events[0].Model)
	assert.True(t, events[0].Success)
	assert.Equal(t, 1, events[0].Attempts)
}

func TestChatClient_ObserverErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var events []LLMCallEvent
	obs := &captureObserver{fn: func(e LLMCallEvent) { events = append(events, e) }}

	_, err := NewChatClient(testConfig(srv.URL), obs).Generate(context.Background(), GenerateRequest{
		Task:       TaskIdentity,
		UserPrompt: "test",
	})
	require.Error(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Equal(t, "REJECTED", events[0].ErrorCode)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }
