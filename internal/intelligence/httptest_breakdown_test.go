package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/todoer/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBreakdown_WithHTTPTestServer runs the full path: httptest server,
// chat client, breakdown parsing.
func TestBreakdown_WithHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))

		var body struct {
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]string{
					"role":    "assistant",
					"content": `{"steps":[{"text":"Write one sentence","habitType":"process","estimatedDuration":10}],"habitFormationTips":["Write after breakfast"],"identityStatement":"I am a writer."}`,
				},
			}},
		})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Endpoint = srv.URL
	cfg.Token = "gh-token"
	cfg.MaxRetries = 0

	svc := newTestService(llm.NewChatClient(cfg, llm.NoopObserver{}))
	got, err := svc.Breakdown(context.Background(), spanishRequest())
	require.NoError(t, err)
	require.Len(t, got.Steps, 1)
	assert.Equal(t, "Write one sentence", got.Steps[0].Text)
	assert.Equal(t, 10, got.Steps[0].DurationMin)
	assert.Equal(t, "I am a writer.", got.IdentityStatement)
}

func TestBreakdown_WithoutToken(t *testing.T) {
	svc := newTestService(llm.NewChatClient(llm.DefaultConfig(), nil))

	_, err := svc.Breakdown(context.Background(), spanishRequest())
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
	assert.Equal(t, fallbackIdentityStatement, svc.IdentityStatement(context.Background(), "x", "y"))
	assert.Equal(t, FallbackHabitTips(), svc.HabitTips(context.Background(), []string{"a"}))
}
