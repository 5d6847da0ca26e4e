package llm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf)

	obs.OnCallComplete(LLMCallEvent{Task: TaskIdentity, Model: "m", Attempts: 1, LatencyMs: 12, Success: true})
	obs.OnCallComplete(LLMCallEvent{Task: TaskBreakdown, Model: "m", Attempts: 2, ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "llm_call task=identity model=m attempts=1 latency_ms=12 status=ok")
	assert.Contains(t, out, "task=breakdown")
	assert.Contains(t, out, "status=err:TIMEOUT")
}
