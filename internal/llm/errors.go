package llm

import "errors"

var (
	// ErrNotConfigured indicates there is no token, endpoint or model, or
	// the LLM has been disabled.
	ErrNotConfigured = errors.New("llm not configured")

	// ErrUnavailable indicates the inference endpoint is unreachable.
	ErrUnavailable = errors.New("llm endpoint unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRejected indicates the endpoint refused the request (bad token,
	// unknown model, malformed body). Such requests are not retried.
	ErrRejected = errors.New("llm request rejected")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
