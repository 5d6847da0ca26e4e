package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduleRequest_TruncatesToDate(t *testing.T) {
	req := NewScheduleRequest(time.Date(2025, 6, 16, 18, 45, 12, 0, time.UTC))

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), req.Date)
	assert.False(t, req.DryRun)
	assert.Empty(t, req.Mode, "empty mode defers to configuration")
}
