package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importNow = time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)

const samplePlanYAML = `
goals:
  - id: spanish
    description: Learn Spanish
    sector: Language
    preferred_time: Morning
    end_date: 2025-12-31
    times_per_week: 3
    daily_time_allocation: 45
    steps:
      - text: Duolingo lesson
        duration_min: 15
        habit_type: process
      - text: Read a short story
        duration_min: 30
        completed: true
  - description: Run a 10k
    end_date: 2025-09-01
    steps:
      - text: Easy run
        duration_min: 40
commitments:
  wednesday:
    - name: Lab
      start: "14:00"
      end: "16:00"
  Mon:
    - name: Standup
      start: "9:00"
      end: "09:30"
`

func TestParseYAML_AndConvert(t *testing.T) {
	file, err := ParseYAML([]byte(samplePlanYAML))
	require.NoError(t, err)
	require.Empty(t, ValidatePlanFile(file))

	plan, err := Convert(file, importNow)
	require.NoError(t, err)
	require.Len(t, plan.Goals, 2)

	spanish := plan.Goals[0]
	assert.Equal(t, "spanish", spanish.ID)
	assert.Equal(t, domain.TimeMorning, spanish.PreferredTime, "labels are normalised")
	assert.Equal(t, 3, spanish.TimesPerWeek)
	assert.Equal(t, 45, *spanish.DailyTimeAllocation)
	assert.Equal(t, 50, spanish.Progress)
	assert.Equal(t, domain.HabitProcess, spanish.Steps[0].HabitType)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), spanish.EndDate)

	run := plan.Goals[1]
	assert.NotEmpty(t, run.ID, "missing ids are generated")
	assert.Equal(t, domain.TimeAnytime, run.PreferredTime)
	assert.Equal(t, 7, run.TimesPerWeek)
	assert.Nil(t, run.DailyTimeAllocation)

	require.Len(t, plan.Commitments, 2)
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Wednesday}, plan.Weekdays)
	assert.Equal(t, "Standup", plan.Commitments[0].Name)
	assert.Equal(t, "09:00", plan.Commitments[0].StartTime, "times are zero-padded")
	assert.Equal(t, domain.Wednesday, plan.Commitments[1].Weekday)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"goals": [{"description": "Meditate", "end_date": "2025-10-01",
			"steps": [{"text": "Breathe", "duration_min": 10}]}],
		"commitments": {"friday": [{"name": "Class", "start": "10:00", "end": "12:00"}]}
	}`)
	file, err := ParseJSON(data)
	require.NoError(t, err)
	require.Empty(t, ValidatePlanFile(file))

	plan, err := Convert(file, importNow)
	require.NoError(t, err)
	assert.Len(t, plan.Goals, 1)
	assert.Equal(t, domain.Friday, plan.Commitments[0].Weekday)
}

func TestParseYAML_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("goals: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing plan file")
}

func TestLoadPlanFile_PicksDecoderByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"goals": []}`), 0o644))
	file, err := LoadPlanFile(jsonPath)
	require.NoError(t, err)
	assert.Empty(t, file.Goals)

	yamlPath := filepath.Join(dir, "plan.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(samplePlanYAML), 0o644))
	file, err = LoadPlanFile(yamlPath)
	require.NoError(t, err)
	assert.Len(t, file.Goals, 2)

	_, err = LoadPlanFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestConvert_EmptyWeekdayIsReported(t *testing.T) {
	file := &PlanFile{Commitments: map[string][]CommitmentImport{"sunday": nil}}
	plan, err := Convert(file, importNow)
	require.NoError(t, err)
	assert.Equal(t, []domain.Weekday{domain.Sunday}, plan.Weekdays)
	assert.Empty(t, plan.Commitments)
}
