package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PlanFile is the top-level structure of a plan import file. The same
// shape is accepted as YAML or JSON.
type PlanFile struct {
	Goals []GoalImport `yaml:"goals" json:"goals" validate:"dive"`
	// Commitments is keyed by weekday name ("monday", "Tue", ...).
	Commitments map[string][]CommitmentImport `yaml:"commitments" json:"commitments" validate:"dive,dive"`
}

// GoalImport defines a goal in the import file. A goal with an id replaces
// the stored goal with that id.
type GoalImport struct {
	ID                  string       `yaml:"id,omitempty" json:"id,omitempty"`
	Description         string       `yaml:"description" json:"description" validate:"required"`
	Sector              string       `yaml:"sector,omitempty" json:"sector,omitempty"`
	PreferredTime       string       `yaml:"preferred_time,omitempty" json:"preferred_time,omitempty"`
	EndDate             string       `yaml:"end_date" json:"end_date" validate:"required,datetime=2006-01-02"`
	TimesPerWeek        int          `yaml:"times_per_week,omitempty" json:"times_per_week,omitempty" validate:"omitempty,min=1,max=7"`
	DailyTimeAllocation *int         `yaml:"daily_time_allocation,omitempty" json:"daily_time_allocation,omitempty" validate:"omitempty,gt=0"`
	IdentityStatement   string       `yaml:"identity_statement,omitempty" json:"identity_statement,omitempty"`
	HabitTips           []string     `yaml:"habit_tips,omitempty" json:"habit_tips,omitempty"`
	Steps               []StepImport `yaml:"steps" json:"steps" validate:"dive"`
}

type StepImport struct {
	Text            string `yaml:"text" json:"text" validate:"required"`
	DurationMin     int    `yaml:"duration_min" json:"duration_min" validate:"gt=0"`
	HabitType       string `yaml:"habit_type,omitempty" json:"habit_type,omitempty" validate:"omitempty,oneof=identity process outcome"`
	CueStackingIdea string `yaml:"cue_stacking_idea,omitempty" json:"cue_stacking_idea,omitempty"`
	Completed       bool   `yaml:"completed,omitempty" json:"completed,omitempty"`
}

type CommitmentImport struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Start string `yaml:"start" json:"start" validate:"required"`
	End   string `yaml:"end" json:"end" validate:"required"`
}

// LoadPlanFile reads and parses a plan file. Files ending in .json are
// decoded as JSON, everything else as YAML.
func LoadPlanFile(path string) (*PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return ParseYAML(data)
}

func ParseYAML(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &plan, nil
}

func ParseJSON(data []byte) (*PlanFile, error) {
	var plan PlanFile
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &plan, nil
}
