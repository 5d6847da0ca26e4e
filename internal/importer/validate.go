package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/todoer/internal/domain"
	"github.com/alexanderramin/todoer/internal/scheduler"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidatePlanFile checks the plan for errors before conversion. It returns
// every problem found rather than stopping at the first.
func ValidatePlanFile(plan *PlanFile) []error {
	var errs []error

	if err := validate.Struct(plan); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return []error{fmt.Errorf("validating plan: %w", err)}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	errs = append(errs, validateGoals(plan.Goals)...)
	errs = append(errs, validateCommitments(plan.Commitments)...)
	return errs
}

func validateGoals(goals []GoalImport) []error {
	var errs []error
	seen := make(map[string]bool)
	for i, g := range goals {
		prefix := fmt.Sprintf("goals[%d]", i)
		if g.ID != "" {
			if seen[g.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, g.ID))
			}
			seen[g.ID] = true
		}
		if g.PreferredTime != "" && !scheduler.IsKnownPreferredTime(domain.PreferredTime(g.PreferredTime)) {
			errs = append(errs, fmt.Errorf("%s.preferred_time: unknown value %q", prefix, g.PreferredTime))
		}
	}
	return errs
}

func validateCommitments(byDay map[string][]CommitmentImport) []error {
	var errs []error
	for day, list := range byDay {
		if _, err := domain.ParseWeekday(day); err != nil {
			errs = append(errs, fmt.Errorf("commitments.%s: %w", day, err))
			continue
		}
		for i, c := range list {
			prefix := fmt.Sprintf("commitments.%s[%d]", day, i)
			start, err := domain.ParseClock(c.Start)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.start: %w", prefix, err))
				continue
			}
			end, err := domain.ParseClock(c.End)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.end: %w", prefix, err))
				continue
			}
			if end <= start {
				errs = append(errs, fmt.Errorf("%s: end %s must be after start %s", prefix, c.End, c.Start))
			}
		}
	}
	return errs
}

// describeFieldError turns a validator failure into a message that names
// the field by its path in the file.
func describeFieldError(fe validator.FieldError) error {
	path := fieldPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "datetime":
		return fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", path, fe.Value())
	case "oneof":
		return fmt.Errorf("%s: %q is not one of %s", path, fe.Value(), fe.Param())
	case "min", "max", "gt":
		return fmt.Errorf("%s: value %v fails %s=%s", path, fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%s: failed %s validation", path, fe.Tag())
}

// fieldPath converts "PlanFile.Goals[0].EndDate" to "goals[0].end_date".
func fieldPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '[' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
