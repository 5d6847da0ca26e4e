package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString returns SQL NULL for a nil pointer.
func nullableTimeToString(t *time.Time, layout string) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(layout)
}

func nullableIntToValue(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloatToValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// parseDate reads a stored calendar date as midnight UTC.
func parseDate(s, column string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// formatDate stores the calendar date of t as written in t's own location.
func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// encodeStrings stores a string list as a JSON array, never NULL.
func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(s, column string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", column, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func rowsAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: reading rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
