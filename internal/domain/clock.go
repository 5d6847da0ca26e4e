package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// ParseClock converts a wall-clock "HH:MM" string to minutes from midnight.
// "24:00" is accepted as the end of the day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateStamp renders the calendar date of t as YYYYMMDD.
func DateStamp(t time.Time) string {
	return t.Format("20060102")
}

// AtClock returns the instant on t's calendar date at the given minutes
// from midnight.
func AtClock(t time.Time, minutes int) time.Time {
	return DateOnly(t).Add(time.Duration(minutes) * time.Minute)
}
