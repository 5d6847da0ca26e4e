package scheduler

import (
	"strings"

	"github.com/alexanderramin/todoer/internal/domain"
)

const (
	noon         = 12 * 60
	eveningStart = 17 * 60
	nightStart   = 19 * 60
)

// fixedBands are the sub-bands whose bounds never depend on the day window.
var fixedBands = map[domain.PreferredTime]Window{
	domain.TimeMidMorning:     {Start: 8 * 60, End: 10 * 60},
	domain.TimeLateMorning:    {Start: 10 * 60, End: noon},
	domain.TimeAfternoon:      {Start: noon, End: eveningStart},
	domain.TimeEarlyAfternoon: {Start: noon, End: 14 * 60},
	domain.TimeMidAfternoon:   {Start: 14 * 60, End: 15*60 + 30},
	domain.TimeLateAfternoon:  {Start: 15*60 + 30, End: eveningStart},
	domain.TimeEvening:        {Start: eveningStart, End: nightStart},
	domain.TimeEarlyEvening:   {Start: eveningStart, End: 18 * 60},
	domain.TimeLateEvening:    {Start: 18 * 60, End: nightStart},
}

// PreferredRange maps a preferred time label to its minute range. Bands that
// touch the edge of the day (morning, early-morning, night) follow the
// configured window. Unknown labels get the whole window.
func PreferredRange(pref domain.PreferredTime, day Window) Window {
	label := domain.PreferredTime(strings.ToLower(strings.TrimSpace(string(pref))))
	if w, ok := fixedBands[label]; ok {
		return w
	}
	switch label {
	case domain.TimeMorning:
		return Window{Start: day.Start, End: noon}
	case domain.TimeEarlyMorning:
		return Window{Start: day.Start, End: 8 * 60}
	case domain.TimeNight:
		return Window{Start: nightStart, End: day.End}
	}
	return day
}

// IsKnownPreferredTime reports whether pref has its own band.
func IsKnownPreferredTime(pref domain.PreferredTime) bool {
	label := domain.PreferredTime(strings.ToLower(strings.TrimSpace(string(pref))))
	if _, ok := fixedBands[label]; ok {
		return true
	}
	switch label {
	case domain.TimeMorning, domain.TimeEarlyMorning, domain.TimeNight, domain.TimeAnytime:
		return true
	}
	return false
}
