package scheduler

import "fmt"

// Window is a half-open range of the day in minutes from midnight.
type Window struct {
	Start int
	End   int
}

// DefaultWindow is the schedulable day, 05:00 to 22:00.
var DefaultWindow = Window{Start: 5 * 60, End: 22 * 60}

// DefaultSlotMin is the grid granularity in minutes.
const DefaultSlotMin = 5

func (w Window) Validate() error {
	if w.Start < 0 || w.End > 24*60 || w.End <= w.Start {
		return fmt.Errorf("invalid day window [%d, %d)", w.Start, w.End)
	}
	return nil
}

// Clamp intersects [start, end) with the window. ok is false when the
// intersection is empty.
func (w Window) Clamp(start, end int) (int, int, bool) {
	start = max(start, w.Start)
	end = min(end, w.End)
	return start, end, end > start
}

// Interval is a placed [Start, End) range in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) Minutes() int { return iv.End - iv.Start }

type slot struct {
	start     int
	end       int
	available bool
}

// Grid discretizes the day window into fixed-width slots and tracks which
// are taken. A trailing partial slot that does not fill slotMin is dropped,
// so the grid may end slightly before the window does.
type Grid struct {
	slotMin int
	slots   []slot
}

// NewGrid builds an all-free grid over w.
func NewGrid(w Window, slotMin int) *Grid {
	g := &Grid{slotMin: slotMin}
	if slotMin <= 0 {
		return g
	}
	for t := w.Start; t+slotMin <= w.End; t += slotMin {
		g.slots = append(g.slots, slot{start: t, end: t + slotMin, available: true})
	}
	return g
}

// MarkOccupied takes every slot overlapping [start, end).
func (g *Grid) MarkOccupied(start, end int) {
	for i := range g.slots {
		if g.slots[i].start < end && g.slots[i].end > start {
			g.slots[i].available = false
		}
	}
}

// FindFirstFit returns the earliest run of free slots lying inside
// [rangeStart, rangeEnd] that covers durationMin, rounded up to whole slots.
// The run is marked occupied before returning. ok is false when nothing fits.
func (g *Grid) FindFirstFit(durationMin, rangeStart, rangeEnd int) (Interval, bool) {
	if durationMin <= 0 || g.slotMin <= 0 {
		return Interval{}, false
	}
	required := (durationMin + g.slotMin - 1) / g.slotMin

	runStart := -1
	for i, s := range g.slots {
		if s.end > rangeEnd {
			break
		}
		if !s.available || s.start < rangeStart {
			runStart = -1
			continue
		}
		if runStart < 0 {
			runStart = i
		}
		if i-runStart+1 == required {
			for j := runStart; j <= i; j++ {
				g.slots[j].available = false
			}
			return Interval{Start: g.slots[runStart].start, End: s.end}, true
		}
	}
	return Interval{}, false
}

// FreeMinutes counts free slot minutes inside [rangeStart, rangeEnd].
func (g *Grid) FreeMinutes(rangeStart, rangeEnd int) int {
	total := 0
	for _, s := range g.slots {
		if s.available && s.start >= rangeStart && s.end <= rangeEnd {
			total += g.slotMin
		}
	}
	return total
}
