package engine

import "time"

// =============================================================================
// SCHEDULE - Per-weekday expected working hours
// =============================================================================

// Schedule maps weekdays to expected working hours. A weekday missing
// from the mapping counts as 0 expected hours, which is how weekends
// stay out of the balance without excluding their dates from a range.
type Schedule struct {
	hours map[time.Weekday]Hours
}

// StandardDailyHours is the default expectation for Monday through Friday.
const StandardDailyHours = 7.5

// DefaultSchedule returns the standard week: 7.5h Monday–Friday, 0 on
// weekends.
func DefaultSchedule() *Schedule {
	hours := make(map[time.Weekday]Hours, 7)
	for _, wd := range Weekdays {
		if wd == time.Saturday || wd == time.Sunday {
			hours[wd] = ZeroHours()
		} else {
			hours[wd] = NewHours(StandardDailyHours)
		}
	}
	return &Schedule{hours: hours}
}

// NewSchedule builds a schedule from an explicit mapping. The engine does
// not validate bounds; the edit surface clamps to [0, 24] and anything
// that bypasses it is simply propagated.
func NewSchedule(hours map[time.Weekday]Hours) *Schedule {
	copied := make(map[time.Weekday]Hours, len(hours))
	for wd, h := range hours {
		copied[wd] = h
	}
	return &Schedule{hours: copied}
}

// ExpectedHours returns the configured hours for a weekday, or zero when
// the weekday is absent. Never fails.
func (s *Schedule) ExpectedHours(wd time.Weekday) Hours {
	if s == nil {
		return ZeroHours()
	}
	return s.hours[wd]
}

// Replace swaps in a full new mapping atomically. There are no partial
// updates: the previous mapping is discarded wholesale.
func (s *Schedule) Replace(hours map[time.Weekday]Hours) {
	copied := make(map[time.Weekday]Hours, len(hours))
	for wd, h := range hours {
		copied[wd] = h
	}
	s.hours = copied
}

// WeekTotal sums the expected hours over all seven weekdays.
func (s *Schedule) WeekTotal() Hours {
	total := ZeroHours()
	for _, wd := range Weekdays {
		total = total.Add(s.ExpectedHours(wd))
	}
	return total
}

// Hours returns a copy of the underlying mapping, Monday-first iteration
// left to the caller via Weekdays.
func (s *Schedule) Hours() map[time.Weekday]Hours {
	copied := make(map[time.Weekday]Hours, len(s.hours))
	for wd, h := range s.hours {
		copied[wd] = h
	}
	return copied
}
