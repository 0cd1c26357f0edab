package engine

import (
	"time"
)

// =============================================================================
// DAY - Naive calendar date (no timezone semantics)
// =============================================================================

// Day is a calendar date. All dates in the engine are naive: a Day is
// normalized to midnight UTC and compared by calendar position only.
type Day struct {
	t time.Time
}

// Constructors
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses an ISO date ("2006-01-02").
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) Next() Day         { return d.AddDays(1) }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }
func (d Day) Time() time.Time       { return d.t }

func (d Day) String() string { return d.t.Format("2006-01-02") }

// Format formats with an arbitrary time layout (display surfaces use
// "02/01/2006").
func (d Day) Format(layout string) string { return d.t.Format(layout) }

// DaysBetween returns the number of calendar days from from to to
// (negative when to precedes from).
func DaysBetween(from, to Day) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// StartOfMonth returns the first day of d's month.
func StartOfMonth(d Day) Day { return NewDay(d.Year(), d.Month(), 1) }

// =============================================================================
// DATE RANGE - Inclusive [Start, End]
// =============================================================================

// DateRange is an inclusive calendar range. Construct via NewDateRange,
// which enforces Start <= End.
type DateRange struct {
	Start Day
	End   Day
}

// NewDateRange validates Start <= End. A reversed range is a user input
// error and is rejected before any computation happens.
func NewDateRange(start, end Day) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, &InvalidRangeError{Start: start, End: end}
	}
	return DateRange{Start: start, End: end}, nil
}

// Days enumerates every calendar date in the range, in order.
func (r DateRange) Days() []Day {
	days := make([]Day, 0, r.Len())
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.Next() {
		days = append(days, d)
	}
	return days
}

// Len is the number of calendar days in the range.
func (r DateRange) Len() int { return DaysBetween(r.Start, r.End) + 1 }

// Contains reports whether d falls within the range, inclusive.
func (r DateRange) Contains(d Day) bool {
	return r.Start.BeforeOrEqual(d) && d.BeforeOrEqual(r.End)
}

// DisplayLabel renders the range for display ("25/12/2025 - 31/12/2025",
// collapsing single-day ranges to one date).
func (r DateRange) DisplayLabel() string {
	if r.Start.Equal(r.End) {
		return r.Start.Format("02/01/2006")
	}
	return r.Start.Format("02/01/2006") + " - " + r.End.Format("02/01/2006")
}

// DefaultWindow is the query window used when the provider has no
// entries: first of the current month through today.
func DefaultWindow(today Day) DateRange {
	return DateRange{Start: StartOfMonth(today), End: today}
}
