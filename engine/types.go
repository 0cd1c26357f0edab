/*
Package engine provides the time-balance and leave-reconciliation core.

PURPOSE:
  This package contains the pure computation layer of the balance tracker:
  the expected-hours schedule, the leave ledger, the reconciliation
  algorithm, and the derived reporting series. It owns no I/O — logged
  hours arrive as an already-resolved slice from a provider client, and
  all state (schedule, ledger) is passed in explicitly.

KEY CONCEPTS IN THIS FILE (types.go):
  - Hours: A quantity of working hours backed by decimal.Decimal
  - LoggedHoursEntry: One time-tracking line item from the provider
  - Weekday helpers: Monday-first naming used by schedules and the API

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere, rounding only at the balance
  2. Totality: missing schedule entries and empty inputs contribute zero
  3. Explicit state: no ambient session, every function takes its inputs

SEE ALSO:
  - time.go: Day and DateRange
  - schedule.go: Per-weekday expected hours
  - reconcile.go: Balance computation
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Quantity of working hours
// =============================================================================

type Hours struct {
	Value decimal.Decimal
}

func NewHours(value float64) Hours {
	return Hours{Value: decimal.NewFromFloat(value)}
}

func ZeroHours() Hours {
	return Hours{Value: decimal.Zero}
}

func (h Hours) Add(other Hours) Hours      { return Hours{Value: h.Value.Add(other.Value)} }
func (h Hours) Sub(other Hours) Hours      { return Hours{Value: h.Value.Sub(other.Value)} }
func (h Hours) Neg() Hours                 { return Hours{Value: h.Value.Neg()} }
func (h Hours) IsZero() bool               { return h.Value.IsZero() }
func (h Hours) IsNegative() bool           { return h.Value.IsNegative() }
func (h Hours) IsPositive() bool           { return h.Value.IsPositive() }
func (h Hours) GreaterThan(o Hours) bool   { return h.Value.GreaterThan(o.Value) }
func (h Hours) LessThan(o Hours) bool      { return h.Value.LessThan(o.Value) }
func (h Hours) Equal(o Hours) bool         { return h.Value.Equal(o.Value) }

// Round2 rounds to 2 decimal places. Only the final balance is rounded;
// intermediate sums stay exact.
func (h Hours) Round2() Hours { return Hours{Value: h.Value.Round(2)} }

func (h Hours) Float64() float64 {
	f, _ := h.Value.Float64()
	return f
}

func (h Hours) String() string { return h.Value.String() }

// =============================================================================
// LOGGED HOURS - Provider-supplied time entries
// =============================================================================

// LoggedHoursEntry is one time-tracking line item. Multiple entries may
// share a date; the engine sums them per date.
type LoggedHoursEntry struct {
	Date  Day
	Hours Hours
}

// SumLogged totals all entries regardless of date.
func SumLogged(entries []LoggedHoursEntry) Hours {
	total := ZeroHours()
	for _, e := range entries {
		total = total.Add(e.Hours)
	}
	return total
}

// LoggedByDay sums entries per calendar date.
func LoggedByDay(entries []LoggedHoursEntry) map[Day]Hours {
	byDay := make(map[Day]Hours, len(entries))
	for _, e := range entries {
		byDay[e.Date] = byDay[e.Date].Add(e.Hours)
	}
	return byDay
}

// =============================================================================
// WEEKDAYS - Monday-first naming
// =============================================================================

// Weekdays lists the calendar weekdays Monday-first, the order schedules
// are displayed and serialized in.
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// ParseWeekday maps a weekday name ("Monday" .. "Sunday") to its
// time.Weekday. Returns ok=false for anything else.
func ParseWeekday(name string) (time.Weekday, bool) {
	for _, wd := range Weekdays {
		if wd.String() == name {
			return wd, true
		}
	}
	return 0, false
}
