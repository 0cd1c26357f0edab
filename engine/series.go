/*
series.go - Reporting series derived from the daily reconciliation

PURPOSE:
  Builds the plain-data series the presentation layer renders:

  1. DailySeries:      expected vs. actual hours per date
  2. DecomposeBars:    stacked bar segments (contractual/overtime/shortfall)
  3. CumulativeSeries: running totals of expected and actual

  All three are render-agnostic ordered slices; charting is someone
  else's problem.

LEAVE IN THE DAILY SERIES:
  A date covered by any leave record reports 0 expected hours — the
  daily view shows leave days as free, unlike the balance computation
  which subtracts then adds back.
*/
package engine

// =============================================================================
// DAILY SERIES
// =============================================================================

// DayStat is one date's expected and actual hours.
type DayStat struct {
	Date     Day
	Expected Hours
	Actual   Hours
}

// DailySeries builds the per-date series over [start, end]: expected is
// zero on leave-covered days and the scheduled hours otherwise; actual
// is the sum of logged entries for the date. Fails with
// InvalidRangeError when start > end.
func DailySeries(start, end Day, schedule *Schedule, ledger *Ledger, entries []LoggedHoursEntry) ([]DayStat, error) {
	rng, err := NewDateRange(start, end)
	if err != nil {
		return nil, err
	}

	actualByDay := LoggedByDay(entries)
	series := make([]DayStat, 0, rng.Len())
	for _, d := range rng.Days() {
		expected := schedule.ExpectedHours(d.Weekday())
		if ledger.Covers(d) {
			expected = ZeroHours()
		}
		series = append(series, DayStat{
			Date:     d,
			Expected: expected,
			Actual:   actualByDay[d],
		})
	}
	return series, nil
}

// =============================================================================
// BAR DECOMPOSITION
// =============================================================================

type SegmentKind string

const (
	SegmentContractual SegmentKind = "Contractual Hours"
	SegmentOvertime    SegmentKind = "Overtime"
	SegmentShortfall   SegmentKind = "Shortfall"
)

// BarSegment is one stacked-bar segment spanning [Lower, Upper] hours on
// a date.
type BarSegment struct {
	Date  Day
	Kind  SegmentKind
	Lower Hours
	Upper Hours
}

// DecomposeBars turns the daily series into stacked bar segments. Each
// day with expected > 0 gets a contractual segment [0, expected], plus
// an overtime segment [expected, actual] when actual exceeds expected,
// or a shortfall segment [actual, expected] when it falls short. Days
// with zero expected hours are omitted entirely — non-working days
// don't appear in the bar view.
func DecomposeBars(series []DayStat) []BarSegment {
	var segments []BarSegment
	for _, stat := range series {
		if !stat.Expected.IsPositive() {
			continue
		}
		segments = append(segments, BarSegment{
			Date:  stat.Date,
			Kind:  SegmentContractual,
			Lower: ZeroHours(),
			Upper: stat.Expected,
		})
		if stat.Actual.GreaterThan(stat.Expected) {
			segments = append(segments, BarSegment{
				Date:  stat.Date,
				Kind:  SegmentOvertime,
				Lower: stat.Expected,
				Upper: stat.Actual,
			})
		}
		if stat.Actual.LessThan(stat.Expected) {
			segments = append(segments, BarSegment{
				Date:  stat.Date,
				Kind:  SegmentShortfall,
				Lower: stat.Actual,
				Upper: stat.Expected,
			})
		}
	}
	return segments
}

// =============================================================================
// CUMULATIVE SERIES
// =============================================================================

// CumulativePoint is the running total of expected and actual hours up
// to and including a date.
type CumulativePoint struct {
	Date     Day
	Expected Hours
	Actual   Hours
}

// CumulativeSeries computes independent running sums of expected and
// actual hours, in date order.
func CumulativeSeries(series []DayStat) []CumulativePoint {
	points := make([]CumulativePoint, 0, len(series))
	expected := ZeroHours()
	actual := ZeroHours()
	for _, stat := range series {
		expected = expected.Add(stat.Expected)
		actual = actual.Add(stat.Actual)
		points = append(points, CumulativePoint{Date: stat.Date, Expected: expected, Actual: actual})
	}
	return points
}
