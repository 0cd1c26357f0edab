/*
reconcile.go - Balance computation

PURPOSE:
  Reconciles externally logged hours against the expected-hours schedule
  for a date range, adjusted for declared leave:

    balance = logged − expected + leave reduction

  Positive means surplus (owed TO the worker), negative means deficit
  (owed BY the worker). The result is rounded to 2 decimal places.

LEAVE REDUCTION:
  A leave day "cancels" its scheduled hours by adding them back. A leave
  record on a weekend contributes nothing, because the weekend's
  scheduled hours are already zero. Note the reduction uses the
  SCHEDULED hours for the day, never the logged hours: hours logged on a
  day that later becomes leave still count fully toward the logged
  total. That reproduces the upstream tracker's behavior; it can
  double-credit and is a policy choice, not an accident of this code.

SEE ALSO:
  - series.go: Daily and cumulative reporting series
*/
package engine

// =============================================================================
// RECONCILIATION
// =============================================================================

// WorkingDays enumerates every calendar date in the range. Weekends are
// not excluded here; the schedule's zero-hour entries keep them out of
// the totals.
func WorkingDays(rng DateRange) []Day {
	return rng.Days()
}

// ExpectedHours sums the scheduled hours over the given days. Leave is
// not subtracted here.
func ExpectedHours(days []Day, schedule *Schedule) Hours {
	total := ZeroHours()
	for _, d := range days {
		total = total.Add(schedule.ExpectedHours(d.Weekday()))
	}
	return total
}

// LeaveReduction sums the scheduled hours of every leave record falling
// within the range. Each record contributes its day's scheduled hours,
// so duplicate records for one day contribute twice.
func LeaveReduction(rng DateRange, ledger *Ledger, schedule *Schedule) Hours {
	total := ZeroHours()
	for _, rec := range ledger.RecordsIn(rng) {
		total = total.Add(schedule.ExpectedHours(rec.Date.Weekday()))
	}
	return total
}

// =============================================================================
// BALANCE
// =============================================================================

// BalanceBreakdown is the balance with its three components, matching
// the calculation details shown to the user.
type BalanceBreakdown struct {
	Logged    Hours
	Expected  Hours
	Reduction Hours
	Balance   Hours // rounded to 2 decimal places
}

// ComputeBalance reconciles logged hours against the schedule and
// ledger over [start, end]. Fails with InvalidRangeError when
// start > end, before anything is computed. Empty ranges of input
// (no entries, no leave) contribute zero, not errors.
func ComputeBalance(start, end Day, entries []LoggedHoursEntry, schedule *Schedule, ledger *Ledger) (BalanceBreakdown, error) {
	rng, err := NewDateRange(start, end)
	if err != nil {
		return BalanceBreakdown{}, err
	}

	logged := SumLogged(entries)
	expected := ExpectedHours(WorkingDays(rng), schedule)
	reduction := LeaveReduction(rng, ledger, schedule)

	return BalanceBreakdown{
		Logged:    logged,
		Expected:  expected,
		Reduction: reduction,
		Balance:   logged.Sub(expected).Add(reduction).Round2(),
	}, nil
}
