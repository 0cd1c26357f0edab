/*
ledger.go - Leave ledger: flat per-day leave records

PURPOSE:
  The ledger holds every declared leave day as an individual
  (date, reason) record. Storing one record per day instead of ranges
  trades a little memory for trivial set-based add/remove/group logic:
  a removal is a set difference, grouping is a sort plus a coalescing
  pass, and no index structures need maintaining.

INVARIANTS:
  1. Duplicates allowed: importing the same text twice doubles the
     records. Nothing merges or deduplicates.
  2. Insertion order irrelevant: the ledger is an unordered collection;
     Grouped() imposes order only for display.
  3. No partial mutation: AddRange validates its range before appending
     anything, so a failed add leaves the ledger untouched.

BLANK REASONS:
  A blank or whitespace-only reason is displayed as "(No description)".
  The substitution also applies before comparison during removal, so
  removing the "(No description)" group clears records whose stored
  reason is empty.

SEE ALSO:
  - import.go: Bulk import from the Xero export format
  - reconcile.go: How leave days reduce expected hours
*/
package engine

import (
	"sort"
	"strings"
)

// NoDescription is the display substitute for a blank leave reason.
const NoDescription = "(No description)"

// =============================================================================
// LEAVE RECORD
// =============================================================================

// LeaveRecord marks a single calendar day as leave.
type LeaveRecord struct {
	Date   Day
	Reason string
}

// DisplayReason returns the record's reason with the blank-reason
// substitution applied.
func (r LeaveRecord) DisplayReason() string {
	return displayReason(r.Reason)
}

func displayReason(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return NoDescription
	}
	return reason
}

// =============================================================================
// LEDGER
// =============================================================================

// Ledger is the session's collection of leave records.
type Ledger struct {
	records []LeaveRecord
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// NewLedgerFromRecords builds a ledger around existing records (e.g.
// loaded from a store).
func NewLedgerFromRecords(records []LeaveRecord) *Ledger {
	l := &Ledger{records: make([]LeaveRecord, len(records))}
	copy(l.records, records)
	return l
}

// AddRange appends one record per calendar day in [start, end], all
// carrying the same reason. Returns the number of days added.
// Fails with InvalidRangeError when start > end; nothing is appended.
func (l *Ledger) AddRange(start, end Day, reason string) (int, error) {
	rng, err := NewDateRange(start, end)
	if err != nil {
		return 0, err
	}
	for _, d := range rng.Days() {
		l.records = append(l.records, LeaveRecord{Date: d, Reason: reason})
	}
	return rng.Len(), nil
}

// Remove deletes every record whose display reason equals reason and
// whose date falls within rng. Records of the same reason outside rng
// are kept, so a reason with disjoint ranges loses only the selected
// one. Returns the number of records removed.
func (l *Ledger) Remove(reason string, rng DateRange) int {
	kept := l.records[:0]
	removed := 0
	for _, rec := range l.records {
		if rec.DisplayReason() == reason && rng.Contains(rec.Date) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	l.records = kept
	return removed
}

// Records returns a copy of all records.
func (l *Ledger) Records() []LeaveRecord {
	out := make([]LeaveRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len is the number of individual leave-day records.
func (l *Ledger) Len() int { return len(l.records) }

// Covers reports whether any record marks d as leave.
func (l *Ledger) Covers(d Day) bool {
	for _, rec := range l.records {
		if rec.Date.Equal(d) {
			return true
		}
	}
	return false
}

// RecordsIn returns the records whose date falls within rng.
func (l *Ledger) RecordsIn(rng DateRange) []LeaveRecord {
	var out []LeaveRecord
	for _, rec := range l.records {
		if rng.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// =============================================================================
// GROUPED DISPLAY - Coalesced ranges per reason
// =============================================================================

// LeaveGroup is one display row set: a reason and its contiguous
// sub-ranges, each a maximal run of consecutive dates.
type LeaveGroup struct {
	Reason string
	Ranges []DateRange
}

// Grouped organizes the ledger for display: records grouped by display
// reason, groups sorted by (reason, earliest date), and each group's
// dates coalesced into closed sub-ranges wherever they are exactly one
// day apart. Read-only; calling it twice without mutation yields
// identical output.
func (l *Ledger) Grouped() []LeaveGroup {
	byReason := make(map[string][]Day)
	for _, rec := range l.records {
		reason := rec.DisplayReason()
		byReason[reason] = append(byReason[reason], rec.Date)
	}

	reasons := make([]string, 0, len(byReason))
	for reason := range byReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	groups := make([]LeaveGroup, 0, len(reasons))
	for _, reason := range reasons {
		dates := byReason[reason]
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		var ranges []DateRange
		for _, d := range dates {
			if len(ranges) == 0 || DaysBetween(ranges[len(ranges)-1].End, d) > 1 {
				ranges = append(ranges, DateRange{Start: d, End: d})
			} else {
				ranges[len(ranges)-1].End = d
			}
		}
		groups = append(groups, LeaveGroup{Reason: reason, Ranges: ranges})
	}
	return groups
}
