/*
import.go - Bulk leave import from the Xero export format

PURPOSE:
  Parses the tab-separated leave export users paste in, e.g.

    Holiday\tChristmas\t25 Dec - 31 Dec 2025\tApproved

  Column 1 is unused, column 2 is the reason (blank falls back to
  "Holiday"), column 3 is the date range, columns 4+ are ignored.

FORMAT:
  The range string is "DD Mon[ YYYY] - DD Mon YYYY" with a 3-letter
  month abbreviation. When the start date omits its year, it inherits
  the end date's year.

BEST EFFORT:
  Import never fails. Lines with too few fields, an unmatched range
  pattern, or unparseable dates are silently skipped; the caller only
  learns how many day-records were added. This mirrors what users
  expect from pasting a partially mangled spreadsheet export.
*/
package engine

import (
	"regexp"
	"strings"
	"time"
)

// bulkRangeRe matches "05 Jan - 08 Jan 2026" and "25 Dec - 31 Dec 2025";
// the start year is optional. Anchored at the start only so trailing
// annotations don't break the match.
var bulkRangeRe = regexp.MustCompile(`^(\d{2} \w{3})\s*-\s*(\d{2} \w{3} \d{4})`)

const bulkDateLayout = "02 Jan 2006"

// BulkLine is one successfully parsed import line before expansion into
// per-day records.
type BulkLine struct {
	Reason string
	Start  Day
	End    Day
}

// ParseBulkLeave extracts (reason, start, end) triples from raw import
// text, skipping unparseable lines.
func ParseBulkLeave(text string) []BulkLine {
	var lines []BulkLine
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		parts := strings.Split(raw, "\t")
		if len(parts) < 3 {
			continue
		}

		reason := strings.TrimSpace(parts[1])
		if reason == "" {
			reason = "Holiday"
		}

		m := bulkRangeRe.FindStringSubmatch(strings.TrimSpace(parts[2]))
		if m == nil {
			continue
		}
		startStr, endStr := m[1], m[2]

		// Start without a year inherits the end date's year.
		if len(strings.Fields(startStr)) == 2 {
			fields := strings.Fields(endStr)
			startStr += " " + fields[len(fields)-1]
		}

		start, err := time.Parse(bulkDateLayout, startStr)
		if err != nil {
			continue
		}
		end, err := time.Parse(bulkDateLayout, endStr)
		if err != nil {
			continue
		}

		lines = append(lines, BulkLine{Reason: reason, Start: DayOf(start), End: DayOf(end)})
	}
	return lines
}

// ImportBulk parses text and expands each matched line into per-day
// records via AddRange semantics. Returns the total number of
// day-records added. Duplicate lines add duplicate records.
func (l *Ledger) ImportBulk(text string) int {
	added := 0
	for _, line := range ParseBulkLeave(text) {
		n, err := l.AddRange(line.Start, line.End, line.Reason)
		if err != nil {
			// Reversed ranges in the source text are skipped like any
			// other malformed line.
			continue
		}
		added += n
	}
	return added
}
