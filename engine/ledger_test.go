package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leap/balance-engine/engine"
)

// =============================================================================
// ADD / REMOVE
// =============================================================================

func TestLedger_AddRange_OneRecordPerDay(t *testing.T) {
	l := engine.NewLedger()

	added, err := l.AddRange(engine.NewDay(2025, time.December, 25), engine.NewDay(2025, time.December, 31), "Christmas")
	require.NoError(t, err)

	assert.Equal(t, 7, added)
	assert.Equal(t, 7, l.Len())
	for _, rec := range l.Records() {
		assert.Equal(t, "Christmas", rec.Reason)
	}
}

func TestLedger_AddRange_SingleDay(t *testing.T) {
	l := engine.NewLedger()

	added, err := l.AddRange(engine.NewDay(2024, time.March, 5), engine.NewDay(2024, time.March, 5), "Dentist")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
}

func TestLedger_AddRange_InvalidRange_NoMutation(t *testing.T) {
	// GIVEN: A ledger with existing records
	// WHEN: Adding a range whose start is after its end
	// THEN: InvalidRangeError, and the ledger is untouched

	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2024, time.January, 1), engine.NewDay(2024, time.January, 3), "Existing")
	require.NoError(t, err)
	before := l.Len()

	_, err = l.AddRange(engine.NewDay(2024, time.March, 5), engine.NewDay(2024, time.March, 1), "X")

	assert.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidRange)
	var rangeErr *engine.InvalidRangeError
	assert.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, before, l.Len(), "failed add must not partially apply")
}

func TestLedger_AddThenRemove_RoundTrip(t *testing.T) {
	// GIVEN: A ledger with a pre-existing record
	// WHEN: Adding a range and removing the same (reason, range)
	// THEN: The ledger is back to its pre-add state

	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2024, time.June, 1), engine.NewDay(2024, time.June, 1), "Keep")
	require.NoError(t, err)
	before := l.Records()

	d1 := engine.NewDay(2024, time.July, 8)
	d2 := engine.NewDay(2024, time.July, 12)
	_, err = l.AddRange(d1, d2, "X")
	require.NoError(t, err)

	removed := l.Remove("X", engine.DateRange{Start: d1, End: d2})

	assert.Equal(t, 5, removed)
	assert.ElementsMatch(t, before, l.Records())
}

func TestLedger_Remove_OnlyTargetedRange(t *testing.T) {
	// GIVEN: One reason with two disjoint date ranges
	// WHEN: Removing only the first range
	// THEN: The second range survives

	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2025, time.April, 1), engine.NewDay(2025, time.April, 3), "Vacation")
	require.NoError(t, err)
	_, err = l.AddRange(engine.NewDay(2025, time.September, 10), engine.NewDay(2025, time.September, 12), "Vacation")
	require.NoError(t, err)

	removed := l.Remove("Vacation", engine.DateRange{
		Start: engine.NewDay(2025, time.April, 1),
		End:   engine.NewDay(2025, time.April, 3),
	})

	assert.Equal(t, 3, removed)
	assert.Equal(t, 3, l.Len())
	for _, rec := range l.Records() {
		assert.Equal(t, time.September, rec.Date.Month())
	}
}

func TestLedger_Remove_DifferentReasonUntouched(t *testing.T) {
	l := engine.NewLedger()
	day := engine.NewDay(2025, time.May, 1)
	_, err := l.AddRange(day, day, "Sick")
	require.NoError(t, err)
	_, err = l.AddRange(day, day, "Holiday")
	require.NoError(t, err)

	removed := l.Remove("Sick", engine.DateRange{Start: day, End: day})

	assert.Equal(t, 1, removed)
	require.Equal(t, 1, l.Len())
	assert.Equal(t, "Holiday", l.Records()[0].Reason)
}

func TestLedger_Remove_BlankReasonMatchesSubstitute(t *testing.T) {
	// GIVEN: Records stored with a blank reason
	// WHEN: Removing by the "(No description)" display name
	// THEN: The blank-reason records are removed — substitution happens
	//       before comparison

	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2025, time.May, 5), engine.NewDay(2025, time.May, 6), "   ")
	require.NoError(t, err)

	removed := l.Remove(engine.NoDescription, engine.DateRange{
		Start: engine.NewDay(2025, time.May, 5),
		End:   engine.NewDay(2025, time.May, 6),
	})

	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, l.Len())
}

// =============================================================================
// GROUPED DISPLAY
// =============================================================================

func TestLedger_Grouped_CoalescesConsecutiveDays(t *testing.T) {
	// GIVEN: A reason with consecutive days and one separated day
	// WHEN: Grouping for display
	// THEN: The consecutive run coalesces; the gap starts a new sub-range

	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2025, time.December, 25), engine.NewDay(2025, time.December, 31), "Christmas")
	require.NoError(t, err)
	_, err = l.AddRange(engine.NewDay(2026, time.January, 2), engine.NewDay(2026, time.January, 2), "Christmas")
	require.NoError(t, err)

	groups := l.Grouped()

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Ranges, 2)
	assert.Equal(t, "Christmas", groups[0].Reason)
	assert.Equal(t, "25/12/2025 - 31/12/2025", groups[0].Ranges[0].DisplayLabel())
	assert.Equal(t, "02/01/2026", groups[0].Ranges[1].DisplayLabel())
}

func TestLedger_Grouped_SortedByReason(t *testing.T) {
	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2025, time.March, 1), engine.NewDay(2025, time.March, 1), "Zoo trip")
	require.NoError(t, err)
	_, err = l.AddRange(engine.NewDay(2025, time.June, 1), engine.NewDay(2025, time.June, 1), "Anniversary")
	require.NoError(t, err)

	groups := l.Grouped()

	require.Len(t, groups, 2)
	assert.Equal(t, "Anniversary", groups[0].Reason)
	assert.Equal(t, "Zoo trip", groups[1].Reason)
}

func TestLedger_Grouped_BlankReasonDisplayed(t *testing.T) {
	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2025, time.July, 1), engine.NewDay(2025, time.July, 1), "")
	require.NoError(t, err)

	groups := l.Grouped()

	require.Len(t, groups, 1)
	assert.Equal(t, engine.NoDescription, groups[0].Reason)
}

func TestLedger_Grouped_Idempotent(t *testing.T) {
	// Grouping is read-only: two calls without mutation in between
	// yield identical output.
	l := engine.NewLedger()
	_, err := l.AddRange(engine.NewDay(2025, time.August, 4), engine.NewDay(2025, time.August, 8), "Summer")
	require.NoError(t, err)
	_, err = l.AddRange(engine.NewDay(2025, time.August, 11), engine.NewDay(2025, time.August, 11), "Summer")
	require.NoError(t, err)

	first := l.Grouped()
	second := l.Grouped()

	assert.Equal(t, first, second)
}

func TestLedger_DuplicatesNotMerged(t *testing.T) {
	l := engine.NewLedger()
	day := engine.NewDay(2025, time.October, 1)
	_, err := l.AddRange(day, day, "Sick")
	require.NoError(t, err)
	_, err = l.AddRange(day, day, "Sick")
	require.NoError(t, err)

	assert.Equal(t, 2, l.Len(), "duplicate records are kept, not merged")
}
