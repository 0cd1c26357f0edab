package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leap/balance-engine/engine"
)

// =============================================================================
// SCHEDULE TESTS
// =============================================================================

func TestDefaultSchedule_StandardWeek(t *testing.T) {
	s := engine.DefaultSchedule()

	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		assert.Equal(t, 7.5, s.ExpectedHours(wd).Float64(), "weekday %s", wd)
	}
	assert.True(t, s.ExpectedHours(time.Saturday).IsZero())
	assert.True(t, s.ExpectedHours(time.Sunday).IsZero())
}

func TestSchedule_MissingWeekdayIsZero(t *testing.T) {
	// GIVEN: A schedule with only Monday configured
	// WHEN: Asking for any other weekday
	// THEN: Zero hours, no error, no panic

	s := engine.NewSchedule(map[time.Weekday]engine.Hours{
		time.Monday: engine.NewHours(8),
	})

	assert.Equal(t, 8.0, s.ExpectedHours(time.Monday).Float64())
	assert.True(t, s.ExpectedHours(time.Tuesday).IsZero())
	assert.True(t, s.ExpectedHours(time.Sunday).IsZero())
}

func TestSchedule_ReplaceIsWholesale(t *testing.T) {
	// GIVEN: The default schedule
	// WHEN: Replacing with a mapping that only mentions Wednesday
	// THEN: Every other weekday drops to zero — no partial merge

	s := engine.DefaultSchedule()
	s.Replace(map[time.Weekday]engine.Hours{
		time.Wednesday: engine.NewHours(6),
	})

	assert.Equal(t, 6.0, s.ExpectedHours(time.Wednesday).Float64())
	assert.True(t, s.ExpectedHours(time.Monday).IsZero(), "Monday should be gone after wholesale replace")
}

func TestSchedule_OutOfRangeValuesPropagate(t *testing.T) {
	// The engine does not clamp; the edit surface does. A bypassing
	// caller gets its values back unchanged instead of a crash.
	s := engine.NewSchedule(map[time.Weekday]engine.Hours{
		time.Monday: engine.NewHours(30),
	})
	assert.Equal(t, 30.0, s.ExpectedHours(time.Monday).Float64())
}

func TestSchedule_WeekTotal(t *testing.T) {
	assert.Equal(t, 37.5, engine.DefaultSchedule().WeekTotal().Float64())
}

func TestParseWeekday(t *testing.T) {
	wd, ok := engine.ParseWeekday("Wednesday")
	assert.True(t, ok)
	assert.Equal(t, time.Wednesday, wd)

	_, ok = engine.ParseWeekday("Wedensday")
	assert.False(t, ok)
}
