package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leap/balance-engine/engine"
)

func setWindowFlags(t *testing.T, from, to string) {
	t.Helper()
	flagFrom, flagTo = from, to
	t.Cleanup(func() { flagFrom, flagTo = "", "" })
}

func TestResolveWindow_BothFlags(t *testing.T) {
	setWindowFlags(t, "2024-01-01", "2024-01-07")

	rng, err := resolveWindow(context.Background(), nil, "")
	require.NoError(t, err)

	assert.Equal(t, engine.NewDay(2024, time.January, 1), rng.Start)
	assert.Equal(t, engine.NewDay(2024, time.January, 7), rng.End)
}

func TestResolveWindow_SingleBoundRejected(t *testing.T) {
	// GIVEN: Only one of --from/--to
	// WHEN: Resolving the window
	// THEN: A clear pairing error, not a parse error on the empty bound

	setWindowFlags(t, "2024-01-01", "")
	_, err := resolveWindow(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from and --to must be given together")

	setWindowFlags(t, "", "2024-01-07")
	_, err = resolveWindow(context.Background(), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from and --to must be given together")
}

func TestResolveWindow_ReversedFlags(t *testing.T) {
	setWindowFlags(t, "2024-01-07", "2024-01-01")

	_, err := resolveWindow(context.Background(), nil, "")
	assert.ErrorIs(t, err, engine.ErrInvalidRange)
}

func TestScheduleFromFlags_OverridesAndClamps(t *testing.T) {
	flagHours = []string{"Friday=4", "Saturday=30"}
	t.Cleanup(func() { flagHours = nil })

	schedule, err := scheduleFromFlags()
	require.NoError(t, err)

	assert.Equal(t, 4.0, schedule.ExpectedHours(time.Friday).Float64())
	assert.Equal(t, 24.0, schedule.ExpectedHours(time.Saturday).Float64())
	assert.Equal(t, 7.5, schedule.ExpectedHours(time.Monday).Float64())
}

func TestScheduleFromFlags_Invalid(t *testing.T) {
	flagHours = []string{"Funday=5"}
	t.Cleanup(func() { flagHours = nil })

	_, err := scheduleFromFlags()
	assert.Error(t, err)
}
