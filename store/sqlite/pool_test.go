package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leap/balance-engine/engine"
)

func TestNew_MemoryStateSharedAcrossPoolConnections(t *testing.T) {
	// GIVEN: The default in-memory store holding one leave record
	// WHEN: Querying from a second, simultaneously open pool connection
	// THEN: The schema and the record are visible there too

	store, err := New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.AddLeave(ctx, []engine.LeaveRecord{
		{Date: engine.NewDay(2025, time.May, 1), Reason: "Sick"},
	}))

	first, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer first.Close()

	second, err := store.db.Conn(ctx)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leave_records`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNew_MemoryStoresAreIsolated(t *testing.T) {
	// Two in-memory stores in one process must not share a database.
	a, err := New(":memory:")
	require.NoError(t, err)
	defer a.Close()

	b, err := New(":memory:")
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, a.AddLeave(ctx, []engine.LeaveRecord{
		{Date: engine.NewDay(2025, time.May, 1), Reason: "Sick"},
	}))

	listed, err := b.ListLeave(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
