/*
store.go - Persistence interface for session state

PURPOSE:
  Defines the interface between the engine's callers and wherever the
  session's schedule and leave records live. The engine itself is pure;
  the Store exists so the HTTP service can serialize mutation+read of
  shared session state behind one boundary, and so tests can swap in a
  trivial in-memory implementation.

SESSION SCOPE:
  Nothing is meant to outlive the session. The SQLite implementation
  defaults to ":memory:" for exactly that reason — it exists for the
  transactional boundary and the SQL removal semantics, not durability.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite (":memory:" by default)
  - engine/store/memory.go: Plain in-memory for testing

SEE ALSO:
  - ledger.go: The in-engine ledger the store loads into
*/
package engine

import "context"

// Store persists the session's schedule and leave records.
type Store interface {
	// SaveSchedule replaces the stored schedule wholesale.
	SaveSchedule(ctx context.Context, schedule *Schedule) error

	// LoadSchedule returns the stored schedule, or the default schedule
	// when none has been saved yet.
	LoadSchedule(ctx context.Context) (*Schedule, error)

	// AddLeave appends leave records. Duplicates are stored as-is.
	AddLeave(ctx context.Context, records []LeaveRecord) error

	// RemoveLeave deletes every record whose display reason equals
	// reason and whose date falls within rng. Returns the number of
	// records removed.
	RemoveLeave(ctx context.Context, reason string, rng DateRange) (int, error)

	// ListLeave returns all stored leave records.
	ListLeave(ctx context.Context) ([]LeaveRecord, error)
}
