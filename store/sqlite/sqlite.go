/*
Package sqlite provides a SQLite-backed implementation of engine.Store.

PURPOSE:
  Holds the session's schedule and leave records in SQLite. The default
  path is ":memory:", which keeps the session-only lifetime: when the
  process exits, everything is gone. The in-memory database is opened
  with a shared cache so every connection in the sql.DB pool sees the
  same schema and rows. A file path works too, but nothing in the
  system depends on data surviving a restart.

KEY TABLES:
  schedule:      One row per weekday, hours stored as decimal text
  leave_records: One row per leave day; duplicates are legitimate rows

REMOVAL SEMANTICS:
  RemoveLeave applies the blank-reason substitution in SQL: a stored
  reason that trims to empty compares as "(No description)", matching
  the display grouping. Records of the same reason outside the given
  range are untouched.

CONCURRENCY:
  Uses sync.Mutex around mutation+read so concurrent HTTP callers can't
  interleave a removal with a grouped listing.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - engine/store.go: Interface definition
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/leap/balance-engine/engine"
)

// Store implements engine.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// memSeq distinguishes in-memory databases opened in one process.
var memSeq atomic.Int64

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL"
	if dbPath == ":memory:" {
		// A plain ":memory:" DSN gives every pool connection its own
		// private, empty database — only the connection that ran the
		// migration would see the schema. A named shared-cache memory
		// database is visible to every connection in the pool.
		dsn = fmt.Sprintf("file:session%d?mode=memory&cache=shared&_foreign_keys=on", memSeq.Add(1))
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Expected hours per weekday (empty until the first save)
	CREATE TABLE IF NOT EXISTS schedule (
		weekday TEXT PRIMARY KEY,
		hours TEXT NOT NULL
	);

	-- Leave records, one row per leave day. Duplicates are allowed.
	CREATE TABLE IF NOT EXISTS leave_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_leave_records_date
		ON leave_records(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULE
// =============================================================================

// SaveSchedule replaces the stored schedule wholesale: delete then
// insert inside one transaction, so there are no partial updates.
func (s *Store) SaveSchedule(ctx context.Context, schedule *engine.Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule`); err != nil {
		return err
	}
	for wd, hours := range schedule.Hours() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedule (weekday, hours) VALUES (?, ?)`,
			wd.String(), hours.Value.String())
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSchedule returns the stored schedule, or the default schedule when
// none has been saved yet.
func (s *Store) LoadSchedule(ctx context.Context) (*engine.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT weekday, hours FROM schedule`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(map[time.Weekday]engine.Hours)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		wd, ok := engine.ParseWeekday(name)
		if !ok {
			continue
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("corrupt schedule hours for %s: %w", name, err)
		}
		hours[wd] = engine.Hours{Value: d}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(hours) == 0 {
		return engine.DefaultSchedule(), nil
	}
	return engine.NewSchedule(hours), nil
}

// =============================================================================
// LEAVE RECORDS
// =============================================================================

// AddLeave appends leave records atomically.
func (s *Store) AddLeave(ctx context.Context, records []engine.LeaveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leave_records (date, reason) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Date.String(), rec.Reason); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RemoveLeave deletes records matching the display reason within the
// range. A stored reason that trims to empty compares as the
// "(No description)" substitute.
func (s *Store) RemoveLeave(ctx context.Context, reason string, rng engine.DateRange) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM leave_records
		WHERE date >= ? AND date <= ?
		  AND (CASE WHEN TRIM(reason) = '' THEN ? ELSE reason END) = ?`,
		rng.Start.String(), rng.End.String(), engine.NoDescription, reason)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ListLeave returns all stored leave records.
func (s *Store) ListLeave(ctx context.Context) ([]engine.LeaveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT date, reason FROM leave_records ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.LeaveRecord
	for rows.Next() {
		var dateStr, reason string
		if err := rows.Scan(&dateStr, &reason); err != nil {
			return nil, err
		}
		day, err := engine.ParseDay(dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt leave date %q: %w", dateStr, err)
		}
		records = append(records, engine.LeaveRecord{Date: day, Reason: reason})
	}
	return records, rows.Err()
}
