/*
errors.go - Centralized error types for the engine

PURPOSE:
  All engine error types in one place. The engine has exactly one error
  kind of its own: an invalid date range. Everything else is total —
  missing schedule entries default to zero, empty ledgers and empty
  logged-entry slices contribute nothing. Provider failures are a
  separate kind owned by the provider package; the engine performs no
  I/O and can never produce one.

USAGE:
  Callers match with errors.Is:

    if errors.Is(err, engine.ErrInvalidRange) {
        // 400, not 500
    }

SEE ALSO:
  - time.go: NewDateRange, the single validation point
  - provider/harvest: ErrProvider for transport/auth failures
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when a range-accepting operation is
	// given a start date after its end date. The check happens before
	// any computation or mutation; a failed operation never partially
	// applies.
	ErrInvalidRange = errors.New("invalid range: start after end")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidRangeError reports the offending dates.
type InvalidRangeError struct {
	Start Day
	End   Day
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: start %s after end %s", e.Start, e.End)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// IsClientError returns true if the error is due to invalid user input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange)
}
