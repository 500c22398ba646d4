/*
errors.go - Centralized error types for the leave engine

PURPOSE:
  All engine errors in one place. The split matters: precondition violations
  (unsorted input, inverted ranges, broken policy) fail fast before the fold
  starts, because silent misordering would corrupt every subsequent balance.
  Data-consistency conditions (overdraft, forfeiture) are NOT errors - they
  surface as notification events and the fold continues.

USAGE:
  if errors.Is(err, leave.ErrUnsortedIntervals) { ... }
*/
package leave

import (
	"errors"
	"fmt"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInterval is returned when an interval has start after end.
	ErrInvalidInterval = errors.New("invalid interval: start after end")

	// ErrUnsortedIntervals is returned when the interval sequence is not
	// sorted ascending by start date.
	ErrUnsortedIntervals = errors.New("intervals not sorted by start date")

	// ErrOverlappingIntervals is returned by the loader when two intervals
	// of the same leave type share a day. The engine itself treats
	// non-overlap as a caller-guaranteed precondition.
	ErrOverlappingIntervals = errors.New("overlapping intervals of same leave type")

	// ErrInvalidPolicy is returned for accrual policies the engine cannot
	// run with (non-positive grant, missing deadline).
	ErrInvalidPolicy = errors.New("invalid accrual policy")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the offending interval
// =============================================================================

// IntervalError pins a precondition violation to a specific input interval.
type IntervalError struct {
	Index    int
	Start    calendar.Date
	End      calendar.Date
	Sentinel error
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("interval %d [%s, %s]: %v", e.Index, e.Start, e.End, e.Sentinel)
}

func (e *IntervalError) Unwrap() error { return e.Sentinel }
