/*
Package leave implements the leave balance accrual engine.

PURPOSE:
  Converts a chronologically ordered sequence of leave intervals into a
  running balance of remaining annual leave entitlement, enforcing a
  jurisdiction's accrual rules: annual grants at year boundaries,
  deadline-based forfeiture of unused entitlement, partial carry-over across
  years, and the half-day correction for Christmas Eve and New Year's Eve.

KEY CONCEPTS IN THIS FILE (types.go):
  - Type:     vacation vs sick leave
  - Interval: one contiguous recorded leave range (input)
  - Record:   one per-interval output row with the balance after its debit

DESIGN PRINCIPLES:
  1. Immutability: Intervals are read-only inputs; Records are emitted once
  2. Precision: Days uses decimal.Decimal, fractional only at 0.5
  3. Purity: the engine mutates nothing but its own run-local state

SEE ALSO:
  - counter.go: chargeable-day counting
  - engine.go:  the sequential accrual fold
  - notify.go:  threshold-based notification events
*/
package leave

import "github.com/warp/leave-engine/calendar"

// =============================================================================
// LEAVE TYPE
// =============================================================================

// Type distinguishes the two leave kinds that draw from the shared
// consumed-day pool. Only vacation debits the entitlement balance.
type Type string

const (
	TypeVacation Type = "vacation"
	TypeSick     Type = "sick"
)

// Other returns the opposite leave type.
func (t Type) Other() Type {
	if t == TypeVacation {
		return TypeSick
	}
	return TypeVacation
}

// =============================================================================
// INTERVAL - One recorded leave range (input)
// =============================================================================

// Interval is a contiguous date range recorded as one kind of leave.
// Invariant: Start <= End. Produced by the loader, consumed read-only by
// the engine, ordered chronologically by Start.
type Interval struct {
	Reason string
	Type   Type
	Start  calendar.Date
	End    calendar.Date
}

// Contains reports whether the date falls inside the interval.
func (iv Interval) Contains(d calendar.Date) bool {
	return d.AfterOrEqual(iv.Start) && d.BeforeOrEqual(iv.End)
}

// Overlaps reports whether two intervals share at least one day.
func (iv Interval) Overlaps(other Interval) bool {
	return !iv.End.Before(other.Start) && !other.End.Before(iv.Start)
}

func (iv Interval) String() string {
	return string(iv.Type) + " [" + iv.Start.String() + ", " + iv.End.String() + "]"
}

// =============================================================================
// RECORD - Engine output row, one per input interval, same order
// =============================================================================

// Record is the per-interval result: the chargeable day count and the
// entitlement balance after this interval's debit. Sick intervals carry
// their counted days but leave the balance untouched.
type Record struct {
	Reason  string
	Type    Type
	Start   calendar.Date
	End     calendar.Date
	Days    Days
	Balance Days
}
