/*
counter.go - Chargeable leave-day counting

PURPOSE:
  Counts how many days of an interval actually charge against the
  entitlement: business days only, minus days already consumed under the
  other leave type, with Christmas Eve and New Year's Eve contributing 0.5
  when the half-day rule is active.

SHARED CONSUMED POOL:
  Vacation and sick leave draw from one pool of already-consumed dates,
  updated in ledger order. A day recorded as sick is suppressed from
  vacation counting and vice versa - a single calendar day is never charged
  twice across types. Count() reads the pool; Commit() updates it. The
  engine counts sub-ranges (old-year check, deadline split) without
  committing, then commits exactly once per interval.

HALF-DAY CARRY:
  Count() reports raw 0.5 fractions. Rounding a fractional count to a whole
  debit - and carrying the leftover half day across the report - is the
  engine's job (see engine.go settleHalfDay), not the counter's, because the
  carry is report-wide state.

SEE ALSO:
  - calendar/blocked.go: the consumed pool is applied as a LeaveBlocked view
  - engine.go: the only caller that commits
*/
package leave

import "github.com/warp/leave-engine/calendar"

// =============================================================================
// DAY COUNTER
// =============================================================================

// DayCounter counts chargeable leave days against a calendar, tracking the
// shared pool of dates already consumed by either leave type. One counter
// belongs to one engine run; it is not safe for concurrent use and must not
// be reused across runs.
type DayCounter struct {
	cal         calendar.Calendar
	halfDayRule bool
	consumed    map[calendar.Date]Type
}

// NewDayCounter creates a counter with an empty consumed pool.
func NewDayCounter(cal calendar.Calendar, halfDayRule bool) *DayCounter {
	return &DayCounter{
		cal:         cal,
		halfDayRule: halfDayRule,
		consumed:    make(map[calendar.Date]Type),
	}
}

// Count returns the chargeable day count for [start, end] under leaveType.
// Non-negative; fractional only at 0.5 granularity. A start after end counts
// as zero. Count does not modify the consumed pool.
func (c *DayCounter) Count(start, end calendar.Date, leaveType Type) Days {
	if start.After(end) {
		return ZeroDays()
	}

	view := calendar.NewLeaveBlocked(c.cal, c.consumedBy(leaveType.Other()))

	total := ZeroDays()
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if !view.IsBusinessDay(d) {
			continue
		}
		if c.halfDayRule && leaveType == TypeVacation && calendar.IsHalfDayEve(d) {
			total = total.Add(HalfDay())
		} else {
			total = total.Add(DaysOfInt(1))
		}
	}
	return total
}

// Commit records the interval's chargeable days in the consumed pool under
// leaveType. Days already held by the other type stay with that type.
func (c *DayCounter) Commit(start, end calendar.Date, leaveType Type) {
	if start.After(end) {
		return
	}
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if !c.cal.IsBusinessDay(d) {
			continue
		}
		if _, taken := c.consumed[d]; taken {
			continue
		}
		c.consumed[d] = leaveType
	}
}

// ConsumedBy returns the dates held by the given leave type, in no
// particular order.
func (c *DayCounter) ConsumedBy(leaveType Type) []calendar.Date {
	return c.consumedBy(leaveType)
}

func (c *DayCounter) consumedBy(leaveType Type) []calendar.Date {
	var dates []calendar.Date
	for d, t := range c.consumed {
		if t == leaveType {
			dates = append(dates, d)
		}
	}
	return dates
}
