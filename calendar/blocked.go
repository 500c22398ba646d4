package calendar

// =============================================================================
// LEAVE-BLOCKED CALENDAR - Regional calendar minus already-consumed days
// =============================================================================

// LeaveBlocked wraps another Calendar and additionally treats an explicit
// date set as non-business days. The day counter uses it to exclude days
// already charged under the other leave type: a day spent sick is not a
// chargeable vacation day, whatever the regional calendar says.
type LeaveBlocked struct {
	inner   Calendar
	blocked map[Date]struct{}
}

// NewLeaveBlocked wraps inner, blocking every date in the given set.
// The set is copied; later mutation of the argument has no effect.
func NewLeaveBlocked(inner Calendar, blocked []Date) *LeaveBlocked {
	set := make(map[Date]struct{}, len(blocked))
	for _, d := range blocked {
		set[d] = struct{}{}
	}
	return &LeaveBlocked{inner: inner, blocked: set}
}

func (b *LeaveBlocked) IsBusinessDay(d Date) bool {
	if _, ok := b.blocked[d]; ok {
		return false
	}
	return b.inner.IsBusinessDay(d)
}

// IsHoliday delegates to the wrapped calendar; blocking a day does not make
// it a public holiday.
func (b *LeaveBlocked) IsHoliday(d Date) bool {
	return b.inner.IsHoliday(d)
}

// IsBlocked reports whether the date is in the injected block set.
func (b *LeaveBlocked) IsBlocked(d Date) bool {
	_, ok := b.blocked[d]
	return ok
}
