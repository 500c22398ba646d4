/*
Package calendar answers the only question the accrual engine ever asks about
a date: does it count?

PURPOSE:
  Provides business-day and public-holiday predicates for a configurable
  region. The leave day counter charges only business days against the
  entitlement balance, so everything downstream depends on these answers.

CAPABILITY VARIANTS:
  Regional:     weekend rule + an injected public-holiday date set
  LeaveBlocked: wraps another Calendar and additionally blocks an explicit
                date set (days already consumed under another leave type)

DATE SETS ARE VALUES, NOT GLOBALS:
  Every calendar is parameterized by the date set it was constructed with.
  There is no package-level mutable holiday registry; two calendars for two
  regions coexist without interference.

SEE ALSO:
  - region.go: built-in German regional holiday sets, YAML region files
  - blocked.go: LeaveBlocked wrapper
*/
package calendar

// Calendar decides whether a date is a chargeable business day.
type Calendar interface {
	// IsBusinessDay reports whether the date is a working day:
	// not a weekend and not a public holiday.
	IsBusinessDay(d Date) bool

	// IsHoliday reports whether the date is a public holiday,
	// independent of the weekend rule.
	IsHoliday(d Date) bool
}

// BusinessDays counts the business days in [from, to], inclusive both ends.
// Returns 0 when from is after to.
func BusinessDays(cal Calendar, from, to Date) int {
	n := 0
	for d := from; d.BeforeOrEqual(to); d = d.AddDays(1) {
		if cal.IsBusinessDay(d) {
			n++
		}
	}
	return n
}
