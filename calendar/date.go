package calendar

import "time"

// =============================================================================
// DATE - Day-granular time abstraction (this IS a day-counting system)
// =============================================================================

// Date is a calendar day, normalized to midnight UTC. All balance math in this
// system happens at day granularity; Date keeps clock times out of it.
type Date struct {
	t time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time.Time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date  { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddYears(n int) Date { return Date{t: d.t.AddDate(n, 0, 0)} }

// DaysUntil returns the number of calendar days from d to other.
// Negative if other is in the past.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// Year boundary helpers
func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }

// =============================================================================
// MONTH-DAY - A recurring annual date (deadline anchor)
// =============================================================================

// MonthDay is a fixed month/day independent of year, e.g. the March 31
// forfeiture deadline. Combine with a year via In().
type MonthDay struct {
	Month time.Month
	Day   int
}

// ParseMonthDay parses "01-02" (month-day).
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("01-02", s)
	if err != nil {
		return MonthDay{}, err
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

// In anchors the month-day in a concrete year.
func (md MonthDay) In(year int) Date {
	return NewDate(year, md.Month, md.Day)
}

func (md MonthDay) String() string {
	return md.In(2000).t.Format("01-02")
}

// =============================================================================
// HALF-DAY EVES
// =============================================================================
// Christmas Eve and New Year's Eve are the only two dates the half-day rule
// ever applies to. They are fixed; no calendar lookup involved.

func IsChristmasEve(d Date) bool { return d.Month() == time.December && d.Day() == 24 }
func IsNewYearsEve(d Date) bool  { return d.Month() == time.December && d.Day() == 31 }

// IsHalfDayEve reports whether the date is one of the two eves that count as
// half a leave day under the half-day rule.
func IsHalfDayEve(d Date) bool { return IsChristmasEve(d) || IsNewYearsEve(d) }
