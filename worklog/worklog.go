/*
Package worklog folds clocked work spans into a surplus/deficit balance.

PURPOSE:
  The companion balance to leave entitlement: total clocked time measured
  against the calendar's business-day target. Leave days are credited at the
  daily target, so taking vacation never shows up as missing hours.

SCOPE:
  Only the resulting totals matter downstream; this package does no file
  parsing beyond clock strings and keeps no state between calls.
*/
package worklog

import (
	"fmt"
	"time"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// SPANS
// =============================================================================

// Span is one clock-in/clock-out pair.
type Span struct {
	Start time.Time
	End   time.Time
}

func (s Span) Duration() time.Duration { return s.End.Sub(s.Start) }

// ParseSpan builds a span from a date and "HH:MM" clock strings.
func ParseSpan(day calendar.Date, in, out string) (Span, error) {
	clockIn, err := parseClock(day, in)
	if err != nil {
		return Span{}, err
	}
	clockOut, err := parseClock(day, out)
	if err != nil {
		return Span{}, err
	}
	if clockOut.Before(clockIn) {
		return Span{}, fmt.Errorf("clock-out %s before clock-in %s on %s", out, in, day)
	}
	return Span{Start: clockIn, End: clockOut}, nil
}

func parseClock(day calendar.Date, s string) (time.Time, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad clock time %q: %w", s, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the worked-time balance over a reporting window.
type Summary struct {
	Worked   time.Duration
	Credited time.Duration // leave days credited at the daily target
	Target   time.Duration
}

// Surplus is positive when more was worked (or credited) than owed.
func (s Summary) Surplus() time.Duration { return s.Worked + s.Credited - s.Target }

// Tracker computes worked-time summaries against a calendar.
type Tracker struct {
	cal    calendar.Calendar
	perDay time.Duration
}

// NewTracker creates a tracker with the given daily target (e.g. 8h).
func NewTracker(cal calendar.Calendar, perDay time.Duration) *Tracker {
	return &Tracker{cal: cal, perDay: perDay}
}

// Summarize totals the spans against the business-day target of [from, to].
// creditedDays is the number of leave days to credit at the daily target;
// fractional half days are respected.
func (t *Tracker) Summarize(spans []Span, from, to calendar.Date, creditedDays float64) (Summary, error) {
	var worked time.Duration
	for i, sp := range spans {
		if sp.End.Before(sp.Start) {
			return Summary{}, fmt.Errorf("span %d: end before start", i)
		}
		worked += sp.Duration()
	}

	target := time.Duration(calendar.BusinessDays(t.cal, from, to)) * t.perDay
	credited := time.Duration(creditedDays * float64(t.perDay))

	return Summary{Worked: worked, Credited: credited, Target: target}, nil
}
