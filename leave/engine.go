/*
engine.go - The balance accrual fold

PURPOSE:
  Walks the chronologically ordered leave intervals once and threads the
  cross-interval state through: current year, running balance, current
  deadline, pending half day. This is the only place that state lives.

PER-INTERVAL STEPS:
  1. Year-boundary grant    - grant AnnualGrant per calendar year advanced;
                              advisory old-year overuse check on intervals
                              that straddle the boundary
  2. Deadline computation   - this year's deadline; one extra grant may stay
                              outstanding while the interval ends on or
                              before it
  3. Forfeiture cap         - balance above cap + still-usable-before-deadline
                              days is forfeited; runs on EVERY interval since
                              the balance may exceed the cap from an earlier
                              grant
  4. Debit                  - vacation subtracts its settled day count;
                              sick leave only feeds the consumed pool
  5. Overdraft check        - negative balance warns but is never clamped;
                              it is a valid, visible state

  After the fold the notification policy is evaluated once against the
  final balance.

STATE OWNERSHIP:
  engineState is owned by exactly one Run invocation and discarded at the
  end, except for the fields the caller persists across sessions (balance,
  pending half day). Nothing is shared between runs; re-running with a
  different starting balance is a supported what-if.

SEE ALSO:
  - counter.go: chargeable-day counting and the shared consumed pool
  - notify.go:  severity decisions
*/
package leave

import (
	"fmt"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes leave balances. It holds only immutable collaborators;
// all per-run state lives in engineState, so one Engine may serve many runs.
type Engine struct {
	cal    calendar.Calendar
	policy AccrualPolicy
	notify NotificationPolicy
}

// NewEngine validates the policy and returns an engine.
func NewEngine(cal calendar.Calendar, policy AccrualPolicy, notify NotificationPolicy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cal: cal, policy: policy, notify: notify}, nil
}

// RunInput bundles one run's inputs.
type RunInput struct {
	// Intervals must be sorted ascending by Start, with Start <= End each.
	// Non-overlap within one leave type is a caller-guaranteed precondition
	// (the loader enforces it); violating it double-charges days.
	Intervals []Interval

	// StartingBalance is the entitlement carried into the run, recovered
	// from a prior session or configured.
	StartingBalance Days

	// ReferenceYear is the calendar year in effect at the start of the
	// reporting window.
	ReferenceYear int

	// PendingHalfDay restores the report-wide half-day carry from a prior
	// session.
	PendingHalfDay bool

	// Today anchors "already forfeited" vs "about to be forfeited" framing.
	Today calendar.Date
}

// RunOutput is everything a run produces.
type RunOutput struct {
	Records        []Record
	Events         []NotificationEvent
	FinalBalance   Days
	PendingHalfDay bool

	// Deadline is the effective forfeiture deadline at the end of the run.
	Deadline calendar.Date
}

// engineState is the fold's mutable state, owned by one Run call.
type engineState struct {
	year           int
	balance        Days
	deadline       calendar.Date
	pendingHalfDay bool
}

// Run executes the sequential fold. It is pure: inputs are not mutated, no
// I/O happens, and the same input always yields the same output.
func (e *Engine) Run(in RunInput) (*RunOutput, error) {
	if err := validateIntervals(in.Intervals); err != nil {
		return nil, err
	}

	counter := NewDayCounter(e.cal, e.policy.HalfDayRule)
	st := engineState{
		year:           in.ReferenceYear,
		balance:        in.StartingBalance,
		deadline:       e.policy.DeadlineIn(in.ReferenceYear),
		pendingHalfDay: in.PendingHalfDay,
	}

	out := &RunOutput{Records: make([]Record, 0, len(in.Intervals))}

	for _, iv := range in.Intervals {
		e.step(&st, counter, iv, in.Today, out)
	}

	// Once the ledger has moved past this cycle's deadline, its forfeiture
	// already happened inside the fold; the balance that survived expires a
	// year later. Report that next deadline, not the spent one.
	if n := len(in.Intervals); n > 0 && in.Intervals[n-1].End.After(st.deadline) {
		st.deadline = e.policy.DeadlineIn(st.deadline.Year() + 1)
	}

	out.Events = append(out.Events, e.notify.Evaluate(st.balance, st.deadline, in.Today)...)
	out.FinalBalance = st.balance
	out.PendingHalfDay = st.pendingHalfDay
	out.Deadline = st.deadline
	return out, nil
}

// step processes one interval: grant, deadline, forfeiture, debit, overdraft.
func (e *Engine) step(st *engineState, counter *DayCounter, iv Interval, today calendar.Date, out *RunOutput) {
	// 1. Year-boundary grant.
	if endYear := iv.End.Year(); endYear > st.year {
		if iv.Type == TypeVacation && iv.Start.Year() == st.year {
			// The old year's leftover entitlement, not the incoming grant,
			// must cover the days taken in the old year. Advisory only.
			oldYearDays := counter.Count(iv.Start, calendar.EndOfYear(st.year), iv.Type)
			if oldYearDays.GreaterThan(st.balance) {
				out.Events = append(out.Events, NotificationEvent{
					Severity: SeverityWarning,
					Kind:     EventTooMuchUsed,
					Message: fmt.Sprintf("%s days taken in %d exceed the %s still available before the new grant",
						oldYearDays, st.year, st.balance),
					Date:   iv.Start,
					Amount: oldYearDays.Sub(st.balance),
				})
			}
		}
		st.balance = st.balance.Add(e.policy.Grant().MulInt(endYear - st.year))
		st.year = endYear
	}

	// 2. Effective deadline for the current cycle. While the interval ends
	// on or before its own year's deadline, the previous grant has not yet
	// expired, so one more grant may remain outstanding.
	st.deadline = e.policy.DeadlineIn(st.year)
	maxFactor := e.policy.CarryFactor
	if iv.End.BeforeOrEqual(st.deadline) {
		maxFactor++
	}

	full := counter.Count(iv.Start, iv.End, iv.Type)

	// 3. Deadline-based forfeiture. Not gated on crossing a deadline: the
	// balance may already exceed the cap from a previous grant.
	daysBeforeDeadline := ZeroDays()
	switch {
	case iv.Start.After(st.deadline):
		// nothing chargeable before the deadline
	case iv.End.BeforeOrEqual(st.deadline):
		daysBeforeDeadline = full
	default:
		daysBeforeDeadline = counter.Count(iv.Start, st.deadline, iv.Type)
	}

	allowed := e.policy.Grant().MulInt(maxFactor)
	overhead := st.balance.Sub(allowed).Sub(daysBeforeDeadline)
	if overhead.IsPositive() {
		st.balance = st.balance.Sub(overhead)
		severity := e.notify.ForfeitureSeverity(st.deadline, today)
		message := fmt.Sprintf("%s leave days will be forfeited on %s", overhead, st.deadline)
		if st.deadline.Before(today) {
			message = fmt.Sprintf("%s leave days were forfeited on %s", overhead, st.deadline)
		}
		out.Events = append(out.Events, NotificationEvent{
			Severity: severity,
			Kind:     EventForfeiture,
			Message:  message,
			Date:     st.deadline,
			Amount:   overhead,
		})
	}

	// 4. Debit. Only vacation charges the balance; sick intervals still
	// commit their days to the shared pool.
	charged := full
	if iv.Type == TypeVacation {
		charged = settleHalfDay(st, full)
		st.balance = st.balance.Sub(charged)
	}
	counter.Commit(iv.Start, iv.End, iv.Type)

	out.Records = append(out.Records, Record{
		Reason:  iv.Reason,
		Type:    iv.Type,
		Start:   iv.Start,
		End:     iv.End,
		Days:    charged,
		Balance: st.balance,
	})

	// 5. Overdraft check. The balance stays negative on purpose: it tells
	// the subject how much later leave in the cycle must shrink.
	if iv.Type == TypeVacation && st.balance.IsNegative() {
		out.Events = append(out.Events, NotificationEvent{
			Severity: SeverityWarning,
			Kind:     EventTooMuchUsed,
			Message: fmt.Sprintf("interval %s overdraws the balance by %s days; reduce later leave accordingly",
				iv, st.balance.Abs()),
			Date:   iv.End,
			Amount: st.balance.Abs(),
		})
	}
}

// settleHalfDay turns a possibly .5-fractional count into a whole-day debit,
// consuming or producing the report-wide half-day carry. An odd half day is
// rounded up and remembered; the next fractional count rounds down against
// the carry, so a single real half day is never double-charged across two
// adjacent intervals.
func settleHalfDay(st *engineState, count Days) Days {
	if !count.HasHalfFraction() {
		return count
	}
	if st.pendingHalfDay {
		st.pendingHalfDay = false
		return count.Sub(HalfDay())
	}
	st.pendingHalfDay = true
	return count.Add(HalfDay())
}

// validateIntervals fails fast on contract violations: silent misordering
// would corrupt every subsequent balance.
func validateIntervals(intervals []Interval) error {
	for i, iv := range intervals {
		if iv.Start.After(iv.End) {
			return &IntervalError{Index: i, Start: iv.Start, End: iv.End, Sentinel: ErrInvalidInterval}
		}
		if i > 0 && iv.Start.Before(intervals[i-1].Start) {
			return &IntervalError{Index: i, Start: iv.Start, End: iv.End, Sentinel: ErrUnsortedIntervals}
		}
	}
	return nil
}
