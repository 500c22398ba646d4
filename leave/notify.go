/*
notify.go - Threshold-based notification policy

PURPOSE:
  Maps balance and deadline state to informational vs warning notifications.
  Two independent two-tier thresholds drive severity: one on the remaining
  balance ("running low"), one on the calendar days left until the
  forfeiture deadline ("about to expire").

SEVERITY RULES:
  Low balance:  0 <= balance <= warn  -> Warning
                0 <= balance <= info  -> Info
  Expiring:     deadline passed, balance was positive -> retrospective Warning
                days-until-deadline <= warn           -> Warning
                days-until-deadline <= info           -> Info

  Negative balances never produce low-balance events; the overdraft warning
  from the engine already covers them.

SEE ALSO:
  - engine.go: emits Forfeiture/TooMuchUsed events during the fold and runs
    Evaluate once against the final balance
  - config: threshold parsing, including the scalar-vs-pair rule
*/
package leave

import (
	"fmt"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// NOTIFICATION EVENTS
// =============================================================================

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

type EventKind string

const (
	EventLowBalance  EventKind = "low_balance"
	EventForfeiture  EventKind = "forfeiture"
	EventTooMuchUsed EventKind = "too_much_used"
)

// NotificationEvent is one emitted notification. Amount carries the days
// involved where that is meaningful (forfeited amount, overdraft depth).
type NotificationEvent struct {
	Severity Severity
	Kind     EventKind
	Message  string
	Date     calendar.Date
	Amount   Days
}

// =============================================================================
// THRESHOLDS
// =============================================================================

// Thresholds is a two-tier threshold pair with Warn <= Info. Fixed shape on
// purpose: the scalar-vs-list flexibility of raw config is resolved at
// configuration-parsing time, never inside the engine.
type Thresholds struct {
	Info int
	Warn int
}

// Normalize enforces Warn <= Info.
func (t Thresholds) Normalize() Thresholds {
	if t.Warn > t.Info {
		t.Warn = t.Info
	}
	return t
}

// =============================================================================
// NOTIFICATION POLICY
// =============================================================================

// NotificationPolicy holds both threshold pairs.
type NotificationPolicy struct {
	// LowBalance thresholds are in leave days of remaining balance.
	LowBalance Thresholds

	// Expiring thresholds are in calendar days until the deadline.
	Expiring Thresholds
}

// DefaultNotificationPolicy: nudge at 10 remaining days / 60 days before the
// deadline, warn at 5 / 30.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		LowBalance: Thresholds{Info: 10, Warn: 5},
		Expiring:   Thresholds{Info: 60, Warn: 30},
	}
}

// Evaluate inspects a balance/deadline state and returns the notifications
// it warrants. Pure; safe to call repeatedly.
func (p NotificationPolicy) Evaluate(balance Days, deadline, today calendar.Date) []NotificationEvent {
	var events []NotificationEvent

	if ev, ok := p.lowBalance(balance, today); ok {
		events = append(events, ev)
	}
	if ev, ok := p.expiring(balance, deadline, today); ok {
		events = append(events, ev)
	}
	return events
}

func (p NotificationPolicy) lowBalance(balance Days, today calendar.Date) (NotificationEvent, bool) {
	if balance.IsNegative() {
		return NotificationEvent{}, false
	}
	ev := NotificationEvent{
		Kind:   EventLowBalance,
		Date:   today,
		Amount: balance,
	}
	switch {
	case balance.LessThanOrEqual(DaysOfInt(p.LowBalance.Warn)):
		ev.Severity = SeverityWarning
		ev.Message = fmt.Sprintf("only %s leave days remaining", balance)
	case balance.LessThanOrEqual(DaysOfInt(p.LowBalance.Info)):
		ev.Severity = SeverityInfo
		ev.Message = fmt.Sprintf("%s leave days remaining", balance)
	default:
		return NotificationEvent{}, false
	}
	return ev, true
}

func (p NotificationPolicy) expiring(balance Days, deadline, today calendar.Date) (NotificationEvent, bool) {
	if !balance.IsPositive() || deadline.IsZero() {
		return NotificationEvent{}, false
	}

	if deadline.Before(today) {
		// Retrospective framing: the unused balance was already forfeited.
		return NotificationEvent{
			Severity: SeverityWarning,
			Kind:     EventForfeiture,
			Message:  fmt.Sprintf("%s unused leave days were already forfeited on %s", balance, deadline),
			Date:     deadline,
			Amount:   balance,
		}, true
	}

	left := today.DaysUntil(deadline)
	ev := NotificationEvent{
		Kind:   EventForfeiture,
		Date:   deadline,
		Amount: balance,
	}
	switch {
	case left <= p.Expiring.Warn:
		ev.Severity = SeverityWarning
		ev.Message = fmt.Sprintf("%s leave days expire in %d days (deadline %s)", balance, left, deadline)
	case left <= p.Expiring.Info:
		ev.Severity = SeverityInfo
		ev.Message = fmt.Sprintf("%s leave days expire on %s", balance, deadline)
	default:
		return NotificationEvent{}, false
	}
	return ev, true
}

// ForfeitureSeverity decides how loudly a forfeiture found during the fold
// is reported: already lost or imminent means Warning, otherwise Info.
func (p NotificationPolicy) ForfeitureSeverity(deadline, today calendar.Date) Severity {
	if deadline.Before(today) || today.DaysUntil(deadline) <= p.Expiring.Warn {
		return SeverityWarning
	}
	return SeverityInfo
}
