package leave_test

import (
	"testing"
	"time"

	"github.com/warp/leave-engine/calendar"
	"github.com/warp/leave-engine/leave"
)

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	parsed, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return parsed
}

// =============================================================================
// LOW-BALANCE TIERS
// =============================================================================

func TestEvaluate_LowBalanceTiers(t *testing.T) {
	p := leave.DefaultNotificationPolicy() // info at 10, warn at 5
	today := d(2025, time.June, 1)
	noDeadline := d(2026, time.March, 31).AddYears(10) // far away, stays quiet

	cases := []struct {
		balance  leave.Days
		severity leave.Severity
		want     int
	}{
		{days(11), "", 0},
		{days(10), leave.SeverityInfo, 1},
		{days(6), leave.SeverityInfo, 1},
		{days(5), leave.SeverityWarning, 1},
		{days(0), leave.SeverityWarning, 1},
		{days(-2), "", 0}, // overdraft is the engine's warning, not ours
	}

	for _, tc := range cases {
		events := p.Evaluate(tc.balance, noDeadline, today)
		low := 0
		for _, ev := range events {
			if ev.Kind != leave.EventLowBalance {
				continue
			}
			low++
			if ev.Severity != tc.severity {
				t.Errorf("balance %s: expected severity %s, got %s", tc.balance, tc.severity, ev.Severity)
			}
		}
		if low != tc.want {
			t.Errorf("balance %s: expected %d low-balance events, got %d", tc.balance, tc.want, low)
		}
	}
}

// =============================================================================
// EXPIRING TIERS
// =============================================================================

func TestEvaluate_ExpiringTiers(t *testing.T) {
	p := leave.DefaultNotificationPolicy() // info at 60 days out, warn at 30
	deadline := d(2026, time.March, 31)
	balance := days(20)

	cases := []struct {
		today    string
		severity leave.Severity
		want     int
	}{
		{"2026-01-29", "", 0},                    // 61 days out
		{"2026-01-30", leave.SeverityInfo, 1},    // 60 days out
		{"2026-03-01", leave.SeverityWarning, 1}, // 30 days out
		{"2026-03-31", leave.SeverityWarning, 1}, // deadline day
	}

	for _, tc := range cases {
		today := mustDate(t, tc.today)
		events := p.Evaluate(balance, deadline, today)
		got := 0
		for _, ev := range events {
			if ev.Kind != leave.EventForfeiture {
				continue
			}
			got++
			if ev.Severity != tc.severity {
				t.Errorf("today %s: expected severity %s, got %s", tc.today, tc.severity, ev.Severity)
			}
		}
		if got != tc.want {
			t.Errorf("today %s: expected %d expiring events, got %d", tc.today, tc.want, got)
		}
	}
}

func TestEvaluate_DeadlinePassed_RetrospectiveWarning(t *testing.T) {
	// GIVEN: A positive balance whose deadline is already behind us
	// WHEN: Evaluating
	// THEN: One retrospective forfeiture warning, framed in the past tense

	p := leave.DefaultNotificationPolicy()
	events := p.Evaluate(days(12), d(2026, time.March, 31), d(2026, time.April, 2))

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != leave.EventForfeiture || ev.Severity != leave.SeverityWarning {
		t.Errorf("expected a forfeiture warning, got %s/%s", ev.Kind, ev.Severity)
	}
	assertDays(t, "forfeited amount", ev.Amount, days(12))
}

func TestEvaluate_NoDeadline_NoExpiringEvents(t *testing.T) {
	p := leave.DefaultNotificationPolicy()

	events := p.Evaluate(days(20), calendar.Date{}, d(2026, time.January, 1))
	for _, ev := range events {
		if ev.Kind == leave.EventForfeiture {
			t.Error("zero deadline must not produce expiring events")
		}
	}
}

// =============================================================================
// THRESHOLD NORMALIZATION
// =============================================================================

func TestThresholds_Normalize(t *testing.T) {
	tt := leave.Thresholds{Info: 5, Warn: 12}.Normalize()
	if tt.Warn != 5 {
		t.Errorf("warn tier must not exceed info tier, got %d", tt.Warn)
	}

	ok := leave.Thresholds{Info: 10, Warn: 5}.Normalize()
	if ok.Info != 10 || ok.Warn != 5 {
		t.Errorf("well-ordered thresholds should be untouched, got %+v", ok)
	}
}

func TestForfeitureSeverity(t *testing.T) {
	p := leave.DefaultNotificationPolicy()
	deadline := d(2026, time.March, 31)

	if got := p.ForfeitureSeverity(deadline, d(2026, time.April, 1)); got != leave.SeverityWarning {
		t.Errorf("past deadline: expected warning, got %s", got)
	}
	if got := p.ForfeitureSeverity(deadline, d(2026, time.March, 15)); got != leave.SeverityWarning {
		t.Errorf("inside the warning window: expected warning, got %s", got)
	}
	if got := p.ForfeitureSeverity(deadline, d(2026, time.January, 1)); got != leave.SeverityInfo {
		t.Errorf("far out: expected info, got %s", got)
	}
}
