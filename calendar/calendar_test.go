package calendar_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// DATE TESTS
// =============================================================================

func TestDate_DaysUntil(t *testing.T) {
	from := calendar.NewDate(2026, time.January, 10)

	if got := from.DaysUntil(calendar.NewDate(2026, time.March, 31)); got != 80 {
		t.Errorf("expected 80 days until deadline, got %d", got)
	}
	if got := from.DaysUntil(calendar.NewDate(2026, time.January, 1)); got != -9 {
		t.Errorf("expected -9 for a past date, got %d", got)
	}
	if got := from.DaysUntil(from); got != 0 {
		t.Errorf("expected 0 for same day, got %d", got)
	}
}

func TestDate_Weekend(t *testing.T) {
	sat := calendar.NewDate(2026, time.January, 3)
	mon := calendar.NewDate(2026, time.January, 5)

	if !sat.IsWeekend() {
		t.Error("2026-01-03 is a Saturday")
	}
	if mon.IsWeekend() {
		t.Error("2026-01-05 is a Monday")
	}
}

func TestMonthDay_ParseAndAnchor(t *testing.T) {
	md, err := calendar.ParseMonthDay("03-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := md.In(2026); !got.Equal(calendar.NewDate(2026, time.March, 31)) {
		t.Errorf("expected 2026-03-31, got %s", got)
	}

	if _, err := calendar.ParseMonthDay("31-03"); err == nil {
		t.Error("month 31 should not parse")
	}
}

func TestHalfDayEves(t *testing.T) {
	if !calendar.IsHalfDayEve(calendar.NewDate(2025, time.December, 24)) {
		t.Error("Christmas Eve is a half-day eve")
	}
	if !calendar.IsHalfDayEve(calendar.NewDate(2025, time.December, 31)) {
		t.Error("New Year's Eve is a half-day eve")
	}
	if calendar.IsHalfDayEve(calendar.NewDate(2025, time.December, 25)) {
		t.Error("Christmas Day is a holiday, not a half-day eve")
	}
}

// =============================================================================
// REGIONAL CALENDAR TESTS
// =============================================================================

func TestRegional_MovableFeasts(t *testing.T) {
	// GIVEN: The nationwide German calendar
	// WHEN: Checking the Easter-relative holidays of 2025 (Easter: April 20)
	// THEN: Good Friday, Easter Monday, Ascension and Whit Monday all land

	cal := calendar.NewRegional("DE")

	feasts := map[string]calendar.Date{
		"Good Friday":   calendar.NewDate(2025, time.April, 18),
		"Easter Monday": calendar.NewDate(2025, time.April, 21),
		"Ascension Day": calendar.NewDate(2025, time.May, 29),
		"Whit Monday":   calendar.NewDate(2025, time.June, 9),
	}
	for name, d := range feasts {
		if !cal.IsHoliday(d) {
			t.Errorf("%s (%s) should be a holiday", name, d)
		}
	}

	if cal.IsHoliday(calendar.NewDate(2025, time.April, 22)) {
		t.Error("the Tuesday after Easter Monday is a plain business day")
	}
}

func TestRegional_StateSpecificHolidays(t *testing.T) {
	epiphany := calendar.NewDate(2026, time.January, 6)
	assumption := calendar.NewDate(2026, time.August, 15)
	womensDay := calendar.NewDate(2026, time.March, 8)

	bavaria := calendar.NewRegional("DE-BY")
	berlin := calendar.NewRegional("DE-BE")
	nationwide := calendar.NewRegional("DE")

	if !bavaria.IsHoliday(epiphany) || !bavaria.IsHoliday(assumption) {
		t.Error("Bavaria observes Epiphany and Assumption Day")
	}
	if nationwide.IsHoliday(epiphany) {
		t.Error("Epiphany is not a nationwide holiday")
	}
	if !berlin.IsHoliday(womensDay) {
		t.Error("Berlin observes International Women's Day")
	}
	if bavaria.IsHoliday(womensDay) {
		t.Error("Bavaria does not observe International Women's Day")
	}
}

func TestRegional_UnknownRegionFallsBackToNationwide(t *testing.T) {
	cal := calendar.NewRegional("XX")

	if !cal.IsHoliday(calendar.NewDate(2026, time.October, 3)) {
		t.Error("unknown regions keep the nationwide set")
	}
}

func TestRegional_BusinessDay(t *testing.T) {
	cal := calendar.NewRegional("DE")

	if !cal.IsBusinessDay(calendar.NewDate(2025, time.June, 2)) {
		t.Error("a plain Monday is a business day")
	}
	if cal.IsBusinessDay(calendar.NewDate(2025, time.June, 7)) {
		t.Error("Saturday is not a business day")
	}
	if cal.IsBusinessDay(calendar.NewDate(2025, time.December, 25)) {
		t.Error("Christmas Day is not a business day")
	}
}

func TestBusinessDays_CountsInclusive(t *testing.T) {
	cal := calendar.NewRegional("DE")

	// Mon Jun 2 .. Sun Jun 8 2025, no holidays in that week.
	from := calendar.NewDate(2025, time.June, 2)
	to := calendar.NewDate(2025, time.June, 8)
	if got := calendar.BusinessDays(cal, from, to); got != 5 {
		t.Errorf("expected 5 business days, got %d", got)
	}

	if got := calendar.BusinessDays(cal, to, from); got != 0 {
		t.Errorf("inverted range counts as 0, got %d", got)
	}
}

// =============================================================================
// LEAVE-BLOCKED CALENDAR TESTS
// =============================================================================

func TestLeaveBlocked_BlocksInjectedDates(t *testing.T) {
	// GIVEN: A calendar with one already-consumed Monday
	// WHEN: Asking about that Monday
	// THEN: It is no longer a business day, but not a holiday either

	inner := calendar.NewRegional("DE")
	mon := calendar.NewDate(2025, time.June, 2)
	blocked := calendar.NewLeaveBlocked(inner, []calendar.Date{mon})

	if blocked.IsBusinessDay(mon) {
		t.Error("blocked date should not be a business day")
	}
	if blocked.IsHoliday(mon) {
		t.Error("blocking does not make a date a holiday")
	}
	if !blocked.IsBlocked(mon) {
		t.Error("IsBlocked should report the injected date")
	}
	if !blocked.IsBusinessDay(mon.AddDays(1)) {
		t.Error("the next day is untouched")
	}
}

// =============================================================================
// REGION FILE TESTS
// =============================================================================

func TestLoadRegionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.yaml")
	content := `region: "DE-HH"
holidays:
  - date: "2026-05-08"
    name: "Liberation Day"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cal, err := calendar.LoadRegionFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cal.Region() != "DE-HH" {
		t.Errorf("expected region DE-HH, got %s", cal.Region())
	}
	if !cal.IsHoliday(calendar.NewDate(2026, time.May, 8)) {
		t.Error("file-provided holiday should be observed")
	}
	// Unknown region code -> nationwide set still applies underneath.
	if !cal.IsHoliday(calendar.NewDate(2026, time.October, 3)) {
		t.Error("nationwide holidays still apply")
	}
}

func TestLoadRegionFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	noRegion := filepath.Join(dir, "noregion.yaml")
	os.WriteFile(noRegion, []byte("holidays: []\n"), 0o644)
	if _, err := calendar.LoadRegionFile(noRegion); err == nil {
		t.Error("missing region code should fail")
	}

	badDate := filepath.Join(dir, "baddate.yaml")
	os.WriteFile(badDate, []byte("region: X\nholidays:\n  - date: \"08.05.2026\"\n    name: x\n"), 0o644)
	if _, err := calendar.LoadRegionFile(badDate); err == nil {
		t.Error("non-ISO date should fail")
	}

	if _, err := calendar.LoadRegionFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
