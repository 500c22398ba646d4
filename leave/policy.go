package leave

import (
	"fmt"
	"time"

	"github.com/warp/leave-engine/calendar"
)

// =============================================================================
// ACCRUAL POLICY - The jurisdiction's leave rules (configuration data)
// =============================================================================

// AccrualPolicy is pure configuration: loaded once, immutable during a run.
// It carries no behavior beyond validation.
type AccrualPolicy struct {
	// AnnualGrant is the number of leave days granted per calendar year.
	AnnualGrant int

	// Deadline is the fixed month-day by which the previous cycle's granted
	// leave must be used. It falls early in the following year for German
	// statutory leave (March 31).
	Deadline calendar.MonthDay

	// CarryFactor is the number of annual grants that may be outstanding
	// simultaneously before forfeiture triggers. With a deadline in the
	// following year the previous grant coexists with the current one, so
	// the factor is at least 1 and usually derived as at least 2 around the
	// deadline itself.
	CarryFactor int

	// HalfDayRule activates the 0.5-day charge for Christmas Eve and
	// New Year's Eve taken as vacation on otherwise-business days.
	HalfDayRule bool
}

// DefaultPolicy mirrors the German statutory baseline: 30 days, use-by
// March 31 of the following year, one grant of carry-over.
func DefaultPolicy() AccrualPolicy {
	return AccrualPolicy{
		AnnualGrant: 30,
		Deadline:    calendar.MonthDay{Month: time.March, Day: 31},
		CarryFactor: 1,
		HalfDayRule: true,
	}
}

// Validate rejects configurations the engine cannot run with.
func (p AccrualPolicy) Validate() error {
	if p.AnnualGrant <= 0 {
		return fmt.Errorf("%w: annual grant %d", ErrInvalidPolicy, p.AnnualGrant)
	}
	if p.CarryFactor < 1 {
		return fmt.Errorf("%w: carry factor %d", ErrInvalidPolicy, p.CarryFactor)
	}
	if p.Deadline.Day == 0 {
		return fmt.Errorf("%w: deadline not set", ErrInvalidPolicy)
	}
	return nil
}

// DeadlineIn anchors the policy deadline in a concrete year.
func (p AccrualPolicy) DeadlineIn(year int) calendar.Date {
	return p.Deadline.In(year)
}

// Grant returns the annual grant as a Days amount.
func (p AccrualPolicy) Grant() Days {
	return DaysOfInt(p.AnnualGrant)
}
