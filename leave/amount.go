package leave

import "github.com/shopspring/decimal"

// =============================================================================
// DAYS - Leave-day quantity at 0.5 granularity
// =============================================================================

// Days is a count of leave days. Arithmetic uses decimal.Decimal so the
// half-day rule's 0.5 increments stay exact; binary floats would drift.
// Every value in the system is a whole or half day, never finer.
type Days struct {
	v decimal.Decimal
}

var (
	zeroDays = Days{}
	halfDay  = Days{v: decimal.NewFromFloat(0.5)}
)

func DaysOf(value float64) Days  { return Days{v: decimal.NewFromFloat(value)} }
func DaysOfInt(value int) Days   { return Days{v: decimal.NewFromInt(int64(value))} }
func ZeroDays() Days             { return zeroDays }
func HalfDay() Days              { return halfDay }

func (d Days) Add(o Days) Days { return Days{v: d.v.Add(o.v)} }
func (d Days) Sub(o Days) Days { return Days{v: d.v.Sub(o.v)} }
func (d Days) Neg() Days       { return Days{v: d.v.Neg()} }
func (d Days) Abs() Days       { return Days{v: d.v.Abs()} }

func (d Days) MulInt(n int) Days { return Days{v: d.v.Mul(decimal.NewFromInt(int64(n)))} }

func (d Days) IsZero() bool     { return d.v.IsZero() }
func (d Days) IsNegative() bool { return d.v.IsNegative() }
func (d Days) IsPositive() bool { return d.v.IsPositive() }

func (d Days) Equal(o Days) bool              { return d.v.Equal(o.v) }
func (d Days) GreaterThan(o Days) bool        { return d.v.GreaterThan(o.v) }
func (d Days) GreaterThanOrEqual(o Days) bool { return d.v.GreaterThanOrEqual(o.v) }
func (d Days) LessThan(o Days) bool           { return d.v.LessThan(o.v) }
func (d Days) LessThanOrEqual(o Days) bool    { return d.v.LessThanOrEqual(o.v) }

// HasHalfFraction reports whether the value ends in .5, i.e. carries an
// unsettled half day.
func (d Days) HasHalfFraction() bool {
	return !d.v.Mod(decimal.NewFromInt(1)).IsZero()
}

// Float64 is for JSON DTOs only; engine arithmetic never round-trips
// through floats.
func (d Days) Float64() float64 {
	f, _ := d.v.Float64()
	return f
}

// String renders with exactly one fractional digit: "12.0", "11.5".
func (d Days) String() string { return d.v.StringFixed(1) }
