package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// MaxAmountCents is the largest monetary value the ledger accepts, in cents.
// Anything above it would put cumulative sums at risk of int64 overflow long
// before the arithmetic itself does.
const MaxAmountCents int64 = 1_000_000_000_000_00

// AmountToCents converts a decimal monetary amount to int64 cents. It
// rejects non-finite values, negative values, values with more than 2
// decimal places, and values beyond MaxAmountCents.
func AmountToCents(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &LedgerStateError{Message: "monetary amount must be finite"}
	}
	if f < 0 {
		return 0, &LedgerStateError{Message: "monetary amount must be >= 0"}
	}

	d := decimal.NewFromFloat(f)
	cents := d.Shift(2)
	if !cents.Equal(cents.Round(0)) {
		return 0, &ValidationError{Message: "monetary values must have at most 2 decimal places"}
	}

	c := cents.IntPart()
	if c > MaxAmountCents {
		return 0, &OverflowError{Op: "amount conversion"}
	}
	return c, nil
}

// CentsToAmount converts int64 cents to a decimal dollar amount for the
// response boundary. All internal arithmetic stays in cents; this is only
// for display serialization.
func CentsToAmount(c int64) float64 {
	return decimal.New(c, -2).InexactFloat64()
}

// FormatCents renders a cent value as a fixed two-decimal string, e.g.
// 5000 → "50.00", -125 → "-1.25". Used for audit trails and text export.
func FormatCents(c int64) string {
	return decimal.New(c, -2).StringFixed(2)
}

// FormatCentsSigned is FormatCents with an explicit leading sign, e.g.
// "+50.00". Audit trails use it for net positions.
func FormatCentsSigned(c int64) string {
	if c >= 0 {
		return "+" + FormatCents(c)
	}
	return FormatCents(c)
}

// AddCents adds two cent values, returning an OverflowError if the result
// would wrap.
func AddCents(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, &OverflowError{Op: "addition"}
	}
	return a + b, nil
}
