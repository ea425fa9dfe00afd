package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestProperty_MonetaryRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		// A cent value in a realistic monetary range must survive
		// cents → display amount → cents unchanged.
		cents := rapid.Int64Range(0, 99_999_999_99).Draw(t, "cents")

		amount := CentsToAmount(cents)
		gotCents, err := AmountToCents(amount)
		if err != nil {
			t.Fatalf("AmountToCents(%v) returned error for value derived from %d cents: %v", amount, cents, err)
		}
		if gotCents != cents {
			t.Fatalf("round-trip failed: cents=%d → amount=%v → cents=%d", cents, amount, gotCents)
		}
	})
}

func TestProperty_AddCentsMatchesIntegerAddition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Int64Range(-1_000_000_000, 1_000_000_000).Draw(t, "a")
		b := rapid.Int64Range(-1_000_000_000, 1_000_000_000).Draw(t, "b")

		got, err := AddCents(a, b)
		if err != nil {
			t.Fatalf("AddCents(%d, %d) returned error: %v", a, b, err)
		}
		if got != a+b {
			t.Fatalf("AddCents(%d, %d) = %d, want %d", a, b, got, a+b)
		}
	})
}
