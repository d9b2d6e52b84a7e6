// Package money centralises currency arithmetic for the storefront.
//
// All amounts are shopspring decimals with two fractional digits. Rounding
// is round-half-up: decimal.Round rounds half away from zero, which is the
// same thing for the non-negative amounts this system deals in.
package money

import "github.com/shopspring/decimal"

// Zero is 0.00.
func Zero() decimal.Decimal {
	return decimal.New(0, -2)
}

// Round normalises an amount to currency precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Parse converts a raw decimal string to a rounded amount.
// Reports false when the string does not parse.
func Parse(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Zero(), false
	}
	return Round(d), true
}

// ParseOrZero converts a raw decimal string, degrading to 0.00 on failure.
// Callers that treat a bad cached price as "free" use this.
func ParseOrZero(raw string) decimal.Decimal {
	d, ok := Parse(raw)
	if !ok {
		return Zero()
	}
	return d
}

// String renders an amount with exactly two fractional digits.
func String(d decimal.Decimal) string {
	return d.StringFixed(2)
}
