package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount parses s as an exact decimal. Only plain numeric notation is
// accepted (optional sign, digits, optional fraction, optional exponent);
// thousands separators and currency symbols are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal value '%s': %w", s, err)
	}
	return d, nil
}

// FormatAmount renders d keeping the scale it was parsed with, so "1000.50"
// stays "1000.50" and "5500.00" stays "5500.00". Positive exponents are
// expanded ("1e3" renders as "1000").
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// SumAmounts adds amounts exactly.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}
