// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed into the
// transaction form and rendering amounts as US-dollar strings.
package core

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a form value into a positive decimal amount.
//
// It accepts an optional "$" prefix and "," thousands separators. The value
// is rounded half-up to cents, and anything below one cent after rounding is
// rejected, as are signs, exponents and non-numeric input.
//
// Examples:
//
//	ParseAmount("12.34")     -> 12.34, nil
//	ParseAmount("$1,234.5")  -> 1234.5, nil
//	ParseAmount("12.345")    -> 12.35, nil (rounds up)
//	ParseAmount("12.344")    -> 12.34, nil (rounds down)
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return decimal.Zero, ErrInvalidAmount
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// FormatCurrency renders amount the way an en-US USD currency formatter
// does: "$" prefix, thousands separators, exactly two decimals, and a
// leading "-" for negative values. Rounding is half away from zero.
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(whole.IntPart()), cents)
}
