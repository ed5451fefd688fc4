package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"1.23", "1.23", true},
		{"0.01", "0.01", true},
		{"1.005", "1.01", true}, // half-up rounding
		{"12.344", "12.34", true},
		{" 2.50 ", "2.5", true},
		{"$1,234.50", "1234.5", true},
		{"-1", "", false},
		{"+1", "", false},
		{"0", "", false},
		{"0.004", "", false},
		{"1e3", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.out)) {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %s", tc.in, got)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1234.5", "$1,234.50"},
		{"0", "$0.00"},
		{"4650", "$4,650.00"},
		{"0.005", "$0.01"},
		{"2.004", "$2.00"},
		{"999.995", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-1350", "-$1,350.00"},
		{"-0.5", "-$0.50"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
