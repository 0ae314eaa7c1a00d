package money

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
	}{
		{name: "Plain number", raw: "1234.56", expected: 1234.56},
		{name: "Dollar sign and separators", raw: "$1,234.56", expected: 1234.56},
		{name: "Negative amount", raw: "-$500", expected: -500},
		{name: "Embedded text", raw: "about 1200 per month", expected: 1200},
		{name: "Empty string", raw: "", expected: 0},
		{name: "No digits", raw: "TBD", expected: 0},
		{name: "Only symbols", raw: "$", expected: 0},
		{name: "Multiple dots fail soft", raw: "1.2.3", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw); got != tt.expected {
				t.Errorf("Parse(%q) = %v, expected %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "Zero", amount: 0, expected: "$0.00"},
		{name: "Cents rounding", amount: 1234.5, expected: "$1,234.50"},
		{name: "Millions", amount: 1234567.891, expected: "$1,234,567.89"},
		{name: "Negative", amount: -42.5, expected: "-$42.50"},
		{name: "NaN coerces to zero", amount: math.NaN(), expected: "$0.00"},
		{name: "Infinity coerces to zero", amount: math.Inf(1), expected: "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.amount); got != tt.expected {
				t.Errorf("Format(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	// Formatting then parsing is idempotent up to cent rounding.
	values := []float64{0, 1, 1234.5, 99999.99, -250.25}
	for _, v := range values {
		got := Parse(Format(v))
		if math.Abs(got-math.Round(v*100)/100) > 1e-9 {
			t.Errorf("Parse(Format(%v)) = %v", v, got)
		}
	}
}
