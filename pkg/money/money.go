// Package money parses free-text currency amounts and formats amounts for
// display. Parsing degrades to zero on malformed input instead of failing;
// amount fields in imported data are never required to be well-formed.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse extracts a numeric amount from free text such as "$1,234.56" or
// "1200 monthly". Empty or unusable input yields 0.
func Parse(raw string) float64 {
	if raw == "" {
		return 0
	}
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	parsed, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0
	}
	return parsed
}

// Format renders an amount as US currency with thousands separators,
// e.g. "$1,234.56". Negative amounts render as "-$1,234.56" and non-finite
// input renders as "$0.00".
func Format(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		amount = 0
	}
	formatted := formatPositive(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

func formatPositive(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
