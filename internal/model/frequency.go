package model

import "strings"

// The closed set of payment frequencies.
const (
	FrequencyDaily       = "Daily"
	FrequencyWeekly      = "Weekly"
	FrequencyBiWeekly    = "Bi-Weekly"
	FrequencySemiMonthly = "Semi-Monthly"
	FrequencyMonthly     = "Monthly"
	FrequencyLumpSum     = "Lump Sum"
)

// NormalizeFrequency maps free text onto the closed frequency set, ignoring
// case and punctuation ("bi weekly", "BiWeekly!" both become "Bi-Weekly").
// Unrecognized text is returned verbatim so nothing is silently lost on
// import; empty input stays empty.
func NormalizeFrequency(raw string) string {
	trimmed := strings.TrimSpace(raw)
	var letters strings.Builder
	for _, r := range strings.ToLower(trimmed) {
		if r >= 'a' && r <= 'z' {
			letters.WriteRune(r)
		}
	}
	normalized := letters.String()
	switch {
	case normalized == "":
		return ""
	case strings.HasPrefix(normalized, "daily"):
		return FrequencyDaily
	case strings.HasPrefix(normalized, "weekly"):
		return FrequencyWeekly
	case strings.Contains(normalized, "biweekly"):
		return FrequencyBiWeekly
	case strings.Contains(normalized, "semimonthly"):
		return FrequencySemiMonthly
	case strings.Contains(normalized, "monthly"):
		return FrequencyMonthly
	case strings.Contains(normalized, "lumpsum"), strings.Contains(normalized, "settle"):
		return FrequencyLumpSum
	}
	return trimmed
}
