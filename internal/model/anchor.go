package model

import (
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

// AnchorKind discriminates the dual-purpose start-date field.
type AnchorKind int

const (
	// AnchorUnset means no usable recurrence anchor was supplied.
	AnchorUnset AnchorKind = iota
	// AnchorDate means the field held a full calendar date.
	AnchorDate
	// AnchorDayOfMonth means the field held a bare day-of-month (1-31).
	AnchorDayOfMonth
)

// Anchor is the resolved form of an account's start-date field, which in the
// wild is sometimes a calendar date and sometimes a bare day-of-month.
type Anchor struct {
	Kind AnchorKind
	Date time.Time
	Day  int
}

// ResolveAnchor sniffs a raw start-date field once so the recurrence rules
// work from a tagged value instead of re-parsing the string per call.
func ResolveAnchor(raw string, now time.Time) Anchor {
	if parsed, ok := dates.ParseDate(raw, now); ok {
		return Anchor{Kind: AnchorDate, Date: parsed, Day: parsed.Day()}
	}
	if day, ok := dates.ParseDayOfMonth(raw); ok {
		return Anchor{Kind: AnchorDayOfMonth, Day: day}
	}
	return Anchor{Kind: AnchorUnset}
}
