// Package dates provides the calendar arithmetic and loose date parsing used
// by the scheduling and projection engines. Parsing never returns errors;
// unusable input reports ok=false so that one bad record cannot abort a batch
// computation.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/constants"
)

var (
	isoPattern        = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashPattern      = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
	dayOfMonthPattern = regexp.MustCompile(`^(\d{1,2})(st|nd|rd|th)?$`)
)

// buildDate constructs a date and verifies the components round-trip, so that
// impossible dates like February 31 are rejected rather than normalized.
func buildDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	candidate := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if candidate.Year() != year || candidate.Month() != month || candidate.Day() != day {
		return time.Time{}, false
	}
	return candidate, true
}

// ParseDate accepts ISO YYYY-MM-DD or M/D, M/D/YY, M/D/YYYY. A slash form
// with no year assumes the year of now. Bare day-of-month strings are not
// dates; see ParseDayOfMonth.
func ParseDate(raw string, now time.Time) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	if m := isoPattern.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return buildDate(year, time.Month(month), day, now.Location())
	}

	if m := slashPattern.FindStringSubmatch(trimmed); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				year += 2000
			}
		}
		return buildDate(year, time.Month(month), day, now.Location())
	}

	return time.Time{}, false
}

// ParseDayOfMonth accepts bare integers 1-31, optionally suffixed with
// st/nd/rd/th.
func ParseDayOfMonth(raw string) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return 0, false
	}
	m := dayOfMonthPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

// Midnight truncates a time to the start of its day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayDiff returns the whole-day difference between a and b at midnight
// granularity, positive when a is after b.
func DayDiff(a, b time.Time) int {
	hours := Midnight(a).Sub(Midnight(b)).Hours()
	return int(math.Round(hours / 24))
}

// AddDays returns the date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextDayOfMonth returns the next occurrence of the given day-of-month on or
// after from, clamping to the last valid day of short months and rolling to
// the following month when the clamped day has already passed.
func NextDayOfMonth(day int, from time.Time) time.Time {
	year, month := from.Year(), from.Month()
	clamped := day
	if last := DaysIn(year, month); clamped > last {
		clamped = last
	}
	candidate := time.Date(year, month, clamped, 0, 0, 0, 0, from.Location())
	if !candidate.Before(Midnight(from)) {
		return candidate
	}
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, from.Location())
	clamped = day
	if last := DaysIn(next.Year(), next.Month()); clamped > last {
		clamped = last
	}
	return time.Date(next.Year(), next.Month(), clamped, 0, 0, 0, 0, next.Location())
}

// FirstWeekdayOnOrAfter returns the first date on or after t falling on the
// given weekday.
func FirstWeekdayOnOrAfter(t time.Time, weekday time.Weekday) time.Time {
	diff := (int(weekday) - int(t.Weekday()) + 7) % 7
	return AddDays(t, diff)
}

// MonthRange describes the calendar bounds of a YYYY-MM month key.
type MonthRange struct {
	Start time.Time
	End   time.Time
	Year  int
	Month time.Month
}

// ParseMonthKey resolves a YYYY-MM month key into its first and last day.
// Malformed keys report ok=false; month-scoped computations then yield empty
// results rather than failing.
func ParseMonthKey(key string) (MonthRange, bool) {
	parts := strings.SplitN(strings.TrimSpace(key), "-", 2)
	if len(parts) != 2 {
		return MonthRange{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return MonthRange{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return MonthRange{}, false
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local)
	return MonthRange{Start: start, End: end, Year: start.Year(), Month: start.Month()}, true
}

// MonthKey formats a time as its YYYY-MM month key.
func MonthKey(t time.Time) string {
	return t.Format(constants.MonthKeyLayout)
}

// DateKey formats a time as its canonical YYYY-MM-DD form.
func DateKey(t time.Time) string {
	return t.Format(constants.DateKeyLayout)
}

// Display formats a date for the UI as MM/DD/YYYY.
func Display(t time.Time) string {
	return t.Format(constants.DisplayDateLayout)
}

// DisplayValue renders a raw date field for the UI: "-" when empty, the
// MM/DD/YYYY form when parseable, and the raw string otherwise. The raw
// fallback is observably distinct from "no value" and must stay that way.
func DisplayValue(raw string, now time.Time) string {
	if strings.TrimSpace(raw) == "" {
		return "-"
	}
	if parsed, ok := ParseDate(raw, now); ok {
		return Display(parsed)
	}
	return raw
}
