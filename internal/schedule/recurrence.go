// Package schedule computes recurring payment due dates from an account's
// frequency and anchor. All functions are pure: the reference moment is an
// explicit parameter and malformed input yields "no due date" rather than an
// error, which callers must treat as a common, legitimate state.
package schedule

import (
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/constants"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

const biWeeklyCycleDays = 14

// semiMonthlySecondCap keeps the second semi-monthly anchor inside every
// month, February included.
const semiMonthlySecondCap = 28

// NextDueDate returns the next payment occurrence on or after today for the
// given frequency and raw start-date field. ok is false when the frequency
// has no recurring due date (empty, Lump Sum, unrecognized) or when a
// required anchor is missing or unparseable.
func NextDueDate(frequency, startRaw string, today time.Time) (time.Time, bool) {
	freq := model.NormalizeFrequency(frequency)
	if freq == "" || freq == model.FrequencyLumpSum {
		return time.Time{}, false
	}
	day := dates.Midnight(today)
	if freq == model.FrequencyDaily {
		return day, true
	}

	anchor := model.ResolveAnchor(startRaw, today)

	switch freq {
	case model.FrequencyWeekly:
		weekday := today.Weekday()
		if anchor.Kind == model.AnchorDate {
			weekday = anchor.Date.Weekday()
		}
		return dates.FirstWeekdayOnOrAfter(day, weekday), true

	case model.FrequencyBiWeekly:
		if anchor.Kind != model.AnchorDate {
			return time.Time{}, false
		}
		diff := dates.DayDiff(today, anchor.Date)
		if diff <= 0 {
			return dates.Midnight(anchor.Date), true
		}
		offset := (biWeeklyCycleDays - (diff % biWeeklyCycleDays)) % biWeeklyCycleDays
		return dates.AddDays(day, offset), true

	case model.FrequencySemiMonthly:
		anchorDay := 1
		if anchor.Kind == model.AnchorDayOfMonth {
			anchorDay = anchor.Day
		}
		first := dates.NextDayOfMonth(anchorDay, today)
		second := dates.NextDayOfMonth(cap28(anchorDay+15), today)
		if first.After(second) {
			return second, true
		}
		return first, true

	case model.FrequencyMonthly:
		var anchorDay int
		switch anchor.Kind {
		case model.AnchorDayOfMonth:
			anchorDay = anchor.Day
		case model.AnchorDate:
			anchorDay = anchor.Date.Day()
		default:
			return time.Time{}, false
		}
		return dates.NextDayOfMonth(anchorDay, today), true
	}

	return time.Time{}, false
}

// OccurrencesInMonth enumerates every occurrence of the recurrence falling
// within the month identified by monthKey. A start date that begins
// mid-month suppresses earlier occurrences; a start date past the month's
// end yields none. now supplies the current year for yearless start dates.
func OccurrencesInMonth(frequency, startRaw, monthKey string, now time.Time) []time.Time {
	r, ok := dates.ParseMonthKey(monthKey)
	if !ok {
		return nil
	}
	freq := model.NormalizeFrequency(frequency)
	if freq == "" || freq == model.FrequencyLumpSum {
		return nil
	}

	anchor := model.ResolveAnchor(startRaw, now)
	var startDate time.Time
	hasStart := anchor.Kind == model.AnchorDate
	if hasStart {
		startDate = dates.Midnight(anchor.Date)
		if startDate.After(r.End) {
			return nil
		}
	}
	effectiveStart := r.Start
	if hasStart && startDate.After(r.Start) {
		effectiveStart = startDate
	}

	var occurrences []time.Time

	switch freq {
	case model.FrequencyDaily:
		for cursor := effectiveStart; !cursor.After(r.End); cursor = dates.AddDays(cursor, 1) {
			occurrences = append(occurrences, cursor)
		}

	case model.FrequencyWeekly:
		weekday := r.Start.Weekday()
		if hasStart {
			weekday = startDate.Weekday()
		}
		for cursor := dates.FirstWeekdayOnOrAfter(effectiveStart, weekday); !cursor.After(r.End); cursor = dates.AddDays(cursor, 7) {
			occurrences = append(occurrences, cursor)
		}

	case model.FrequencyBiWeekly:
		if !hasStart {
			return nil
		}
		cursor := startDate
		for cursor.Before(effectiveStart) {
			cursor = dates.AddDays(cursor, biWeeklyCycleDays)
		}
		for !cursor.After(r.End) {
			occurrences = append(occurrences, cursor)
			cursor = dates.AddDays(cursor, biWeeklyCycleDays)
		}

	case model.FrequencySemiMonthly:
		anchorDay := 1
		if anchor.Kind == model.AnchorDayOfMonth {
			anchorDay = anchor.Day
		}
		first := time.Date(r.Year, r.Month, anchorDay, 0, 0, 0, 0, time.Local)
		second := time.Date(r.Year, r.Month, cap28(anchorDay+15), 0, 0, 0, 0, time.Local)
		for _, candidate := range []time.Time{first, second} {
			if !candidate.Before(effectiveStart) && !candidate.After(r.End) {
				occurrences = append(occurrences, candidate)
			}
		}

	case model.FrequencyMonthly:
		var anchorDay int
		switch anchor.Kind {
		case model.AnchorDayOfMonth:
			anchorDay = anchor.Day
		case model.AnchorDate:
			anchorDay = anchor.Date.Day()
		default:
			return nil
		}
		if last := dates.DaysIn(r.Year, r.Month); anchorDay > last {
			anchorDay = last
		}
		candidate := time.Date(r.Year, r.Month, anchorDay, 0, 0, 0, 0, time.Local)
		if !candidate.Before(effectiveStart) && !candidate.After(r.End) {
			occurrences = append(occurrences, candidate)
		}
	}

	return occurrences
}

// DueThisWeek reports whether the next due date exists and falls within
// [today, today+7] inclusive.
func DueThisWeek(frequency, startRaw string, today time.Time) bool {
	next, ok := NextDueDate(frequency, startRaw, today)
	if !ok {
		return false
	}
	daysAway := dates.DayDiff(next, today)
	return daysAway >= 0 && daysAway <= constants.DueSoonWindowDays
}

func cap28(day int) int {
	if day > semiMonthlySecondCap {
		return semiMonthlySecondCap
	}
	return day
}
