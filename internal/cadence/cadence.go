// Package cadence derives follow-up urgency signals from an account's age
// and touch history: the required follow-up interval, overdue status, touch
// recency badges, and the increase-date badge. Like the other engines it is
// pure; the reference moment is always an explicit parameter.
package cadence

import (
	"fmt"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/constants"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

// Tier classifies how urgently a badge should read.
type Tier string

const (
	TierNeutral  Tier = "neutral"
	TierHealthy  Tier = "healthy"
	TierMild     Tier = "mild"
	TierModerate Tier = "moderate"
	TierElevated Tier = "elevated"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

// Badge is a display label with an urgency tier.
type Badge struct {
	Label string
	Tier  Tier
}

// AgeDays returns the whole days since the account entered the system.
// A missing or unparseable added date counts as age 0, never negative.
func AgeDays(a model.Account, now time.Time) int {
	added, ok := dates.ParseDate(a.AddedDate, now)
	if !ok {
		return 0
	}
	diff := dates.DayDiff(now, added)
	if diff < 0 {
		return 0
	}
	return diff
}

// RequiredIntervalDays is the follow-up cadence an account must keep: daily
// for the first two weeks, every three days after that.
func RequiredIntervalDays(ageDays int) int {
	if ageDays <= constants.NewAccountWindowDays {
		return constants.NewAccountIntervalDays
	}
	return constants.EstablishedIntervalDays
}

// DaysSinceTouch returns the whole days since the account was last worked,
// falling back to the added date when it has never been touched. ok is false
// when neither date is usable.
func DaysSinceTouch(a model.Account, now time.Time) (int, bool) {
	base, ok := touchBase(a, now)
	if !ok {
		return 0, false
	}
	diff := dates.DayDiff(now, base)
	if diff < 0 {
		diff = 0
	}
	return diff, true
}

// NextFollowUp returns the date the account is next due to be worked: the
// touch base plus the required interval. ok is false when there is no
// usable base date.
func NextFollowUp(a model.Account, now time.Time) (time.Time, bool) {
	base, ok := touchBase(a, now)
	if !ok {
		return time.Time{}, false
	}
	interval := RequiredIntervalDays(AgeDays(a, now))
	return dates.AddDays(base, interval), true
}

// FollowUpStatus derives the tri-state follow-up badge for an account.
func FollowUpStatus(a model.Account, now time.Time) Badge {
	since, touched := DaysSinceTouch(a, now)
	return StatusFor(AgeDays(a, now), since, touched)
}

// StatusFor is the badge rule over raw age and touch counts. The fixed
// public-risk ceiling is independent of the age-based interval and always
// wins once reached.
func StatusFor(ageDays, daysSinceTouch int, touched bool) Badge {
	switch {
	case !touched:
		return Badge{Label: "No activity", Tier: TierNeutral}
	case daysSinceTouch >= constants.PublicRiskThresholdDays:
		return Badge{Label: "Public risk", Tier: TierCritical}
	case daysSinceTouch >= RequiredIntervalDays(ageDays):
		return Badge{Label: "Due", Tier: TierWarning}
	}
	return Badge{Label: "On track", Tier: TierHealthy}
}

// IsFollowUpOverdue reports whether the account needs a touch now: never
// touched at all, or untouched for at least the required interval.
func IsFollowUpOverdue(a model.Account, now time.Time) bool {
	since, touched := DaysSinceTouch(a, now)
	if !touched {
		return true
	}
	return since >= RequiredIntervalDays(AgeDays(a, now))
}

// TouchBadge derives the touch-recency badge for an account.
func TouchBadge(a model.Account, now time.Time) Badge {
	since, touched := DaysSinceTouch(a, now)
	return TouchBadgeFor(since, touched)
}

// TouchBadgeFor maps days-since-touch onto the recency tiers.
func TouchBadgeFor(daysSinceTouch int, touched bool) Badge {
	switch {
	case !touched:
		return Badge{Label: "No activity", Tier: TierNeutral}
	case daysSinceTouch == 0:
		return Badge{Label: "Today", Tier: TierHealthy}
	case daysSinceTouch <= 2:
		return Badge{Label: fmt.Sprintf("%d days", daysSinceTouch), Tier: TierMild}
	case daysSinceTouch <= 4:
		return Badge{Label: fmt.Sprintf("%d days", daysSinceTouch), Tier: TierModerate}
	case daysSinceTouch <= 6:
		return Badge{Label: fmt.Sprintf("%d days", daysSinceTouch), Tier: TierElevated}
	}
	return Badge{Label: fmt.Sprintf("%d+ days", daysSinceTouch), Tier: TierCritical}
}

// IncreaseBadge flags an approaching or missed rate-increase date. ok is
// false when there is no increase date or it is too far out to matter.
func IncreaseBadge(a model.Account, now time.Time) (Badge, bool) {
	increase, parsed := dates.ParseDate(a.IncreaseDate, now)
	if !parsed {
		return Badge{}, false
	}
	daysAway := dates.DayDiff(increase, now)
	switch {
	case daysAway < 0:
		return Badge{Label: "Past due", Tier: TierCritical}, true
	case daysAway <= 1:
		return Badge{Label: "Increase now", Tier: TierCritical}, true
	case daysAway == 2:
		return Badge{Label: "Increase soon", Tier: TierWarning}, true
	case daysAway <= 4:
		return Badge{Label: "Increase soon", Tier: TierHealthy}, true
	}
	return Badge{}, false
}

func touchBase(a model.Account, now time.Time) (time.Time, bool) {
	if touched, ok := dates.ParseDate(a.LastTouched, now); ok {
		return touched, true
	}
	if added, ok := dates.ParseDate(a.AddedDate, now); ok {
		return added, true
	}
	return time.Time{}, false
}
