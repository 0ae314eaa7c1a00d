// Package projection aggregates expected cash flow for a calendar month
// across a set of accounts, bucketed by each account's risk category, plus
// the recorded-payment aggregates shown on the dashboard.
package projection

import (
	"strings"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/schedule"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/money"
)

// RiskCategory is the projection bucket an account routes into.
type RiskCategory string

const (
	RiskActive    RiskCategory = "active"
	RiskSettled   RiskCategory = "settled"
	RiskDefaulted RiskCategory = "defaulted"
)

// RiskCategoryFor classifies a free-text status label by substring match.
// A status naming "settled" is settled, then "defaulted" is defaulted, and
// everything else is active. This is a heuristic over open-set status names,
// kept behind this one seam; a closed-enum migration would replace only this
// function.
func RiskCategoryFor(status string) RiskCategory {
	lowered := strings.ToLower(status)
	if strings.Contains(lowered, "settled") {
		return RiskSettled
	}
	if strings.Contains(lowered, "defaulted") {
		return RiskDefaulted
	}
	return RiskActive
}

// ProjectedAmount is the cash expected from one account in the given month:
// occurrence count times the parsed payment amount, or 0 when the amount is
// missing or non-positive.
func ProjectedAmount(a model.Account, monthKey string, now time.Time) float64 {
	amount := money.Parse(a.Amount)
	if amount <= 0 {
		return 0
	}
	occurrences := schedule.OccurrencesInMonth(a.Frequency, a.StartDate, monthKey, now)
	return float64(len(occurrences)) * amount
}

// Totals is the month projection rollup. Expected is cash-in from active
// accounts; AtRisk mirrors the defaulted projection; the loss fields track
// what settled and defaulted accounts would otherwise have paid.
type Totals struct {
	Expected       float64
	AtRisk         float64
	SettledLoss    float64
	DefaultedLoss  float64
	ActiveCount    int
	SettledCount   int
	DefaultedCount int
}

// MonthTotals routes each account with a nonzero projected amount into
// exactly one bucket by risk category. Zero-projection accounts contribute
// to no bucket or count.
func MonthTotals(accounts []model.Account, monthKey string, now time.Time) Totals {
	var totals Totals
	for _, a := range accounts {
		projected := ProjectedAmount(a, monthKey, now)
		if projected == 0 {
			continue
		}
		switch RiskCategoryFor(a.Status) {
		case RiskSettled:
			totals.SettledLoss += projected
			totals.SettledCount++
		case RiskDefaulted:
			totals.AtRisk += projected
			totals.DefaultedLoss += projected
			totals.DefaultedCount++
		default:
			totals.Expected += projected
			totals.ActiveCount++
		}
	}
	return totals
}

// AccountMonthPayments sums an account's recorded payments within the month.
func AccountMonthPayments(a model.Account, monthKey string) float64 {
	var total float64
	for _, p := range a.Payments {
		if strings.HasPrefix(p.Date, monthKey) {
			total += p.Amount
		}
	}
	return total
}

// MonthPaymentsTotal sums recorded payments within the month across all
// accounts.
func MonthPaymentsTotal(accounts []model.Account, monthKey string) float64 {
	var total float64
	for _, a := range accounts {
		total += AccountMonthPayments(a, monthKey)
	}
	return total
}

// PaymentsOn sums payments recorded on one day across all accounts.
func PaymentsOn(accounts []model.Account, day time.Time) float64 {
	key := dates.DateKey(day)
	var total float64
	for _, a := range accounts {
		for _, p := range a.Payments {
			if p.Date == key {
				total += p.Amount
			}
		}
	}
	return total
}

// TouchedOn counts the accounts last worked on the given day.
func TouchedOn(accounts []model.Account, day time.Time) int {
	key := dates.DateKey(day)
	count := 0
	for _, a := range accounts {
		if a.LastTouched == key {
			count++
		}
	}
	return count
}
