package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/cadence"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/projection"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/schedule"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

// templateHeaders are the raw columns an import sheet should provide.
var templateHeaders = []string{
	"Merchant",
	"Client",
	"Status",
	"Start Date",
	"Amount",
	"Type",
	"Frequency",
	"Increase Date",
	"Notes",
	"Account Age Days",
	"Last Worked",
	"Account Added Date",
}

// WriteTemplate writes an empty import template with the expected headers.
func WriteTemplate(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(templateHeaders); err != nil {
		return fmt.Errorf("failed to write template header: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// WriteAccounts exports every account with its raw columns plus the derived
// columns the engines compute: age, next follow-up, next payment, follow-up
// status, and the month's recorded payments. now is captured once by the
// caller so every derived column of the run agrees on "today".
func WriteAccounts(w io.Writer, accounts []model.Account, monthKey string, now time.Time) error {
	writer := csv.NewWriter(w)

	headers := []string{
		"Merchant",
		"Client",
		"Status",
		"Start Date",
		"Amount",
		"Type",
		"Frequency",
		"Increase Date",
		"Notes",
		"Account Added Date",
		"Account Age Days",
		"Last Worked",
		"Next Follow Up",
		"Next Payment",
		"Follow-up Status",
		fmt.Sprintf("Payments (%s)", monthKey),
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, a := range accounts {
		ageDays := cadence.AgeDays(a, now)

		nextFollowUp := ""
		if next, ok := cadence.NextFollowUp(a, now); ok {
			nextFollowUp = dates.Display(next)
		}
		nextPayment := ""
		if next, ok := schedule.NextDueDate(a.Frequency, a.StartDate, now); ok {
			nextPayment = dates.Display(next)
		}

		row := []string{
			a.Merchant,
			a.Client,
			a.Status,
			a.StartDate,
			a.Amount,
			a.Type,
			a.Frequency,
			a.IncreaseDate,
			a.Notes,
			a.AddedDate,
			strconv.Itoa(ageDays),
			a.LastTouched,
			nextFollowUp,
			nextPayment,
			cadence.FollowUpStatus(a, now).Label,
			strconv.FormatFloat(projection.AccountMonthPayments(a, monthKey), 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write export row for %s: %w", a.Merchant, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
