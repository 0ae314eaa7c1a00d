// Package csvio imports and exports account records as CSV. Column headers
// are matched fuzzily so spreadsheets exported from other tools load without
// manual cleanup; the engines supply every derived export column.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

// Import errors surfaced to the user.
var (
	ErrNoRows          = errors.New("csv file is empty or missing data rows")
	ErrNoMerchantField = errors.New("csv must include a Merchant column")
	ErrNoAccounts      = errors.New("csv import completed but no accounts were found")
)

// headerKeys maps normalized header text onto account input fields. Several
// spellings are accepted per field.
var headerKeys = map[string]string{
	"merchant":                         "merchant",
	"account":                          "merchant",
	"business":                         "merchant",
	"business name":                    "merchant",
	"client":                           "client",
	"status":                           "status",
	"start date":                       "startDate",
	"start":                            "startDate",
	"amount":                           "amount",
	"type":                             "type",
	"frequency":                        "frequency",
	"increase date":                    "increaseDate",
	"increase date or fixed until paid": "increaseDate",
	"increase fixed until paid":        "increaseDate",
	"increase":                         "increaseDate",
	"notes":                            "notes",
	"account age":                      "accountAgeDays",
	"account age days":                 "accountAgeDays",
	"age":                              "accountAgeDays",
	"account added":                    "accountAddedDate",
	"account added date":               "accountAddedDate",
	"added date":                       "accountAddedDate",
	"last touched":                     "lastTouched",
	"last worked":                      "lastTouched",
	"last contact":                     "lastTouched",
	"last activity":                    "lastTouched",
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeHeader(header string) string {
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(strings.ToLower(header), " "))
}

// ImportResult is the outcome of a CSV import: normalized accounts plus the
// status set extended with every status the file used.
type ImportResult struct {
	Accounts []model.Account
	Statuses *model.StatusSet
}

// ParseImport reads CSV account rows. Rows without a merchant are skipped;
// every other field degrades softly through normalization. now anchors the
// age-days fallback and yearless dates.
func ParseImport(r io.Reader, now time.Time) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	rows = dropBlankRows(rows)
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")

	keys := make([]string, len(rows[0]))
	merchantIndex := -1
	for i, header := range rows[0] {
		keys[i] = headerKeys[normalizeHeader(header)]
		if keys[i] == "merchant" && merchantIndex == -1 {
			merchantIndex = i
		}
	}
	if merchantIndex == -1 {
		return nil, ErrNoMerchantField
	}

	statuses := model.NewStatusSet(model.DefaultStatuses...)
	var accounts []model.Account

	for _, row := range rows[1:] {
		in := model.AccountInput{}
		for i, key := range keys {
			if key == "" || i >= len(row) {
				continue
			}
			setField(&in, key, strings.TrimSpace(row[i]))
		}
		if in.Merchant == "" {
			continue
		}
		account := model.NormalizeAccount(in, now)
		statuses.Add(account.Status)
		accounts = append(accounts, account)
	}

	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	return &ImportResult{Accounts: accounts, Statuses: statuses}, nil
}

func setField(in *model.AccountInput, key, value string) {
	switch key {
	case "merchant":
		in.Merchant = value
	case "client":
		in.Client = value
	case "status":
		in.Status = value
	case "startDate":
		in.StartDate = value
	case "amount":
		in.Amount = value
	case "type":
		in.Type = value
	case "frequency":
		in.Frequency = value
	case "increaseDate":
		in.IncreaseDate = value
	case "notes":
		in.Notes = value
	case "accountAgeDays":
		in.AccountAgeDays = value
	case "accountAddedDate":
		in.AccountAddedDate = value
	case "lastTouched":
		in.LastTouched = value
	}
}

func dropBlankRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}
