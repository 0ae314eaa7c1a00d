// Package model defines the data structures shared by the scheduling,
// cadence, and projection engines, plus the normalization applied when raw
// records cross into the system.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

// Payment is one recorded payment against an account. Date is a YYYY-MM-DD
// date key.
type Payment struct {
	Date   string
	Amount float64
}

// Account is a merchant/collections record. Date-like fields are stored as
// strings and parsed on demand; the engines tolerate malformed values.
type Account struct {
	ID           string
	Merchant     string
	Client       string
	Status       string
	StartDate    string
	Amount       string
	Type         string
	Frequency    string
	IncreaseDate string
	Notes        string
	AddedDate    string
	LastTouched  string
	Payments     []Payment
}

// AccountInput carries raw field values from a CSV import or an API write
// before normalization.
type AccountInput struct {
	Merchant         string
	Client           string
	Status           string
	StartDate        string
	Amount           string
	Type             string
	Frequency        string
	IncreaseDate     string
	Notes            string
	AccountAddedDate string
	AccountAgeDays   string
	LastTouched      string
}

// NewID mints a record identifier.
func NewID() string {
	return uuid.NewString()
}

// NormalizeAccount builds an Account from raw input: fields are trimmed,
// the status defaults to Unsorted, the frequency is normalized into the
// closed set, and the added date falls back from an explicit date to an
// age-in-days column to today. The last-touched date is canonicalized to a
// date key and dropped if unparseable.
func NormalizeAccount(in AccountInput, now time.Time) Account {
	addedDate := dates.DateKey(now)
	if added, ok := dates.ParseDate(in.AccountAddedDate, now); ok {
		addedDate = dates.DateKey(added)
	} else if age, err := strconv.Atoi(strings.TrimSpace(in.AccountAgeDays)); err == nil {
		addedDate = dates.DateKey(dates.AddDays(now, -age))
	}

	lastTouched := ""
	if touched, ok := dates.ParseDate(in.LastTouched, now); ok {
		lastTouched = dates.DateKey(touched)
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusUnsorted
	}

	return Account{
		ID:           NewID(),
		Merchant:     strings.TrimSpace(in.Merchant),
		Client:       strings.TrimSpace(in.Client),
		Status:       status,
		StartDate:    strings.TrimSpace(in.StartDate),
		Amount:       strings.TrimSpace(in.Amount),
		Type:         strings.TrimSpace(in.Type),
		Frequency:    NormalizeFrequency(in.Frequency),
		IncreaseDate: strings.TrimSpace(in.IncreaseDate),
		Notes:        strings.TrimSpace(in.Notes),
		AddedDate:    addedDate,
		LastTouched:  lastTouched,
		Payments:     []Payment{},
	}
}
