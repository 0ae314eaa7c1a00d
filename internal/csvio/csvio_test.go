package csvio

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

func testNow() time.Time {
	return time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local)
}

func TestParseImport(t *testing.T) {
	input := strings.Join([]string{
		`Merchant,Client,Status,Start Date,Amount,Frequency,Last Worked,Account Added Date`,
		`Acme Vending,North,Daily,2024-03-01,"$1,200",daily,2024-03-14,2024-03-01`,
		`Beta Goods,,Brand New Column,15,$500,monthly,,2024-01-10`,
		`,,Daily,,,,,`,
	}, "\n")

	result, err := ParseImport(strings.NewReader(input), testNow())
	require.NoError(t, err)
	require.Len(t, result.Accounts, 2)

	first := result.Accounts[0]
	assert.Equal(t, "Acme Vending", first.Merchant)
	assert.Equal(t, "Daily", first.Status)
	assert.Equal(t, "$1,200", first.Amount)
	assert.Equal(t, model.FrequencyDaily, first.Frequency)
	assert.Equal(t, "2024-03-14", first.LastTouched)
	assert.Equal(t, "2024-03-01", first.AddedDate)

	second := result.Accounts[1]
	assert.Equal(t, "Beta Goods", second.Merchant)
	assert.Equal(t, model.FrequencyMonthly, second.Frequency)
	assert.Equal(t, "15", second.StartDate)

	assert.True(t, result.Statuses.Contains("Brand New Column"),
		"statuses in use must be admitted to the set")
	ordered := result.Statuses.Ordered()
	assert.Equal(t, model.StatusUnsorted, ordered[len(ordered)-1])
}

func TestParseImportHeaderAliases(t *testing.T) {
	input := strings.Join([]string{
		`Business Name,Last Contact,Added Date,Age`,
		`Acme,3/10/2024,,20`,
	}, "\n")

	result, err := ParseImport(strings.NewReader(input), testNow())
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)

	a := result.Accounts[0]
	assert.Equal(t, "Acme", a.Merchant)
	assert.Equal(t, "2024-03-10", a.LastTouched)
	// No added date, so the age column back-computes it.
	assert.Equal(t, "2024-02-24", a.AddedDate)
}

func TestParseImportBOM(t *testing.T) {
	input := "\uFEFFMerchant,Status\nAcme,Daily\n"
	result, err := ParseImport(strings.NewReader(input), testNow())
	require.NoError(t, err)
	require.Len(t, result.Accounts, 1)
	assert.Equal(t, "Acme", result.Accounts[0].Merchant)
}

func TestParseImportErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{name: "Empty file", input: "", err: ErrNoRows},
		{name: "Header only", input: "Merchant,Status\n", err: ErrNoRows},
		{name: "No merchant column", input: "Client,Status\nNorth,Daily\n", err: ErrNoMerchantField},
		{name: "No usable rows", input: "Merchant,Status\n,Daily\n", err: ErrNoAccounts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseImport(strings.NewReader(tt.input), testNow())
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, templateHeaders, records[0])
}

func TestWriteAccounts(t *testing.T) {
	now := testNow()
	accounts := []model.Account{
		{
			Merchant:    "Acme Vending",
			Client:      "North",
			Status:      "Daily",
			StartDate:   "2024-03-01",
			Amount:      "$1,200",
			Frequency:   model.FrequencyDaily,
			Notes:       `includes "rush" fee`,
			AddedDate:   "2024-03-05",
			LastTouched: "2024-03-14",
			Payments: []model.Payment{
				{Date: "2024-03-10", Amount: 1200},
				{Date: "2024-02-10", Amount: 1200},
			},
		},
		{
			Merchant:  "No Dates LLC",
			Status:    "Unsorted",
			Frequency: "Lump Sum",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts, "2024-03", now))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "Payments (2024-03)", header[len(header)-1])

	first := records[1]
	assert.Equal(t, "Acme Vending", first[0])
	assert.Equal(t, "10", first[10], "account age days")
	assert.Equal(t, "03/15/2024", first[12], "next follow up: touched yesterday, daily interval")
	assert.Equal(t, "03/15/2024", first[13], "next payment: daily is due today")
	assert.Equal(t, "Due", first[14])
	assert.Equal(t, "1200", first[15], "only the March payment counts")

	second := records[2]
	assert.Equal(t, "No Dates LLC", second[0])
	assert.Equal(t, "", second[13], "lump sum has no next payment")
	assert.Equal(t, "No activity", second[14])
}
