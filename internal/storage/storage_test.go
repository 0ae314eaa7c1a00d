package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGetAccount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := model.Account{
		ID:          "acc-1",
		Merchant:    "Atlas Vending",
		Client:      "Northstar Capital",
		Status:      "Paying",
		StartDate:   "2026-01-05",
		Amount:      "250",
		Frequency:   model.FrequencyWeekly,
		Notes:       "Weekly plan",
		AddedDate:   "2026-01-01",
		LastTouched: "2026-02-10",
	}
	require.NoError(t, s.SaveAccount(ctx, a))

	got, err := s.GetAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "Atlas Vending", got.Merchant)
	assert.Equal(t, "Paying", got.Status)
	assert.Empty(t, got.Payments)

	// Saving again with the same ID updates in place.
	a.Status = "Settled"
	require.NoError(t, s.SaveAccount(ctx, a))
	got, err = s.GetAccount(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "Settled", got.Status)
}

func TestGetAccountNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAccount(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAccountsOrdersByMerchant(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAccounts(ctx, []model.Account{
		{ID: "a", Merchant: "zebra auto"},
		{ID: "b", Merchant: "Acme Freight"},
		{ID: "c", Merchant: "Mercer Tile"},
	}))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "Acme Freight", accounts[0].Merchant)
	assert.Equal(t, "Mercer Tile", accounts[1].Merchant)
	assert.Equal(t, "zebra auto", accounts[2].Merchant)
}

func TestPaymentsAttachToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAccount(ctx, model.Account{ID: "a", Merchant: "Atlas"}))
	require.NoError(t, s.SaveAccount(ctx, model.Account{ID: "b", Merchant: "Borealis"}))
	require.NoError(t, s.AddPayment(ctx, "a", model.Payment{Date: "2026-02-03", Amount: 100}))
	require.NoError(t, s.AddPayment(ctx, "a", model.Payment{Date: "2026-02-01", Amount: 50}))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	require.Len(t, accounts[0].Payments, 2)
	assert.Equal(t, "2026-02-01", accounts[0].Payments[0].Date, "payments come back in date order")
	assert.Equal(t, 50.0, accounts[0].Payments[0].Amount)
	assert.Empty(t, accounts[1].Payments)
}

func TestDeleteAccountRemovesPayments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveAccount(ctx, model.Account{ID: "a", Merchant: "Atlas"}))
	require.NoError(t, s.AddPayment(ctx, "a", model.Payment{Date: "2026-02-03", Amount: 100}))
	require.NoError(t, s.DeleteAccount(ctx, "a"))

	_, err := s.GetAccount(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&count))
	assert.Zero(t, count)

	assert.ErrorIs(t, s.DeleteAccount(ctx, "a"), ErrNotFound)
}

func TestTouchAccountStampsAndLogs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)

	require.NoError(t, s.SaveAccount(ctx, model.Account{ID: "a", Merchant: "Atlas"}))
	require.NoError(t, s.TouchAccount(ctx, "a", "touched", "Called merchant", now))

	got, err := s.GetAccount(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-05", got.LastTouched)

	entries, err := s.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "account", entries[0].EntityType)
	assert.Equal(t, "a", entries[0].EntityID)
	assert.Equal(t, "touched", entries[0].Action)
	assert.Equal(t, "Called merchant", entries[0].Details)
	assert.True(t, entries[0].CreatedAt.Equal(now))

	assert.ErrorIs(t, s.TouchAccount(ctx, "missing", "touched", "", now), ErrNotFound)
}

func TestStatusBoardSeededAndOrdered(t *testing.T) {
	s := newTestStore(t)

	set, err := s.ListStatuses(context.Background())
	require.NoError(t, err)

	ordered := set.Ordered()
	require.NotEmpty(t, ordered)
	assert.Equal(t, model.StatusUnsorted, ordered[len(ordered)-1], "Unsorted stays last")
	assert.ElementsMatch(t, model.DefaultStatuses, ordered)
}

func TestSaveStatusesReplacesBoard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveStatuses(ctx, model.NewStatusSet("Paying", "Ghosting")))

	set, err := s.ListStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paying", "Ghosting", model.StatusUnsorted}, set.Ordered())
}

func TestRemoveStatusCascadesToUnsorted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveAccounts(ctx, []model.Account{
		{ID: "a", Merchant: "Atlas", Status: "Paying"},
		{ID: "b", Merchant: "Borealis", Status: "Paying"},
		{ID: "c", Merchant: "Cascade", Status: "Ghosting"},
	}))

	require.NoError(t, s.RemoveStatus(ctx, "Paying", now))

	accounts, err := s.ListAccounts(ctx)
	require.NoError(t, err)
	statuses := map[string]string{}
	for _, a := range accounts {
		statuses[a.ID] = a.Status
	}
	assert.Equal(t, model.StatusUnsorted, statuses["a"])
	assert.Equal(t, model.StatusUnsorted, statuses["b"])
	assert.Equal(t, "Ghosting", statuses["c"])

	set, err := s.ListStatuses(ctx)
	require.NoError(t, err)
	assert.False(t, set.Contains("Paying"))
}

func TestRemoveStatusRejectsSentinelAndMissing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	assert.Error(t, s.RemoveStatus(ctx, model.StatusUnsorted, now))
	assert.ErrorIs(t, s.RemoveStatus(ctx, "Never Existed", now), ErrNotFound)
}

func TestOpportunityRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	stamp := time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)

	o := model.Opportunity{
		ID:            "opp-1",
		Merchant:      "Atlas Vending",
		Amount:        "500",
		Frequency:     model.FrequencyMonthly,
		StartDate:     "2026-04-01",
		PaymentStatus: "Current",
		Stage:         "Offer Sent",
	}
	require.NoError(t, s.SaveOpportunity(ctx, o))

	listed, err := s.ListOpportunities(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Offer Sent", listed[0].Stage)
	assert.True(t, listed[0].PaymentPlanMadeAt.IsZero(), "unstamped plan stays zero")

	o.Stage = "Payment Plan Made"
	o.ConvertedAccountID = "acc-9"
	o.PaymentPlanMadeAt = stamp
	require.NoError(t, s.SaveOpportunity(ctx, o))

	listed, err = s.ListOpportunities(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "acc-9", listed[0].ConvertedAccountID)
	assert.True(t, listed[0].PaymentPlanMadeAt.Equal(stamp))
}

func TestDeleteOpportunities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveOpportunity(ctx, model.Opportunity{ID: "a", Merchant: "Atlas"}))
	require.NoError(t, s.SaveOpportunity(ctx, model.Opportunity{ID: "b", Merchant: "Borealis"}))

	require.NoError(t, s.DeleteOpportunities(ctx, nil))
	require.NoError(t, s.DeleteOpportunities(ctx, []string{"a"}))

	listed, err := s.ListOpportunities(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "b", listed[0].ID)
}

func TestHistoryNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendHistory(ctx, model.HistoryEntry{
			EntityType: "account",
			EntityID:   "a",
			Action:     "touched",
			CreatedAt:  base.AddDate(0, 0, i),
		}))
	}

	entries, err := s.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
}
