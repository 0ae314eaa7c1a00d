package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

// ConvertedRetention is how long a terminal-stage opportunity lingers before
// the sweep removes it.
const ConvertedRetention = 30 * time.Minute

// ErrMissingPlanCriteria is returned when an opportunity is moved to the
// terminal stage without the fields an account needs.
var ErrMissingPlanCriteria = errors.New("payment plan requires amount, frequency, start date, and status")

// Store is the narrow persistence surface the orchestrator needs. The
// SQLite layer satisfies it.
type Store interface {
	SaveAccount(ctx context.Context, account model.Account) error
	SaveOpportunity(ctx context.Context, opportunity model.Opportunity) error
	DeleteOpportunities(ctx context.Context, ids []string) error
	AppendHistory(ctx context.Context, entry model.HistoryEntry) error
}

// Orchestrator owns the side effects of pipeline stage transitions:
// auto-creating an account when a deal reaches the terminal stage and
// sweeping stale terminal-stage opportunities. The pure confidence lookup
// stays in this package's functions; all persistence and timing decisions
// live here.
type Orchestrator struct {
	store  Store
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator. A nil logger falls back to a
// no-op logger.
func NewOrchestrator(store Store, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{store: store, logger: logger}
}

// HasPaymentPlanCriteria reports whether an opportunity carries everything
// an account needs: amount, frequency, start date, and a payment status.
func HasPaymentPlanCriteria(opp model.Opportunity) bool {
	return strings.TrimSpace(opp.Amount) != "" &&
		strings.TrimSpace(opp.Frequency) != "" &&
		strings.TrimSpace(opp.StartDate) != "" &&
		strings.TrimSpace(opp.PaymentStatus) != ""
}

// AdvanceStage moves an opportunity to a new stage and persists it. Moving
// to the terminal stage validates the plan criteria, creates the account on
// first arrival, and stamps the arrival time for the expiry sweep.
func (o *Orchestrator) AdvanceStage(ctx context.Context, opp model.Opportunity, stage string, now time.Time) (model.Opportunity, error) {
	if !IsStage(stage) {
		return opp, fmt.Errorf("unknown pipeline stage %q", stage)
	}

	if stage == StagePaymentPlanMade {
		if !HasPaymentPlanCriteria(opp) {
			return opp, ErrMissingPlanCriteria
		}
		if opp.ConvertedAccountID == "" {
			account := o.accountFromOpportunity(opp, now)
			if err := o.store.SaveAccount(ctx, account); err != nil {
				return opp, fmt.Errorf("failed to create account from opportunity %s: %w", opp.ID, err)
			}
			opp.ConvertedAccountID = account.ID
			o.logger.Info("converted opportunity to account",
				zap.String("op", "pipeline.AdvanceStage"),
				zap.String("opportunity", opp.ID),
				zap.String("account", account.ID),
			)
			if err := o.store.AppendHistory(ctx, model.HistoryEntry{
				EntityType: "opportunity",
				EntityID:   opp.ID,
				Action:     "converted_to_account",
				Details:    fmt.Sprintf("Converted to account %s", account.ID),
				CreatedAt:  now,
			}); err != nil {
				return opp, fmt.Errorf("failed to record conversion: %w", err)
			}
		}
		opp.PaymentPlanMadeAt = now
	}

	opp.Stage = stage
	if err := o.store.SaveOpportunity(ctx, opp); err != nil {
		return opp, fmt.Errorf("failed to save opportunity %s: %w", opp.ID, err)
	}
	if err := o.store.AppendHistory(ctx, model.HistoryEntry{
		EntityType: "opportunity",
		EntityID:   opp.ID,
		Action:     "stage_change",
		Details:    fmt.Sprintf("Moved to %s", stage),
		CreatedAt:  now,
	}); err != nil {
		return opp, fmt.Errorf("failed to record stage change: %w", err)
	}
	return opp, nil
}

// SweepConverted deletes terminal-stage opportunities whose conversion stamp
// is older than the retention window and returns the removed IDs.
func (o *Orchestrator) SweepConverted(ctx context.Context, opportunities []model.Opportunity, now time.Time) ([]string, error) {
	cutoff := now.Add(-ConvertedRetention)
	var expired []string
	for _, opp := range opportunities {
		if opp.Stage != StagePaymentPlanMade || opp.PaymentPlanMadeAt.IsZero() {
			continue
		}
		if !opp.PaymentPlanMadeAt.After(cutoff) {
			expired = append(expired, opp.ID)
		}
	}
	if len(expired) == 0 {
		return nil, nil
	}
	if err := o.store.DeleteOpportunities(ctx, expired); err != nil {
		return nil, fmt.Errorf("failed to sweep converted opportunities: %w", err)
	}
	o.logger.Info("swept converted opportunities",
		zap.String("op", "pipeline.SweepConverted"),
		zap.Int("count", len(expired)),
	)
	return expired, nil
}

func (o *Orchestrator) accountFromOpportunity(opp model.Opportunity, now time.Time) model.Account {
	notes := "Converted from opportunity"
	if strings.TrimSpace(opp.Notes) != "" {
		notes = fmt.Sprintf("Converted from opportunity: %s", opp.Notes)
	}
	status := strings.TrimSpace(opp.PaymentStatus)
	if status == "" {
		status = model.StatusUnsorted
	}
	account := model.NormalizeAccount(model.AccountInput{
		Merchant:  opp.Merchant,
		Client:    opp.Client,
		Status:    status,
		StartDate: opp.StartDate,
		Amount:    opp.Amount,
		Type:      opp.Type,
		Frequency: opp.Frequency,
		Notes:     notes,
	}, now)
	account.LastTouched = dates.DateKey(now)
	return account
}
