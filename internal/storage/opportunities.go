package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

// SaveOpportunity inserts or replaces an opportunity.
func (s *Store) SaveOpportunity(ctx context.Context, o model.Opportunity) error {
	if o.ID == "" {
		return fmt.Errorf("opportunity ID cannot be empty")
	}
	var planMadeAt any
	if !o.PaymentPlanMadeAt.IsZero() {
		planMadeAt = o.PaymentPlanMadeAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO opportunities (id, merchant, client, amount, type, frequency, start_date, payment_status, notes, stage, converted_account_id, payment_plan_made_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			merchant = excluded.merchant,
			client = excluded.client,
			amount = excluded.amount,
			type = excluded.type,
			frequency = excluded.frequency,
			start_date = excluded.start_date,
			payment_status = excluded.payment_status,
			notes = excluded.notes,
			stage = excluded.stage,
			converted_account_id = excluded.converted_account_id,
			payment_plan_made_at = excluded.payment_plan_made_at`,
		o.ID, o.Merchant, o.Client, o.Amount, o.Type, o.Frequency, o.StartDate,
		o.PaymentStatus, o.Notes, o.Stage, o.ConvertedAccountID, planMadeAt)
	if err != nil {
		return fmt.Errorf("failed to save opportunity %s: %w", o.ID, err)
	}
	return nil
}

// ListOpportunities loads every opportunity in merchant order.
func (s *Store) ListOpportunities(ctx context.Context) ([]model.Opportunity, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, merchant, client, amount, type, frequency, start_date, payment_status, notes, stage, converted_account_id, payment_plan_made_at
		FROM opportunities ORDER BY merchant COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var opportunities []model.Opportunity
	for rows.Next() {
		var o model.Opportunity
		var planMadeAt sql.NullString
		if err := rows.Scan(&o.ID, &o.Merchant, &o.Client, &o.Amount, &o.Type,
			&o.Frequency, &o.StartDate, &o.PaymentStatus, &o.Notes, &o.Stage,
			&o.ConvertedAccountID, &planMadeAt); err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		if planMadeAt.Valid && planMadeAt.String != "" {
			stamp, err := time.Parse(time.RFC3339, planMadeAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse plan stamp for %s: %w", o.ID, err)
			}
			o.PaymentPlanMadeAt = stamp
		}
		opportunities = append(opportunities, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunities: %w", err)
	}
	return opportunities, nil
}

// DeleteOpportunities removes the given opportunities.
func (s *Store) DeleteOpportunities(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM opportunities WHERE id IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete opportunities: %w", err)
	}
	return nil
}
