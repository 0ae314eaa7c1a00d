package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/dates"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// SaveAccount inserts or replaces an account. Payments are managed
// separately through AddPayment.
func (s *Store) SaveAccount(ctx context.Context, a model.Account) error {
	if a.ID == "" {
		return fmt.Errorf("account ID cannot be empty")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, merchant, client, status, start_date, amount, type, frequency, increase_date, notes, added_date, last_touched)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			merchant = excluded.merchant,
			client = excluded.client,
			status = excluded.status,
			start_date = excluded.start_date,
			amount = excluded.amount,
			type = excluded.type,
			frequency = excluded.frequency,
			increase_date = excluded.increase_date,
			notes = excluded.notes,
			added_date = excluded.added_date,
			last_touched = excluded.last_touched`,
		a.ID, a.Merchant, a.Client, a.Status, a.StartDate, a.Amount, a.Type,
		a.Frequency, a.IncreaseDate, a.Notes, a.AddedDate, a.LastTouched)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", a.ID, err)
	}
	return nil
}

// SaveAccounts saves a batch of accounts in one transaction, as an import
// does.
func (s *Store) SaveAccounts(ctx context.Context, accounts []model.Account) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, a := range accounts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (id, merchant, client, status, start_date, amount, type, frequency, increase_date, notes, added_date, last_touched)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Merchant, a.Client, a.Status, a.StartDate, a.Amount, a.Type,
			a.Frequency, a.IncreaseDate, a.Notes, a.AddedDate, a.LastTouched); err != nil {
			return fmt.Errorf("failed to insert account %s: %w", a.Merchant, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit accounts: %w", err)
	}
	s.logger.Info("saved accounts", zap.String("op", "storage.SaveAccounts"), zap.Int("count", len(accounts)))
	return nil
}

// GetAccount loads one account with its payments.
func (s *Store) GetAccount(ctx context.Context, id string) (model.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, merchant, client, status, start_date, amount, type, frequency, increase_date, notes, added_date, last_touched
		FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to load account %s: %w", id, err)
	}
	payments, err := s.paymentsFor(ctx, []string{id})
	if err != nil {
		return model.Account{}, err
	}
	a.Payments = payments[id]
	if a.Payments == nil {
		a.Payments = []model.Payment{}
	}
	return a, nil
}

// ListAccounts loads every account with payments attached, in merchant
// order.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, merchant, client, status, start_date, amount, type, frequency, increase_date, notes, added_date, last_touched
		FROM accounts ORDER BY merchant COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	var ids []string
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.Payments = []model.Payment{}
		accounts = append(accounts, a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	payments, err := s.paymentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if p, ok := payments[accounts[i].ID]; ok {
			accounts[i].Payments = p
		}
	}
	return accounts, nil
}

// DeleteAccount removes an account and its payments.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM payments WHERE account_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete payments for %s: %w", id, err)
	}
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm delete of %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return nil
}

// TouchAccount marks an account worked as of the given moment and records
// the action in the history log.
func (s *Store) TouchAccount(ctx context.Context, id, action, details string, now time.Time) error {
	result, err := s.db.ExecContext(ctx, `UPDATE accounts SET last_touched = ? WHERE id = ?`,
		dates.DateKey(now), id)
	if err != nil {
		return fmt.Errorf("failed to touch account %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm touch of %s: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}
	return s.AppendHistory(ctx, model.HistoryEntry{
		EntityType: "account",
		EntityID:   id,
		Action:     action,
		Details:    details,
		CreatedAt:  now,
	})
}

// AddPayment appends a payment record to an account.
func (s *Store) AddPayment(ctx context.Context, accountID string, p model.Payment) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (account_id, date, amount) VALUES (?, ?, ?)`,
		accountID, p.Date, p.Amount); err != nil {
		return fmt.Errorf("failed to add payment for %s: %w", accountID, err)
	}
	return nil
}

func (s *Store) paymentsFor(ctx context.Context, accountIDs []string) (map[string][]model.Payment, error) {
	result := make(map[string][]model.Payment)
	if len(accountIDs) == 0 {
		return result, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, date, amount FROM payments ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}
	for rows.Next() {
		var accountID string
		var p model.Payment
		if err := rows.Scan(&accountID, &p.Date, &p.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if wanted[accountID] {
			result[accountID] = append(result[accountID], p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return result, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanAccount(row scannable) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Merchant, &a.Client, &a.Status, &a.StartDate,
		&a.Amount, &a.Type, &a.Frequency, &a.IncreaseDate, &a.Notes,
		&a.AddedDate, &a.LastTouched)
	return a, err
}
