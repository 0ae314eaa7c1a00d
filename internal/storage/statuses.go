package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

// ListStatuses loads the status board in stored order. The returned set
// always contains the Unsorted sentinel.
func (s *Store) ListStatuses(ctx context.Context) (*model.StatusSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM statuses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statuses: %w", err)
	}
	return model.NewStatusSet(names...), nil
}

// SaveStatuses replaces the stored board with the given set's user-facing
// order.
func (s *Store) SaveStatuses(ctx context.Context, set *model.StatusSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM statuses`); err != nil {
		return fmt.Errorf("failed to clear statuses: %w", err)
	}
	for i, name := range set.Ordered() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO statuses (name, position) VALUES (?, ?)`, name, i); err != nil {
			return fmt.Errorf("failed to insert status %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit statuses: %w", err)
	}
	return nil
}

// RemoveStatus drops a status from the board and reassigns its accounts to
// Unsorted. The sentinel itself cannot be removed.
func (s *Store) RemoveStatus(ctx context.Context, name string, now time.Time) error {
	if name == model.StatusUnsorted {
		return fmt.Errorf("the %s status cannot be removed", model.StatusUnsorted)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `DELETE FROM statuses WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to remove status %s: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm removal of %s: %w", name, err)
	}
	if affected == 0 {
		return fmt.Errorf("status %s: %w", name, ErrNotFound)
	}

	reassigned, err := tx.ExecContext(ctx,
		`UPDATE accounts SET status = ? WHERE status = ?`, model.StatusUnsorted, name)
	if err != nil {
		return fmt.Errorf("failed to reassign accounts from %s: %w", name, err)
	}
	moved, err := reassigned.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count reassigned accounts: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO history (entity_type, entity_id, action, details, created_at)
		VALUES ('status', ?, 'removed', ?, ?)`,
		name, fmt.Sprintf("Reassigned %d accounts to %s", moved, model.StatusUnsorted),
		now.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record status removal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status removal: %w", err)
	}
	s.logger.Info("removed status",
		zap.String("op", "storage.RemoveStatus"),
		zap.String("status", name),
		zap.Int64("reassigned", moved),
	)
	return nil
}
