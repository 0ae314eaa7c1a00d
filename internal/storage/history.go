package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

// AppendHistory records an action in the history log.
func (s *Store) AppendHistory(ctx context.Context, entry model.HistoryEntry) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO history (entity_type, entity_id, action, details, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.EntityType, entry.EntityID, entry.Action, entry.Details,
		entry.CreatedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	return nil
}

// History loads the most recent history entries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.EntityType, &entry.EntityID,
			&entry.Action, &entry.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		stamp, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse history stamp: %w", err)
		}
		entry.CreatedAt = stamp
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return entries, nil
}
