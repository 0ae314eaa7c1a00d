package model

import "time"

// HistoryEntry records an action taken against an account or opportunity.
type HistoryEntry struct {
	ID         int64
	EntityType string
	EntityID   string
	Action     string
	Details    string
	CreatedAt  time.Time
}
