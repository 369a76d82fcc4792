package audit

import (
	"context"

	domain "ministry/internal/domain/audit"
)

// Store defines the interface for activity log persistence.
type Store interface {
	// Save persists an activity entry.
	// PRE: event has a non-empty ID
	// POST: Event is persisted
	Save(ctx context.Context, event domain.Event) error

	// List returns one page of entries matching filter.
	// PRE: filter.Limit > 0
	// POST: Returns entries ordered newest first
	List(ctx context.Context, filter Filter) ([]domain.Event, error)

	// Count returns how many entries match filter, ignoring Limit and Offset.
	Count(ctx context.Context, filter Filter) (int, error)
}

// Filter narrows and pages the activity log.
type Filter struct {
	Category *domain.Category
	LeaderID *int
	Outcome  *domain.Outcome
	Limit    int
	Offset   int
}

var _ Store = (*SQLiteStore)(nil)
