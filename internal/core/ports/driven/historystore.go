package driven

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// HistoryStore persists connection events.
type HistoryStore interface {
	// Save stores or updates an event.
	Save(ctx context.Context, event domain.ConnectionEvent) error

	// Get retrieves an event by ID.
	Get(ctx context.Context, id string) (*domain.ConnectionEvent, error)

	// List returns the most recent events, newest first.
	// A limit <= 0 returns everything.
	List(ctx context.Context, limit int) ([]domain.ConnectionEvent, error)

	// Last returns the most recent successfully connected event.
	// Returns domain.ErrNotFound when there is none.
	Last(ctx context.Context) (*domain.ConnectionEvent, error)

	// Clear removes all events.
	Clear(ctx context.Context) error

	// Prune keeps only the newest keep events.
	Prune(ctx context.Context, keep int) error
}
