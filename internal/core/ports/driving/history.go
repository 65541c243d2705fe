package driving

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
)

// HistoryService exposes recorded connection attempts.
type HistoryService interface {
	// List returns the most recent connection events, newest first.
	// A limit <= 0 returns all events.
	List(ctx context.Context, limit int) ([]domain.ConnectionEvent, error)

	// Last returns the most recent successful connection.
	// Returns domain.ErrNotFound when there is none.
	Last(ctx context.Context) (*domain.ConnectionEvent, error)

	// Clear removes all recorded events.
	Clear(ctx context.Context) error
}
