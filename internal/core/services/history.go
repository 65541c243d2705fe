package services

import (
	"context"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the recorded connection events.
type HistoryService struct {
	history driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(history driven.HistoryStore) *HistoryService {
	return &HistoryService{history: history}
}

// List returns the most recent events, newest first. A limit <= 0
// returns everything.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.ConnectionEvent, error) {
	if s.history == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.history.List(ctx, limit)
}

// Last returns the most recent successful connection.
func (s *HistoryService) Last(ctx context.Context) (*domain.ConnectionEvent, error) {
	if s.history == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.history.Last(ctx)
}

// Clear removes all recorded events.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.history == nil {
		return domain.ErrNotImplemented
	}
	return s.history.Clear(ctx)
}
