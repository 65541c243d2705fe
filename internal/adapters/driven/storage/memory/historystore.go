package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore for testing.
type HistoryStore struct {
	mu     sync.RWMutex
	events map[string]domain.ConnectionEvent
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		events: make(map[string]domain.ConnectionEvent),
	}
}

// Save stores or updates an event.
func (s *HistoryStore) Save(ctx context.Context, event domain.ConnectionEvent) error {
	if event.ID == "" {
		return fmt.Errorf("%w: event ID is required", domain.ErrInvalidInput)
	}
	if !event.Status.IsValid() {
		return fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidInput, event.Status)
	}
	if event.StartedAt.IsZero() {
		event.StartedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
	return nil
}

// Get retrieves an event by ID.
func (s *HistoryStore) Get(ctx context.Context, id string) (*domain.ConnectionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &event, nil
}

// List returns the most recent events, newest first.
// A limit <= 0 returns everything.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]domain.ConnectionEvent, error) {
	events := s.sorted()
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Last returns the most recent successfully connected event.
func (s *HistoryStore) Last(ctx context.Context) (*domain.ConnectionEvent, error) {
	for _, event := range s.sorted() {
		if event.Status == domain.EventConnected {
			return &event, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Clear removes all events.
func (s *HistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]domain.ConnectionEvent)
	return nil
}

// Prune keeps only the newest keep events.
func (s *HistoryStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	events := s.sorted()
	if len(events) <= keep {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range events[keep:] {
		delete(s.events, event.ID)
	}
	return nil
}

// sorted returns all events ordered newest first.
func (s *HistoryStore) sorted() []domain.ConnectionEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]domain.ConnectionEvent, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartedAt.After(events[j].StartedAt)
	})
	return events
}
