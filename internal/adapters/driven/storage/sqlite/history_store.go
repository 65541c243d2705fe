package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/RobGruhl/nordvpn-cli/internal/core/domain"
	"github.com/RobGruhl/nordvpn-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// eventColumns is the column list shared by every event query.
const eventColumns = `id, hostname, config_name, country_code, city, server_load,
	protocol, status, error, started_at, completed_at`

// Save stores or updates an event.
func (s *historyStore) Save(ctx context.Context, event domain.ConnectionEvent) error {
	if event.ID == "" {
		return fmt.Errorf("%w: event ID is required", domain.ErrInvalidInput)
	}
	if !event.Status.IsValid() {
		return fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidInput, event.Status)
	}
	if event.StartedAt.IsZero() {
		event.StartedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO connection_events (id, hostname, config_name, country_code, city,
			server_load, protocol, status, error, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			server_load = excluded.server_load,
			completed_at = excluded.completed_at
	`, event.ID, event.Hostname, event.ConfigName,
		nullString(event.CountryCode), nullString(event.City),
		event.ServerLoad, string(event.Protocol), string(event.Status),
		nullString(event.Error),
		event.StartedAt.UTC().Format(time.RFC3339),
		formatNullableTime(event.CompletedAt))

	if err != nil {
		return fmt.Errorf("saving connection event: %w", err)
	}
	return nil
}

// Get retrieves an event by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.ConnectionEvent, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM connection_events WHERE id = ?`, id)

	return scanEvent(row)
}

// List returns the most recent events, newest first.
// A limit <= 0 returns everything.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.ConnectionEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM connection_events ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying connection events: %w", err)
	}
	defer rows.Close()

	var events []domain.ConnectionEvent //nolint:prealloc // size unknown from query
	for rows.Next() {
		event, err := scanEventRows(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating connection events: %w", err)
	}

	return events, nil
}

// Last returns the most recent successfully connected event.
func (s *historyStore) Last(ctx context.Context) (*domain.ConnectionEvent, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+eventColumns+` FROM connection_events
		WHERE status = ?
		ORDER BY started_at DESC
		LIMIT 1
	`, string(domain.EventConnected))

	return scanEvent(row)
}

// Clear removes all events.
func (s *historyStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM connection_events")
	if err != nil {
		return fmt.Errorf("clearing connection events: %w", err)
	}
	return nil
}

// Prune keeps only the newest keep events.
func (s *historyStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM connection_events
		WHERE id NOT IN (
			SELECT id FROM connection_events
			ORDER BY started_at DESC
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning connection events: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanEvent scans a single event row.
func scanEvent(row *sql.Row) (*domain.ConnectionEvent, error) {
	var event domain.ConnectionEvent
	var countryCode, city, errMsg, completedAt sql.NullString
	var protocol, status, startedAt string

	if err := row.Scan(&event.ID, &event.Hostname, &event.ConfigName,
		&countryCode, &city, &event.ServerLoad,
		&protocol, &status, &errMsg, &startedAt, &completedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning connection event: %w", err)
	}

	fillEvent(&event, countryCode, city, errMsg, protocol, status, startedAt, completedAt)
	return &event, nil
}

// scanEventRows scans an event from *sql.Rows.
func scanEventRows(rows *sql.Rows) (*domain.ConnectionEvent, error) {
	var event domain.ConnectionEvent
	var countryCode, city, errMsg, completedAt sql.NullString
	var protocol, status, startedAt string

	if err := rows.Scan(&event.ID, &event.Hostname, &event.ConfigName,
		&countryCode, &city, &event.ServerLoad,
		&protocol, &status, &errMsg, &startedAt, &completedAt); err != nil {
		return nil, fmt.Errorf("scanning connection event: %w", err)
	}

	fillEvent(&event, countryCode, city, errMsg, protocol, status, startedAt, completedAt)
	return &event, nil
}

// fillEvent copies scanned nullable columns into the event.
func fillEvent(event *domain.ConnectionEvent,
	countryCode, city, errMsg sql.NullString,
	protocol, status, startedAt string, completedAt sql.NullString,
) {
	event.CountryCode = countryCode.String
	event.City = city.String
	event.Error = errMsg.String
	event.Protocol = domain.Protocol(protocol)
	event.Status = domain.EventStatus(status)
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		event.StartedAt = t
	}
	event.CompletedAt = parseNullableTime(completedAt)
}

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
