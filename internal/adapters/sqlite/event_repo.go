package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// EventRepository implements secondary.EventRepository with SQLite.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new SQLite event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create persists a new event.
func (r *EventRepository) Create(ctx context.Context, event *secondary.EventRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO events (id, name, event_date) VALUES (?, ?, ?)",
		event.ID, event.Name, nullable(event.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*secondary.EventRecord, error) {
	record := &secondary.EventRecord{}
	var (
		date      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, event_date, created_at, updated_at FROM events WHERE id = ?",
		id,
	).Scan(&record.ID, &record.Name, &date, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	record.Date = date.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// List retrieves all events, newest first.
func (r *EventRepository) List(ctx context.Context) ([]*secondary.EventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, event_date, created_at, updated_at FROM events ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.EventRecord
	for rows.Next() {
		record := &secondary.EventRecord{}
		var (
			date      sql.NullString
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&record.ID, &record.Name, &date, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		record.Date = date.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		record.UpdatedAt = updatedAt.Format(time.RFC3339)
		events = append(events, record)
	}
	return events, nil
}

// Delete removes an event. Bands, patch channels and usage rows cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available event ID.
func (r *EventRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM events",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next event ID: %w", err)
	}
	return fmt.Sprintf("EVT-%03d", maxID+1), nil
}

// Ensure EventRepository implements the interface.
var _ secondary.EventRepository = (*EventRepository)(nil)
