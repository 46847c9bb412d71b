package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// EventRepository implements secondary.EventRepository with PostgreSQL.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new PostgreSQL event repository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(scan func(...any) error) (*secondary.EventRecord, error) {
	record := &secondary.EventRecord{}
	var (
		date      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	if err := scan(&record.ID, &record.Name, &date, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.Date = date.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new event.
func (r *EventRepository) Create(ctx context.Context, event *secondary.EventRecord) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO events (id, name, event_date) VALUES ($1, $2, $3)",
		event.ID, event.Name, nullable(event.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*secondary.EventRecord, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, name, event_date, created_at, updated_at FROM events WHERE id = $1", id)

	record, err := scanEvent(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return record, nil
}

// List retrieves all events, newest first.
func (r *EventRepository) List(ctx context.Context) ([]*secondary.EventRecord, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, name, event_date, created_at, updated_at FROM events ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.EventRecord
	for rows.Next() {
		record, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, record)
	}
	return events, rows.Err()
}

// Delete removes an event. Bands, patch channels and usage rows cascade.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available event ID.
func (r *EventRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM events",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next event ID: %w", err)
	}
	return fmt.Sprintf("EVT-%03d", maxID+1), nil
}

// Ensure EventRepository implements the interface.
var _ secondary.EventRepository = (*EventRepository)(nil)
