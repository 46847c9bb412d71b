package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// BandRepository implements secondary.BandRepository with PostgreSQL.
type BandRepository struct {
	db *pgxpool.Pool
}

// NewBandRepository creates a new PostgreSQL band repository.
func NewBandRepository(db *pgxpool.Pool) *BandRepository {
	return &BandRepository{db: db}
}

func scanBand(scan func(...any) error) (*secondary.BandRecord, error) {
	record := &secondary.BandRecord{}
	var createdAt, updatedAt time.Time
	if err := scan(&record.ID, &record.EventID, &record.Name, &record.SortOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// Create persists a new band.
func (r *BandRepository) Create(ctx context.Context, band *secondary.BandRecord) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO bands (id, event_id, name, sort_order) VALUES ($1, $2, $3, $4)",
		band.ID, band.EventID, band.Name, band.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to create band: %w", err)
	}
	return nil
}

// GetByID retrieves a band by its ID.
func (r *BandRepository) GetByID(ctx context.Context, id string) (*secondary.BandRecord, error) {
	row := r.db.QueryRow(ctx,
		"SELECT id, event_id, name, sort_order, created_at, updated_at FROM bands WHERE id = $1", id)

	record, err := scanBand(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get band: %w", err)
	}
	return record, nil
}

// ListByEvent retrieves an event's bands in presentation order.
func (r *BandRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.BandRecord, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, event_id, name, sort_order, created_at, updated_at FROM bands WHERE event_id = $1 ORDER BY sort_order ASC",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bands: %w", err)
	}
	defer rows.Close()

	var bands []*secondary.BandRecord
	for rows.Next() {
		record, err := scanBand(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan band: %w", err)
		}
		bands = append(bands, record)
	}
	return bands, rows.Err()
}

// UpdateName updates a band's display name and touches updated_at.
func (r *BandRepository) UpdateName(ctx context.Context, id, name string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE bands SET name = $1, updated_at = now() WHERE id = $2", name, id)
	if err != nil {
		return fmt.Errorf("failed to update band: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// Touch bumps updated_at so the band becomes the event's baseline band.
func (r *BandRepository) Touch(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "UPDATE bands SET updated_at = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to touch band: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetMostRecentlyUpdated returns the event's most recently saved band, or
// nil when the event has no bands.
func (r *BandRepository) GetMostRecentlyUpdated(ctx context.Context, eventID string) (*secondary.BandRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, event_id, name, sort_order, created_at, updated_at FROM bands
		 WHERE event_id = $1 ORDER BY updated_at DESC, sort_order DESC LIMIT 1`,
		eventID,
	)

	record, err := scanBand(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get baseline band: %w", err)
	}
	return record, nil
}

// Delete removes a band. Its usage rows cascade.
func (r *BandRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM bands WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete band: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("band %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available band ID.
func (r *BandRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM bands",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next band ID: %w", err)
	}
	return fmt.Sprintf("BAND-%03d", maxID+1), nil
}

// Ensure BandRepository implements the interface.
var _ secondary.BandRepository = (*BandRepository)(nil)
