package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// PatchChannelRepository implements secondary.PatchChannelRepository with
// PostgreSQL. The (event_id, channel_number) unique constraint is immediate,
// not deferred, so renumbering goes through the app layer's two phases here
// as well.
type PatchChannelRepository struct {
	db *pgxpool.Pool
}

// NewPatchChannelRepository creates a new PostgreSQL patch channel repository.
func NewPatchChannelRepository(db *pgxpool.Pool) *PatchChannelRepository {
	return &PatchChannelRepository{db: db}
}

// CreateBatch persists new patch channels.
func (r *PatchChannelRepository) CreateBatch(ctx context.Context, rows []*secondary.PatchChannelRecord) error {
	for _, row := range rows {
		_, err := r.db.Exec(ctx,
			"INSERT INTO patch_channels (id, event_id, channel_id, channel_number) VALUES ($1, $2, $3, $4)",
			row.ID, row.EventID, row.ChannelID, row.Number,
		)
		if err != nil {
			return fmt.Errorf("failed to create patch channel %s: %w", row.ID, err)
		}
	}
	return nil
}

// ListByEvent retrieves an event's patch channels ordered by number.
func (r *PatchChannelRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.PatchChannelRecord, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, event_id, channel_id, channel_number, created_at FROM patch_channels WHERE event_id = $1 ORDER BY channel_number ASC",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list patch channels: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PatchChannelRecord
	for rows.Next() {
		record := &secondary.PatchChannelRecord{}
		var createdAt time.Time
		if err := rows.Scan(&record.ID, &record.EventID, &record.ChannelID, &record.Number, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan patch channel: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, record)
	}
	return records, rows.Err()
}

// UpdateNumber assigns a channel number to one patch channel. Fails if the
// number is already taken within the event.
func (r *PatchChannelRepository) UpdateNumber(ctx context.Context, id string, number int) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE patch_channels SET channel_number = $1 WHERE id = $2", number, id)
	if err != nil {
		return fmt.Errorf("failed to update patch channel number: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("patch channel %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// Delete removes the given patch channels. A no-op for an empty list.
func (r *PatchChannelRepository) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, "DELETE FROM patch_channels WHERE id = ANY($1)", ids)
	if err != nil {
		return fmt.Errorf("failed to delete patch channels: %w", err)
	}
	return nil
}

// GetNextID returns the next available patch channel ID.
func (r *PatchChannelRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM patch_channels",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next patch channel ID: %w", err)
	}
	return fmt.Sprintf("PC-%03d", maxID+1), nil
}

// Ensure PatchChannelRepository implements the interface.
var _ secondary.PatchChannelRepository = (*PatchChannelRepository)(nil)
