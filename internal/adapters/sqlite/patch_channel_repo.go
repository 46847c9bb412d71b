package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// PatchChannelRepository implements secondary.PatchChannelRepository with
// SQLite. The UNIQUE(event_id, channel_number) constraint is checked per
// statement, so callers renumber in two phases.
type PatchChannelRepository struct {
	db *sql.DB
}

// NewPatchChannelRepository creates a new SQLite patch channel repository.
func NewPatchChannelRepository(db *sql.DB) *PatchChannelRepository {
	return &PatchChannelRepository{db: db}
}

// CreateBatch persists new patch channels.
func (r *PatchChannelRepository) CreateBatch(ctx context.Context, records []*secondary.PatchChannelRecord) error {
	for _, record := range records {
		_, err := r.db.ExecContext(ctx,
			"INSERT INTO patch_channels (id, event_id, channel_id, channel_number) VALUES (?, ?, ?, ?)",
			record.ID, record.EventID, record.ChannelID, record.Number,
		)
		if err != nil {
			return fmt.Errorf("failed to create patch channel %s: %w", record.ID, err)
		}
	}
	return nil
}

// ListByEvent retrieves an event's patch channels ordered by number.
func (r *PatchChannelRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.PatchChannelRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, event_id, channel_id, channel_number, created_at FROM patch_channels WHERE event_id = ? ORDER BY channel_number ASC",
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
	return records, nil
}

// UpdateNumber assigns a channel number to one patch channel.
func (r *PatchChannelRepository) UpdateNumber(ctx context.Context, id string, number int) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE patch_channels SET channel_number = ? WHERE id = ?",
		number, id,
	)
	if err != nil {
		return fmt.Errorf("failed to renumber patch channel %s: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("patch channel %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// Delete removes the given patch channels. Usage rows cascade.
func (r *PatchChannelRepository) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM patch_channels WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("failed to delete patch channels: %w", err)
	}
	return nil
}

// GetNextID returns the next available patch channel ID.
func (r *PatchChannelRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM patch_channels",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next patch channel ID: %w", err)
	}
	return fmt.Sprintf("PC-%03d", maxID+1), nil
}

// Ensure PatchChannelRepository implements the interface.
var _ secondary.PatchChannelRepository = (*PatchChannelRepository)(nil)
