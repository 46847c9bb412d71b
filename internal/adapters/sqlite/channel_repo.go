package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// ChannelRepository implements secondary.ChannelRepository with SQLite.
type ChannelRepository struct {
	db *sql.DB
}

// NewChannelRepository creates a new SQLite channel repository.
func NewChannelRepository(db *sql.DB) *ChannelRepository {
	return &ChannelRepository{db: db}
}

const channelColumns = "id, name, category_id, default_order, mic, stand, notes, is_active, created_at, updated_at"

func scanChannel(scan func(...any) error) (*secondary.ChannelRecord, error) {
	record := &secondary.ChannelRecord{}
	var (
		categoryID       sql.NullString
		mic, stand, note sql.NullString
		createdAt        time.Time
		updatedAt        time.Time
	)
	err := scan(&record.ID, &record.Name, &categoryID, &record.DefaultOrder,
		&mic, &stand, &note, &record.IsActive, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CategoryID = categoryID.String
	record.Mic = mic.String
	record.Stand = stand.String
	record.Notes = note.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Create persists a new channel.
func (r *ChannelRepository) Create(ctx context.Context, channel *secondary.ChannelRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO channels (id, name, category_id, default_order, mic, stand, notes, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		channel.ID, channel.Name, nullable(channel.CategoryID), channel.DefaultOrder,
		nullable(channel.Mic), nullable(channel.Stand), nullable(channel.Notes), channel.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}
	return nil
}

// GetByID retrieves a channel by its ID.
func (r *ChannelRepository) GetByID(ctx context.Context, id string) (*secondary.ChannelRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+channelColumns+" FROM channels WHERE id = ?", id)

	record, err := scanChannel(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("channel %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	return record, nil
}

// List retrieves channels matching the given filters, in admin order.
// Catalog ordering (category rank first) is applied by the service layer.
func (r *ChannelRepository) List(ctx context.Context, filters secondary.ChannelFilters) ([]*secondary.ChannelRecord, error) {
	query := "SELECT " + channelColumns + " FROM channels"
	var args []any
	var where []string

	if filters.ActiveOnly {
		where = append(where, "is_active = 1")
	}
	if filters.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, filters.CategoryID)
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY default_order ASC, name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	var channels []*secondary.ChannelRecord
	for rows.Next() {
		record, err := scanChannel(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, record)
	}
	return channels, nil
}

// Update updates an existing channel.
func (r *ChannelRepository) Update(ctx context.Context, channel *secondary.ChannelRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE channels SET name = ?, category_id = ?, default_order = ?, mic = ?, stand = ?, notes = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		channel.Name, nullable(channel.CategoryID), channel.DefaultOrder,
		nullable(channel.Mic), nullable(channel.Stand), nullable(channel.Notes),
		channel.IsActive, channel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("channel %s: %w", channel.ID, secondary.ErrNotFound)
	}
	return nil
}

// Delete removes a channel from persistence.
func (r *ChannelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM channels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("channel %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available channel ID.
func (r *ChannelRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM channels",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next channel ID: %w", err)
	}
	return fmt.Sprintf("CH-%03d", maxID+1), nil
}

// Ensure ChannelRepository implements the interface.
var _ secondary.ChannelRepository = (*ChannelRepository)(nil)
