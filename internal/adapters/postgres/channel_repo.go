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

// ChannelRepository implements secondary.ChannelRepository with PostgreSQL.
type ChannelRepository struct {
	db *pgxpool.Pool
}

// NewChannelRepository creates a new PostgreSQL channel repository.
func NewChannelRepository(db *pgxpool.Pool) *ChannelRepository {
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
	_, err := r.db.Exec(ctx,
		"INSERT INTO channels (id, name, category_id, default_order, mic, stand, notes, is_active) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
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
	row := r.db.QueryRow(ctx,
		"SELECT "+channelColumns+" FROM channels WHERE id = $1", id)

	record, err := scanChannel(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
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
		where = append(where, "is_active = TRUE")
	}
	if filters.CategoryID != "" {
		args = append(args, filters.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY default_order ASC, name ASC"

	rows, err := r.db.Query(ctx, query, args...)
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
	return channels, rows.Err()
}

// Update updates an existing channel.
func (r *ChannelRepository) Update(ctx context.Context, channel *secondary.ChannelRecord) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE channels SET name = $1, category_id = $2, default_order = $3, mic = $4, stand = $5, notes = $6, is_active = $7, updated_at = now() WHERE id = $8`,
		channel.Name, nullable(channel.CategoryID), channel.DefaultOrder,
		nullable(channel.Mic), nullable(channel.Stand), nullable(channel.Notes),
		channel.IsActive, channel.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("channel %s: %w", channel.ID, secondary.ErrNotFound)
	}
	return nil
}

// Delete removes a channel from persistence.
func (r *ChannelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM channels WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("channel %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// GetNextID returns the next available channel ID.
func (r *ChannelRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM channels",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next channel ID: %w", err)
	}
	return fmt.Sprintf("CH-%03d", maxID+1), nil
}

// Ensure ChannelRepository implements the interface.
var _ secondary.ChannelRepository = (*ChannelRepository)(nil)
