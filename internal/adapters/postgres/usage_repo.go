package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/stagepatch/internal/ports/secondary"
)

// UsageRepository implements secondary.UsageRepository with PostgreSQL.
type UsageRepository struct {
	db *pgxpool.Pool
}

// NewUsageRepository creates a new PostgreSQL usage repository.
func NewUsageRepository(db *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{db: db}
}

const usageColumns = "id, band_id, patch_channel_id, is_used, label, created_at, updated_at"

func scanUsage(scan func(...any) error) (*secondary.UsageRecord, error) {
	record := &secondary.UsageRecord{}
	var (
		label     sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	err := scan(&record.ID, &record.BandID, &record.PatchChannelID, &record.IsUsed, &label, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.Label = label.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)
	return record, nil
}

// ListByEvent retrieves all usage rows across an event's bands.
func (r *UsageRepository) ListByEvent(ctx context.Context, eventID string) ([]*secondary.UsageRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.band_id, u.patch_channel_id, u.is_used, u.label, u.created_at, u.updated_at
		 FROM band_channel_usage u
		 JOIN bands b ON b.id = u.band_id
		 WHERE b.event_id = $1`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage for event: %w", err)
	}
	defer rows.Close()
	return collectUsage(rows)
}

// ListByBand retrieves one band's usage rows.
func (r *UsageRepository) ListByBand(ctx context.Context, bandID string) ([]*secondary.UsageRecord, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+usageColumns+" FROM band_channel_usage WHERE band_id = $1", bandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list usage for band: %w", err)
	}
	defer rows.Close()
	return collectUsage(rows)
}

func collectUsage(rows pgx.Rows) ([]*secondary.UsageRecord, error) {
	var records []*secondary.UsageRecord
	for rows.Next() {
		record, err := scanUsage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Upsert inserts or replaces the row for (band, patch channel).
func (r *UsageRepository) Upsert(ctx context.Context, row *secondary.UsageRecord) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO band_channel_usage (id, band_id, patch_channel_id, is_used, label)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (band_id, patch_channel_id)
		 DO UPDATE SET is_used = excluded.is_used, label = excluded.label, updated_at = now()`,
		row.ID, row.BandID, row.PatchChannelID, row.IsUsed, nullable(row.Label),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert usage row: %w", err)
	}
	return nil
}

// DeleteByBand removes all of a band's usage rows.
func (r *UsageRepository) DeleteByBand(ctx context.Context, bandID string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM band_channel_usage WHERE band_id = $1", bandID)
	if err != nil {
		return fmt.Errorf("failed to delete usage for band: %w", err)
	}
	return nil
}

// DeleteByPatchChannels removes usage rows for the given patch channels.
func (r *UsageRepository) DeleteByPatchChannels(ctx context.Context, patchChannelIDs []string) error {
	if len(patchChannelIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx,
		"DELETE FROM band_channel_usage WHERE patch_channel_id = ANY($1)", patchChannelIDs)
	if err != nil {
		return fmt.Errorf("failed to delete usage for patch channels: %w", err)
	}
	return nil
}

// Ensure UsageRepository implements the interface.
var _ secondary.UsageRepository = (*UsageRepository)(nil)
