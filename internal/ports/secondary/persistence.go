// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the engine drives the
// backing row store. All operations are atomic per-row but not transactional
// across calls - callers must tolerate partial completion.
package secondary

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// CategoryRepository defines the secondary port for category persistence.
type CategoryRepository interface {
	// Create persists a new category.
	Create(ctx context.Context, category *CategoryRecord) error

	// GetByID retrieves a category by its ID.
	GetByID(ctx context.Context, id string) (*CategoryRecord, error)

	// List retrieves all categories ordered by sort order.
	List(ctx context.Context) ([]*CategoryRecord, error)

	// Update updates a category's name and sort order.
	Update(ctx context.Context, category *CategoryRecord) error

	// Delete removes a category. Its channels keep working with their
	// category reference cleared by the store (ON DELETE SET NULL).
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available category ID.
	GetNextID(ctx context.Context) (string, error)
}

// CategoryRecord represents a category as stored in persistence.
type CategoryRecord struct {
	ID        string
	Name      string
	SortOrder int
	CreatedAt string
	UpdatedAt string
}

// ChannelRepository defines the secondary port for catalog channel
// persistence.
type ChannelRepository interface {
	// Create persists a new channel.
	Create(ctx context.Context, channel *ChannelRecord) error

	// GetByID retrieves a channel by its ID.
	GetByID(ctx context.Context, id string) (*ChannelRecord, error)

	// List retrieves channels matching the given filters.
	List(ctx context.Context, filters ChannelFilters) ([]*ChannelRecord, error)

	// Update updates an existing channel.
	Update(ctx context.Context, channel *ChannelRecord) error

	// Delete removes a channel from persistence.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available channel ID.
	GetNextID(ctx context.Context) (string, error)
}

// ChannelRecord represents a catalog channel as stored in persistence.
type ChannelRecord struct {
	ID           string
	Name         string
	CategoryID   string // empty when uncategorized
	DefaultOrder int
	Mic          string // mic or DI used on this source
	Stand        string
	Notes        string
	IsActive     bool
	CreatedAt    string
	UpdatedAt    string
}

// ChannelFilters contains filter options for querying channels.
type ChannelFilters struct {
	ActiveOnly bool
	CategoryID string
}

// EventRepository defines the secondary port for event persistence.
type EventRepository interface {
	// Create persists a new event.
	Create(ctx context.Context, event *EventRecord) error

	// GetByID retrieves an event by its ID.
	GetByID(ctx context.Context, id string) (*EventRecord, error)

	// List retrieves all events, newest first.
	List(ctx context.Context) ([]*EventRecord, error)

	// Delete removes an event. Bands, patch channels and usage rows cascade.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available event ID.
	GetNextID(ctx context.Context) (string, error)
}

// EventRecord represents an event as stored in persistence.
type EventRecord struct {
	ID        string
	Name      string
	Date      string // optional, YYYY-MM-DD
	CreatedAt string
	UpdatedAt string
}

// BandRepository defines the secondary port for band persistence.
type BandRepository interface {
	// Create persists a new band.
	Create(ctx context.Context, band *BandRecord) error

	// GetByID retrieves a band by its ID.
	GetByID(ctx context.Context, id string) (*BandRecord, error)

	// ListByEvent retrieves an event's bands ordered by sort order.
	ListByEvent(ctx context.Context, eventID string) ([]*BandRecord, error)

	// UpdateName updates a band's display name and touches updated_at.
	UpdateName(ctx context.Context, id, name string) error

	// Touch bumps a band's updated_at so it becomes the baseline band.
	Touch(ctx context.Context, id string) error

	// GetMostRecentlyUpdated returns the event's most recently saved band,
	// or nil when the event has no bands.
	GetMostRecentlyUpdated(ctx context.Context, eventID string) (*BandRecord, error)

	// Delete removes a band. Its usage rows cascade.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available band ID.
	GetNextID(ctx context.Context) (string, error)
}

// BandRecord represents a band (group) as stored in persistence.
type BandRecord struct {
	ID        string
	EventID   string
	Name      string
	SortOrder int
	CreatedAt string
	UpdatedAt string
}

// PatchChannelRepository defines the secondary port for the event-scoped
// shared patch. channel_number is unique per event and the store checks the
// constraint per statement, hence the two-phase renumbering in the app layer.
type PatchChannelRepository interface {
	// CreateBatch persists new patch channels.
	CreateBatch(ctx context.Context, rows []*PatchChannelRecord) error

	// ListByEvent retrieves an event's patch channels ordered by number.
	ListByEvent(ctx context.Context, eventID string) ([]*PatchChannelRecord, error)

	// UpdateNumber assigns a channel number to one patch channel. Fails if
	// the number is already taken within the event.
	UpdateNumber(ctx context.Context, id string, number int) error

	// Delete removes the given patch channels.
	Delete(ctx context.Context, ids []string) error

	// GetNextID returns the next available patch channel ID.
	GetNextID(ctx context.Context) (string, error)
}

// PatchChannelRecord represents one numbered slot of an event's shared patch.
type PatchChannelRecord struct {
	ID        string
	EventID   string
	ChannelID string
	Number    int
	CreatedAt string
}

// UsageRepository defines the secondary port for per-(band, patch channel)
// usage rows. Unique on (band_id, patch_channel_id).
type UsageRepository interface {
	// ListByEvent retrieves all usage rows across an event's bands.
	ListByEvent(ctx context.Context, eventID string) ([]*UsageRecord, error)

	// ListByBand retrieves one band's usage rows.
	ListByBand(ctx context.Context, bandID string) ([]*UsageRecord, error)

	// Upsert inserts or replaces the row for (band, patch channel).
	Upsert(ctx context.Context, row *UsageRecord) error

	// DeleteByBand removes all of a band's usage rows.
	DeleteByBand(ctx context.Context, bandID string) error

	// DeleteByPatchChannels removes usage rows for the given patch channels.
	DeleteByPatchChannels(ctx context.Context, patchChannelIDs []string) error
}

// UsageRecord represents a band's usage of one patch channel. A row with
// IsUsed=false is read as "not used"; reconciliation sweeps such rows away.
type UsageRecord struct {
	ID             string
	BandID         string
	PatchChannelID string
	IsUsed         bool
	Label          string // empty means "default to the channel name"
	CreatedAt      string
	UpdatedAt      string
}
