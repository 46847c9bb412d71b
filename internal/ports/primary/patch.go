package primary

import (
	"context"
	"io"
)

// PatchService is the event-scoped patch engine: band saves (the
// reconciler), the usage matrix, drag reordering, the interactive toggle
// path, and CSV export.
type PatchService interface {
	// CreateBand saves a new band with its channel selection and reconciles
	// the event's shared patch.
	CreateBand(ctx context.Context, req CreateBandRequest) (*SaveBandResponse, error)

	// UpdateBand re-saves an existing band's name and selection and
	// reconciles the event's shared patch.
	UpdateBand(ctx context.Context, req UpdateBandRequest) (*SaveBandResponse, error)

	// DeleteBand removes a band and reconciles (pruning channels only that
	// band used).
	DeleteBand(ctx context.Context, bandID string) error

	// Matrix returns the event's numbered patch with per-band usage cells.
	Matrix(ctx context.Context, eventID string) (*Matrix, error)

	// Baseline returns the channel ids of the most recently saved band,
	// offered pre-checked for the next new band. Empty when the event has
	// no bands.
	Baseline(ctx context.Context, eventID string) ([]string, error)

	// ReorderChannel moves a patch channel to another's slot (drag
	// semantics) and renumbers the event's patch 1..N.
	ReorderChannel(ctx context.Context, eventID, draggedID, targetID string) error

	// MoveChannel moves a patch channel one slot up or down and renumbers.
	MoveChannel(ctx context.Context, eventID, patchChannelID string, dir MoveDirection) error

	// ToggleUsage flips one matrix cell by upserting the usage row. It does
	// not prune or renumber; callers follow up with Reconcile (the
	// interactive path debounces that call). Returns the new used state.
	ToggleUsage(ctx context.Context, bandID, patchChannelID string) (bool, error)

	// SetLabel overrides the label of one matrix cell.
	SetLabel(ctx context.Context, bandID, patchChannelID, label string) error

	// Reconcile prunes patch channels no band uses and renumbers the rest.
	// Used after interactive toggles; band saves reconcile on their own.
	Reconcile(ctx context.Context, eventID string) error

	// ExportCSV writes the event's patch as a semicolon-delimited CSV.
	ExportCSV(ctx context.Context, eventID string, w io.Writer) error
}

// MoveDirection is the direction of a single-slot move.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// CreateBandRequest saves a new band. ChannelIDs is the desired selection in
// resolved order.
type CreateBandRequest struct {
	EventID    string   `json:"event_id"`
	Name       string   `json:"name"`
	ChannelIDs []string `json:"channel_ids"`
}

// UpdateBandRequest re-saves an existing band.
type UpdateBandRequest struct {
	BandID     string   `json:"band_id"`
	Name       string   `json:"name"`
	ChannelIDs []string `json:"channel_ids"`
}

// SaveBandResponse reports the reconciled outcome of a band save.
type SaveBandResponse struct {
	Band           *Band `json:"band"`
	CreatedPatches int   `json:"created_patch_channels"`
	PrunedPatches  int   `json:"pruned_patch_channels"`
	PatchSize      int   `json:"patch_size"`
}

// Band is a band as exposed to adapters.
type Band struct {
	ID        string `json:"id"`
	EventID   string `json:"event_id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Matrix is the per-event usage view: numbered channels as rows, bands as
// columns.
type Matrix struct {
	EventID string       `json:"event_id"`
	State   string       `json:"state"`
	Bands   []*Band      `json:"bands"`
	Rows    []*MatrixRow `json:"rows"`
}

// MatrixRow is one numbered patch channel with its per-band cells, in band
// order.
type MatrixRow struct {
	PatchChannelID string       `json:"patch_channel_id"`
	Number         int          `json:"number"`
	ChannelID      string       `json:"channel_id"`
	ChannelName    string       `json:"channel_name"`
	Mic            string       `json:"mic,omitempty"`
	Stand          string       `json:"stand,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	Cells          []MatrixCell `json:"cells"`
}

// MatrixCell is one band's usage of one patch channel.
type MatrixCell struct {
	BandID string `json:"band_id"`
	Used   bool   `json:"used"`
	Label  string `json:"label,omitempty"`
}
