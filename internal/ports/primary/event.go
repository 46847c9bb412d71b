package primary

import "context"

// EventService manages events, the top-level patch containers.
type EventService interface {
	// CreateEvent creates a new event.
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)

	// GetEvent retrieves an event with its derived patch state.
	GetEvent(ctx context.Context, id string) (*Event, error)

	// ListEvents retrieves all events, newest first.
	ListEvents(ctx context.Context) ([]*Event, error)

	// DeleteEvent removes an event and everything it owns.
	DeleteEvent(ctx context.Context, id string) error
}

// Event is an event as exposed to adapters. State is one of empty,
// has_patch, populated.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date,omitempty"`
	State     string `json:"state"`
	BandCount int    `json:"band_count"`
	CreatedAt string `json:"created_at"`
}

// CreateEventRequest contains the data needed to create an event.
type CreateEventRequest struct {
	Name string `json:"name"`
	Date string `json:"date,omitempty"`
}
