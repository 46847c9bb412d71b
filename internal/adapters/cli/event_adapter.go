package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/stagepatch/internal/ports/primary"
)

// EventAdapter is a thin adapter that translates CLI operations to
// EventService calls.
type EventAdapter struct {
	service primary.EventService
	out     io.Writer
}

// NewEventAdapter creates a new EventAdapter with the given service.
func NewEventAdapter(service primary.EventService, out io.Writer) *EventAdapter {
	return &EventAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new event.
func (a *EventAdapter) Create(ctx context.Context, name, date string) error {
	event, err := a.service.CreateEvent(ctx, primary.CreateEventRequest{
		Name: name,
		Date: date,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created event %s: %s\n", event.ID, event.Name)
	return nil
}

// List lists events, newest first.
func (a *EventAdapter) List(ctx context.Context) error {
	events, err := a.service.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-12s %-11s %-6s %s\n", "ID", "DATE", "STATE", "BANDS", "NAME")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────")
	for _, e := range events {
		date := e.Date
		if date == "" {
			date = "-"
		}
		fmt.Fprintf(a.out, "%-10s %-12s %-11s %-6d %s\n", e.ID, date, stateLabel(e.State), e.BandCount, e.Name)
	}
	fmt.Fprintln(a.out)

	return nil
}

// Show displays details for a single event.
func (a *EventAdapter) Show(ctx context.Context, eventID string) (*primary.Event, error) {
	event, err := a.service.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	fmt.Fprintf(a.out, "\nEvent:   %s\n", event.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", event.Name)
	if event.Date != "" {
		fmt.Fprintf(a.out, "Date:    %s\n", event.Date)
	}
	fmt.Fprintf(a.out, "State:   %s\n", stateLabel(event.State))
	fmt.Fprintf(a.out, "Bands:   %d\n", event.BandCount)
	fmt.Fprintf(a.out, "Created: %s\n", event.CreatedAt)
	fmt.Fprintln(a.out)

	return event, nil
}

// Delete deletes an event and everything it owns.
func (a *EventAdapter) Delete(ctx context.Context, eventID string) error {
	if err := a.service.DeleteEvent(ctx, eventID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Event %s deleted\n", eventID)
	return nil
}

// stateLabel colors the derived event state. Width is padded before
// coloring so the ANSI codes do not break column alignment.
func stateLabel(state string) string {
	padded := fmt.Sprintf("%-11s", state)
	switch state {
	case "populated":
		return color.New(color.FgGreen).Sprint(padded)
	case "has_patch":
		return color.New(color.FgYellow).Sprint(padded)
	default:
		return padded
	}
}
