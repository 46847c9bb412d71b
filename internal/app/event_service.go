package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	corepatch "github.com/example/stagepatch/internal/core/patch"
	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/ports/secondary"
)

// EventServiceImpl implements the EventService interface.
type EventServiceImpl struct {
	eventRepo secondary.EventRepository
	bandRepo  secondary.BandRepository
	patchRepo secondary.PatchChannelRepository
	usageRepo secondary.UsageRepository
	log       *logrus.Logger
}

// NewEventService creates a new EventService with injected dependencies.
func NewEventService(
	eventRepo secondary.EventRepository,
	bandRepo secondary.BandRepository,
	patchRepo secondary.PatchChannelRepository,
	usageRepo secondary.UsageRepository,
	log *logrus.Logger,
) *EventServiceImpl {
	return &EventServiceImpl{
		eventRepo: eventRepo,
		bandRepo:  bandRepo,
		patchRepo: patchRepo,
		usageRepo: usageRepo,
		log:       log,
	}
}

// CreateEvent creates a new event.
func (s *EventServiceImpl) CreateEvent(ctx context.Context, req primary.CreateEventRequest) (*primary.Event, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("event name is required")
	}

	id, err := s.eventRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate event ID: %w", err)
	}

	record := &secondary.EventRecord{ID: id, Name: req.Name, Date: req.Date}
	if err := s.eventRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	created, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload event: %w", err)
	}
	return s.recordToEvent(ctx, created)
}

// GetEvent retrieves an event with its derived patch state.
func (s *EventServiceImpl) GetEvent(ctx context.Context, id string) (*primary.Event, error) {
	record, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordToEvent(ctx, record)
}

// ListEvents retrieves all events, newest first.
func (s *EventServiceImpl) ListEvents(ctx context.Context) ([]*primary.Event, error) {
	records, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*primary.Event, 0, len(records))
	for _, record := range records {
		event, err := s.recordToEvent(ctx, record)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// DeleteEvent removes an event and everything it owns.
func (s *EventServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.WithField("event_id", id).Info("event deleted")
	return nil
}

// recordToEvent assembles the adapter-facing event with its derived state
// and band count.
func (s *EventServiceImpl) recordToEvent(ctx context.Context, record *secondary.EventRecord) (*primary.Event, error) {
	bands, err := s.bandRepo.ListByEvent(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bands: %w", err)
	}
	patchRecords, err := s.patchRepo.ListByEvent(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patch: %w", err)
	}
	usageRecords, err := s.usageRepo.ListByEvent(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage: %w", err)
	}

	usedRows := 0
	for _, u := range usageRecords {
		if u.IsUsed {
			usedRows++
		}
	}

	return &primary.Event{
		ID:        record.ID,
		Name:      record.Name,
		Date:      record.Date,
		State:     string(corepatch.EventState(len(patchRecords), usedRows)),
		BandCount: len(bands),
		CreatedAt: record.CreatedAt,
	}, nil
}

// Ensure EventServiceImpl implements the interface.
var _ primary.EventService = (*EventServiceImpl)(nil)
