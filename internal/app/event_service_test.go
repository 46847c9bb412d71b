package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/ports/secondary"
)

func newEventFixture() (*EventServiceImpl, *patchFixture) {
	f := newPatchFixture()
	service := NewEventService(f.eventRepo, f.bandRepo, f.patchRepo, f.usageRepo, newTestLogger())
	return service, f
}

func TestCreateEvent(t *testing.T) {
	service, _ := newEventFixture()

	event, err := service.CreateEvent(context.Background(), primary.CreateEventRequest{
		Name: "Winter Fest", Date: "2026-12-05",
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if event.Name != "Winter Fest" || event.Date != "2026-12-05" {
		t.Errorf("event = %+v", event)
	}
	if event.State != "empty" || event.BandCount != 0 {
		t.Errorf("new event must start empty: %+v", event)
	}

	_, err = service.CreateEvent(context.Background(), primary.CreateEventRequest{})
	if err == nil {
		t.Error("expected error for empty name")
	}
}

func TestGetEvent_DerivedState(t *testing.T) {
	service, f := newEventFixture()
	ctx := context.Background()

	event, err := service.GetEvent(ctx, "EVT-001")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.State != "empty" {
		t.Errorf("state = %s, want empty", event.State)
	}

	if _, err := f.service.CreateBand(ctx, primary.CreateBandRequest{
		EventID: "EVT-001", Name: "Opener", ChannelIDs: []string{"CH-001"},
	}); err != nil {
		t.Fatalf("CreateBand failed: %v", err)
	}

	event, err = service.GetEvent(ctx, "EVT-001")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if event.State != "populated" || event.BandCount != 1 {
		t.Errorf("event = %+v", event)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	service, _ := newEventFixture()

	_, err := service.GetEvent(context.Background(), "EVT-404")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	service, f := newEventFixture()
	ctx := context.Background()

	if err := service.DeleteEvent(ctx, "EVT-001"); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, ok := f.eventRepo.events["EVT-001"]; ok {
		t.Error("event not deleted")
	}

	err := service.DeleteEvent(ctx, "EVT-001")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
