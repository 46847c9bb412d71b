package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/stagepatch/internal/ports/primary"
)

// createEvent handles POST /api/events
func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	event, err := s.events.CreateEvent(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// listEvents handles GET /api/events
func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.ListEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if events == nil {
		events = []*primary.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// getEvent handles GET /api/events/{id}
func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// deleteEvent handles DELETE /api/events/{id}
func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	s.reconciles.Cancel(eventID)
	if err := s.events.DeleteEvent(r.Context(), eventID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
