package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/stagepatch/internal/ports/primary"
)

// createBand handles POST /api/events/{id}/bands
func (s *Server) createBand(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateBandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.EventID = chi.URLParam(r, "id")

	// A band save reconciles on its own, so a pending debounced run would
	// only repeat the work.
	s.reconciles.Cancel(req.EventID)

	resp, err := s.patch.CreateBand(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// updateBand handles PUT /api/bands/{id}
func (s *Server) updateBand(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateBandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.BandID = chi.URLParam(r, "id")
	resp, err := s.patch.UpdateBand(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// deleteBand handles DELETE /api/bands/{id}
func (s *Server) deleteBand(w http.ResponseWriter, r *http.Request) {
	if err := s.patch.DeleteBand(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// getMatrix handles GET /api/events/{id}/matrix
func (s *Server) getMatrix(w http.ResponseWriter, r *http.Request) {
	matrix, err := s.patch.Matrix(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matrix)
}

// getBaseline handles GET /api/events/{id}/baseline
func (s *Server) getBaseline(w http.ResponseWriter, r *http.Request) {
	channelIDs, err := s.patch.Baseline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if channelIDs == nil {
		channelIDs = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"channel_ids": channelIDs})
}

type reorderRequest struct {
	DraggedID string `json:"dragged_id"`
	TargetID  string `json:"target_id"`
}

// reorderChannel handles POST /api/events/{id}/patch/reorder
func (s *Server) reorderChannel(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	eventID := chi.URLParam(r, "id")
	if err := s.patch.ReorderChannel(r.Context(), eventID, req.DraggedID, req.TargetID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type moveRequest struct {
	Direction primary.MoveDirection `json:"direction"`
}

// moveChannel handles POST /api/events/{id}/patch/{patchChannelID}/move
func (s *Server) moveChannel(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Direction != primary.MoveUp && req.Direction != primary.MoveDown {
		writeError(w, http.StatusBadRequest, "direction must be up or down")
		return
	}
	eventID := chi.URLParam(r, "id")
	patchChannelID := chi.URLParam(r, "patchChannelID")
	if err := s.patch.MoveChannel(r.Context(), eventID, patchChannelID, req.Direction); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toggleUsage handles POST /api/events/{id}/bands/{bandID}/usage/{patchChannelID}/toggle
//
// The toggle writes immediately and schedules the event's debounced
// reconcile: rapid clicking flips cells without patch churn, and the final
// state settles into one prune-and-renumber pass.
func (s *Server) toggleUsage(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	bandID := chi.URLParam(r, "bandID")
	patchChannelID := chi.URLParam(r, "patchChannelID")

	used, err := s.patch.ToggleUsage(r.Context(), bandID, patchChannelID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.reconciles.Schedule(eventID)
	writeJSON(w, http.StatusOK, map[string]bool{"used": used})
}

type labelRequest struct {
	Label string `json:"label"`
}

// setLabel handles PUT /api/events/{id}/bands/{bandID}/usage/{patchChannelID}/label
func (s *Server) setLabel(w http.ResponseWriter, r *http.Request) {
	var req labelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	bandID := chi.URLParam(r, "bandID")
	patchChannelID := chi.URLParam(r, "patchChannelID")
	if err := s.patch.SetLabel(r.Context(), bandID, patchChannelID, req.Label); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reconcileNow handles POST /api/events/{id}/reconcile
//
// Flushes any pending debounced reconcile and runs one immediately.
func (s *Server) reconcileNow(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	s.reconciles.Cancel(eventID)
	if err := s.patch.Reconcile(r.Context(), eventID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// exportCSV handles GET /api/events/{id}/export.csv
func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="patch-`+eventID+`.csv"`)
	if err := s.patch.ExportCSV(r.Context(), eventID, w); err != nil {
		s.log.WithError(err).WithField("event_id", eventID).Error("csv export failed")
	}
}
