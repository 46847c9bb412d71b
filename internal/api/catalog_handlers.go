package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/stagepatch/internal/ports/primary"
)

// createCategory handles POST /api/categories
func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	category, err := s.catalog.CreateCategory(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// listCategories handles GET /api/categories
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*primary.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// updateCategory handles PATCH /api/categories/{id}
func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.ID = chi.URLParam(r, "id")
	category, err := s.catalog.UpdateCategory(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// deleteCategory handles DELETE /api/categories/{id}
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createChannel handles POST /api/channels
func (s *Server) createChannel(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	channel, err := s.catalog.CreateChannel(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, channel)
}

// listChannels handles GET /api/channels?include_inactive=1&category_id=CAT-001
func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	filters := primary.ChannelFilters{
		IncludeInactive: r.URL.Query().Get("include_inactive") != "",
		CategoryID:      r.URL.Query().Get("category_id"),
	}
	channels, err := s.catalog.ListChannels(r.Context(), filters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list channels")
		return
	}
	if channels == nil {
		channels = []*primary.Channel{}
	}
	writeJSON(w, http.StatusOK, channels)
}

// updateChannel handles PATCH /api/channels/{id}
func (s *Server) updateChannel(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateChannelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.ID = chi.URLParam(r, "id")
	channel, err := s.catalog.UpdateChannel(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, channel)
}

// deactivateChannel handles POST /api/channels/{id}/deactivate
func (s *Server) deactivateChannel(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeactivateChannel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteChannel handles DELETE /api/channels/{id}
func (s *Server) deleteChannel(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteChannel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
