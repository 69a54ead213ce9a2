package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/theryangeary/gl/internal/common"
	"github.com/theryangeary/gl/internal/server/services"
)

type createEntryRequest struct {
	Description string `json:"description"`
	CategoryID  *int64 `json:"category_id"`
	Position    *int64 `json:"position"`
	Quantity    string `json:"quantity"`
	Notes       string `json:"notes"`
}

type updateEntryRequest struct {
	Description *string `json:"description"`
	Quantity    *string `json:"quantity"`
	Notes       *string `json:"notes"`
	Completed   *bool   `json:"completed"`
	Archived    *bool   `json:"archived"`
	Position    *int64  `json:"position"`
	CategoryID  *int64  `json:"category_id"`
}

type reorderRequest struct {
	ID            int64  `json:"id"`
	NewPosition   *int64 `json:"new_position"`
	NewCategoryID *int64 `json:"new_category_id"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	result, err := s.entries.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) createEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := s.entries.Create(r.Context(), services.CreateEntryParams{
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Position:    req.Position,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) updateEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req updateEntryRequest
	if !s.decode(w, r, &req) {
		return
	}
	entry, err := s.entries.Update(r.Context(), id, services.UpdateEntryParams{
		Description: req.Description,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		Completed:   req.Completed,
		Archived:    req.Archived,
		Position:    req.Position,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entry)
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.entries.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) reorderEntry(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if !s.decode(w, r, &req) {
		return
	}
	err := s.entries.Reorder(r.Context(), services.ReorderParams{
		ID:            req.ID,
		NewPosition:   req.NewPosition,
		NewCategoryID: req.NewCategoryID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) entrySuggestions(w http.ResponseWriter, r *http.Request) {
	result, err := s.entries.Suggest(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	result, err := s.categories.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	category, err := s.categories.Create(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, category)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !s.decode(w, r, &req) {
		return
	}
	category, err := s.categories.Update(r.Context(), id, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, category)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) categorySuggestions(w http.ResponseWriter, r *http.Request) {
	result, err := s.categories.Suggest(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, r, errors.Join(common.ErrorValidation, err))
		return false
	}
	return true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, r, errors.Join(common.ErrorValidation, err))
		return 0, false
	}
	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here can only be a
	// broken connection, which the request log records.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the shared error taxonomy onto HTTP statuses and writes
// the error detail as the plain-text body, which the client surfaces
// verbatim.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrorValidation):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrorConflictRetryable):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	http.Error(w, err.Error(), status)
}
