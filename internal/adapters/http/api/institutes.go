package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/gradebook/internal/domain/model"
)

// handleCreateInstitute handles POST /api/institutes.
func (s *Server) handleCreateInstitute(w http.ResponseWriter, r *http.Request) {
	var in model.InstituteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	out, err := s.deps.CreateInstitute(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"institute": out})
}

// handleListInstitutes handles GET /api/institutes.
func (s *Server) handleListInstitutes(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	p, err := s.deps.Institutes(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"institutes": p.Items,
		"pagination": paginationOf(p),
	})
}

// handleGetInstitute handles GET /api/institutes/{id}.
func (s *Server) handleGetInstitute(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Institute(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"institute": out})
}

// handleUpdateInstitute handles PUT /api/institutes/{id}.
func (s *Server) handleUpdateInstitute(w http.ResponseWriter, r *http.Request) {
	var in model.InstituteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	out, err := s.deps.UpdateInstitute(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"institute": out})
}

// handleDeleteInstitute handles DELETE /api/institutes/{id}.
func (s *Server) handleDeleteInstitute(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteInstitute(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "institute deleted successfully")
}
