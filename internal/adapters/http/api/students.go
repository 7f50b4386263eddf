package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/gradebook/internal/domain/model"
)

// handleCreateStudent handles POST /api/students.
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var in model.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	out, err := s.deps.CreateStudent(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"student": out})
}

// handleListStudents handles GET /api/students.
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	p, err := s.deps.Students(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"students":   p.Items,
		"pagination": paginationOf(p),
	})
}

// handleGetStudent handles GET /api/students/{id}.
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Student(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"student": out})
}

// handleUpdateStudent handles PUT /api/students/{id}.
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	var in model.StudentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	out, err := s.deps.UpdateStudent(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"student": out})
}

// handleDeleteStudent handles DELETE /api/students/{id}.
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteStudent(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "student deleted successfully")
}
