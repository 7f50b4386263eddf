package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/gradebook/internal/domain/model"
)

// handleCreateCourse handles POST /api/courses.
func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var in model.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	out, err := s.deps.CreateCourse(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"course": out})
}

// handleListCourses handles GET /api/courses.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	p, err := s.deps.Courses(r.Context(), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"courses":    p.Items,
		"pagination": paginationOf(p),
	})
}

// handleGetCourse handles GET /api/courses/{id}.
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Course(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"course": out})
}

// handleUpdateCourse handles PUT /api/courses/{id}.
func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var in model.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, ErrBadRequest.Error())
		return
	}
	out, err := s.deps.UpdateCourse(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"course": out})
}

// handleDeleteCourse handles DELETE /api/courses/{id}.
func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.DeleteCourse(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "course deleted successfully")
}
