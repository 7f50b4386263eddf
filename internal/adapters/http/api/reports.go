package api

import (
	"net/http"
	"strconv"
)

// handleTopCourses handles GET /api/reports/top-courses: per academic
// year, the most-enrolled course, newest year first.
func (s *Server) handleTopCourses(w http.ResponseWriter, r *http.Request) {
	results, err := s.deps.TopCourses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"results": results})
}

// handleTopStudents handles GET /api/reports/top-students with optional
// academicYear, page and limit query parameters.
func (s *Server) handleTopStudents(w http.ResponseWriter, r *http.Request) {
	var year *int
	if raw := r.URL.Query().Get("academicYear"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "academicYear must be an integer")
			return
		}
		year = &y
	}
	page, limit := pageParams(r)

	p, err := s.deps.TopStudents(r.Context(), year, page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"students":   p.Items,
		"pagination": paginationOf(p),
	})
}

// handleInstituteStudents handles GET /api/reports/students/{instituteId}:
// the institute's roster, newest first.
func (s *Server) handleInstituteStudents(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	p, err := s.deps.StudentsByInstitute(r.Context(), r.PathValue("instituteId"), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"students":   p.Items,
		"pagination": paginationOf(p),
	})
}
