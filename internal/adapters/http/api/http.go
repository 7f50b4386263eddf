// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/gradebook/internal/adapters/repository"
	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/internal/domain/paging"
	"github.com/okian/gradebook/internal/domain/types"
	"github.com/okian/gradebook/internal/domain/validate"
)

// Dependencies required by the HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Score records.
	SubmitScore(ctx context.Context, in model.ScoreRecordInput) (model.ScoreRecord, error)
	UpdateScore(ctx context.Context, id string, in model.ScoreRecordInput) (model.ScoreRecord, error)
	ScoreRecord(ctx context.Context, id string) (model.ScoreRecord, error)
	ScoreRecords(ctx context.Context, page, limit int) (paging.Page[model.ScoreRecord], error)
	DeleteScore(ctx context.Context, id string) error

	// Reports.
	TopCourses(ctx context.Context) ([]types.EnrollmentRank, error)
	TopStudents(ctx context.Context, year *int, page, limit int) (paging.Page[types.StudentRank], error)

	// Institutes.
	CreateInstitute(ctx context.Context, in model.InstituteInput) (model.Institute, error)
	Institute(ctx context.Context, id string) (model.Institute, error)
	Institutes(ctx context.Context, page, limit int) (paging.Page[model.Institute], error)
	UpdateInstitute(ctx context.Context, id string, in model.InstituteInput) (model.Institute, error)
	DeleteInstitute(ctx context.Context, id string) error

	// Students.
	CreateStudent(ctx context.Context, in model.StudentInput) (model.Student, error)
	Student(ctx context.Context, id string) (model.Student, error)
	Students(ctx context.Context, page, limit int) (paging.Page[model.Student], error)
	StudentsByInstitute(ctx context.Context, instituteID string, page, limit int) (paging.Page[model.Student], error)
	UpdateStudent(ctx context.Context, id string, in model.StudentInput) (model.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	// Courses.
	CreateCourse(ctx context.Context, in model.CourseInput) (model.Course, error)
	Course(ctx context.Context, id string) (model.Course, error)
	Courses(ctx context.Context, page, limit int) (paging.Page[model.Course], error)
	UpdateCourse(ctx context.Context, id string, in model.CourseInput) (model.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	// Auth and monitoring.
	Register(ctx context.Context, in model.RegisterInput) (model.User, error)
	Authenticate(ctx context.Context, in model.LoginInput) (model.User, error)
	Stats(ctx context.Context) map[string]any
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps        Dependencies
	authEnabled bool
	jwtSecret   []byte
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAuth enables bearer-token protection using secret for signing.
func WithAuth(secret string) ServerOption {
	return func(s *Server) {
		if secret != "" {
			s.authEnabled = true
			s.jwtSecret = []byte(secret)
		}
	}
}

// NewServer creates a new API server. Without WithAuth the routes are
// open and issued tokens are signed with an ephemeral per-process key.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{deps: deps}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.jwtSecret) == 0 {
		s.jwtSecret = make([]byte, 32)
		_, _ = rand.Read(s.jwtSecret)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.handleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.handleStats, "stats"))

	mux.HandleFunc("POST /api/auth/register", MetricsMiddleware(s.handleRegister, "auth_register"))
	mux.HandleFunc("POST /api/auth/login", MetricsMiddleware(s.handleLogin, "auth_login"))

	protected := func(endpoint string, h http.HandlerFunc) http.HandlerFunc {
		return MetricsMiddleware(s.requireAuth(h), endpoint)
	}

	mux.HandleFunc("GET /api/institutes", protected("institutes", s.handleListInstitutes))
	mux.HandleFunc("POST /api/institutes", protected("institutes", s.handleCreateInstitute))
	mux.HandleFunc("GET /api/institutes/{id}", protected("institute", s.handleGetInstitute))
	mux.HandleFunc("PUT /api/institutes/{id}", protected("institute", s.handleUpdateInstitute))
	mux.HandleFunc("DELETE /api/institutes/{id}", protected("institute", s.handleDeleteInstitute))

	mux.HandleFunc("GET /api/students", protected("students", s.handleListStudents))
	mux.HandleFunc("POST /api/students", protected("students", s.handleCreateStudent))
	mux.HandleFunc("GET /api/students/{id}", protected("student", s.handleGetStudent))
	mux.HandleFunc("PUT /api/students/{id}", protected("student", s.handleUpdateStudent))
	mux.HandleFunc("DELETE /api/students/{id}", protected("student", s.handleDeleteStudent))

	mux.HandleFunc("GET /api/courses", protected("courses", s.handleListCourses))
	mux.HandleFunc("POST /api/courses", protected("courses", s.handleCreateCourse))
	mux.HandleFunc("GET /api/courses/{id}", protected("course", s.handleGetCourse))
	mux.HandleFunc("PUT /api/courses/{id}", protected("course", s.handleUpdateCourse))
	mux.HandleFunc("DELETE /api/courses/{id}", protected("course", s.handleDeleteCourse))

	mux.HandleFunc("GET /api/results", protected("results", s.handleListResults))
	mux.HandleFunc("POST /api/results", protected("results", s.handleSubmitResult))
	mux.HandleFunc("GET /api/results/{id}", protected("result", s.handleGetResult))
	mux.HandleFunc("PUT /api/results/{id}", protected("result", s.handleUpdateResult))
	mux.HandleFunc("DELETE /api/results/{id}", protected("result", s.handleDeleteResult))

	mux.HandleFunc("GET /api/reports/top-courses", protected("report_top_courses", s.handleTopCourses))
	mux.HandleFunc("GET /api/reports/top-students", protected("report_top_students", s.handleTopStudents))
	mux.HandleFunc("GET /api/reports/students/{instituteId}", protected("report_institute_students", s.handleInstituteStudents))
}

// envelope is the uniform JSON response shape.
type envelope struct {
	StatusCode int               `json:"status_code"`
	Status     string            `json:"status"`
	Message    string            `json:"message,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
	Data       any               `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{StatusCode: status, Status: "success", Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	st := "success"
	if status >= http.StatusBadRequest {
		st = "error"
	}
	writeJSON(w, status, envelope{StatusCode: status, Status: st, Message: msg})
}

// writeError translates service errors into the client-facing taxonomy:
// field validation -> 400 with a field map, conflicts -> 400, missing
// references -> 404, everything else -> generic 500 without internal
// detail.
func writeError(w http.ResponseWriter, err error) {
	var fields validate.FieldErrors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, envelope{
			StatusCode: http.StatusBadRequest,
			Status:     "error",
			Message:    "validation failed",
			Errors:     fields,
		})
	case errors.Is(err, repository.ErrConflict):
		writeMessage(w, http.StatusBadRequest, ErrDuplicate.Error())
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrForeignKey):
		writeMessage(w, http.StatusNotFound, ErrNotFound.Error())
	default:
		writeMessage(w, http.StatusInternalServerError, ErrInternal.Error())
	}
}
