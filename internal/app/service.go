// Package app provides the core business service consumed by the HTTP
// API.
package app

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/okian/gradebook/internal/adapters/repository"
	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/internal/domain/paging"
	"github.com/okian/gradebook/internal/domain/validate"
	"github.com/okian/gradebook/pkg/logger"
	"github.com/okian/gradebook/pkg/metrics"
)

// Service implements the record-keeping and reporting operations.
type Service struct {
	store     repository.Store
	validator *validate.Validator
	log       logger.Logger

	defaultPageSize int
	maxPageSize     int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDefaultPageSize sets the limit applied when callers omit one.
func WithDefaultPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.defaultPageSize = size
		}
	}
}

// WithMaxPageSize caps the limit callers may request.
func WithMaxPageSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxPageSize = size
		}
	}
}

// New constructs a Service. Without options it runs on an in-memory store.
func New(opts ...Option) *Service {
	s := &Service{
		validator:       validate.New(),
		defaultPageSize: 10,
		maxPageSize:     100,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// window normalizes page/limit and applies the generic paginator.
func window[T any](s *Service, items []T, page, limit int) paging.Page[T] {
	if limit < 1 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	return paging.Window(items, page, limit)
}

// SubmitScore validates the candidate, verifies the referenced student
// and course exist, and appends the record through the store's atomic
// conflict-detecting insert. On conflict nothing is written and
// repository.ErrConflict comes back.
func (s *Service) SubmitScore(ctx context.Context, in model.ScoreRecordInput) (model.ScoreRecord, error) {
	if err := s.validator.Struct(in); err != nil {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return model.ScoreRecord{}, err
	}
	if _, err := s.store.StudentByID(ctx, in.StudentID); err != nil {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return model.ScoreRecord{}, fmt.Errorf("student %s: %w", in.StudentID, err)
	}
	if _, err := s.store.CourseByID(ctx, in.CourseID); err != nil {
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return model.ScoreRecord{}, fmt.Errorf("course %s: %w", in.CourseID, err)
	}

	rec, err := s.store.InsertRecord(ctx, model.ScoreRecord{
		StudentID:    in.StudentID,
		CourseID:     in.CourseID,
		Score:        *in.Score,
		AcademicYear: *in.AcademicYear,
		Semester:     in.Semester,
	})
	if err != nil {
		metrics.RecordSubmission(metrics.OutcomeConflict)
		return model.ScoreRecord{}, fmt.Errorf("insert score record: %w", err)
	}
	metrics.RecordSubmission(metrics.OutcomeAccepted)
	s.log.Debug(ctx, "score record created",
		logger.String("id", rec.ID),
		logger.String("studentId", rec.StudentID),
		logger.String("courseId", rec.CourseID),
	)
	return rec, nil
}

// UpdateScore applies a full replacement of an existing record's key
// fields and score. The composite key is re-checked against all other
// records by the store.
func (s *Service) UpdateScore(ctx context.Context, id string, in model.ScoreRecordInput) (model.ScoreRecord, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.ScoreRecord{}, err
	}
	if _, err := s.store.RecordByID(ctx, id); err != nil {
		return model.ScoreRecord{}, fmt.Errorf("score record %s: %w", id, err)
	}
	if _, err := s.store.StudentByID(ctx, in.StudentID); err != nil {
		return model.ScoreRecord{}, fmt.Errorf("student %s: %w", in.StudentID, err)
	}
	if _, err := s.store.CourseByID(ctx, in.CourseID); err != nil {
		return model.ScoreRecord{}, fmt.Errorf("course %s: %w", in.CourseID, err)
	}

	rec, err := s.store.UpdateRecord(ctx, model.ScoreRecord{
		ID:           id,
		StudentID:    in.StudentID,
		CourseID:     in.CourseID,
		Score:        *in.Score,
		AcademicYear: *in.AcademicYear,
		Semester:     in.Semester,
	})
	if err != nil {
		return model.ScoreRecord{}, fmt.Errorf("update score record: %w", err)
	}
	return rec, nil
}

// ScoreRecord returns one record by id.
func (s *Service) ScoreRecord(ctx context.Context, id string) (model.ScoreRecord, error) {
	rec, err := s.store.RecordByID(ctx, id)
	if err != nil {
		return model.ScoreRecord{}, fmt.Errorf("score record %s: %w", id, err)
	}
	return rec, nil
}

// ScoreRecords lists records newest first, windowed.
func (s *Service) ScoreRecords(ctx context.Context, page, limit int) (paging.Page[model.ScoreRecord], error) {
	recs, err := s.store.Records(ctx)
	if err != nil {
		return paging.Page[model.ScoreRecord]{}, fmt.Errorf("list score records: %w", err)
	}
	return window(s, recs, page, limit), nil
}

// DeleteScore removes one record by id.
func (s *Service) DeleteScore(ctx context.Context, id string) error {
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete score record %s: %w", id, err)
	}
	return nil
}

// Register validates the payload and creates an API user with a bcrypt
// password hash.
func (s *Service) Register(ctx context.Context, in model.RegisterInput) (model.User, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.store.InsertUser(ctx, model.User{Email: in.Email, PasswordHash: string(hash)})
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies credentials and returns the matching user.
// Unknown emails and wrong passwords both come back as
// repository.ErrNotFound so callers cannot probe which one failed.
func (s *Service) Authenticate(ctx context.Context, in model.LoginInput) (model.User, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.User{}, err
	}
	u, err := s.store.UserByEmail(ctx, in.Email)
	if err != nil {
		return model.User{}, fmt.Errorf("authenticate: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return model.User{}, fmt.Errorf("authenticate: %w", repository.ErrNotFound)
	}
	return u, nil
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]any {
	stats := map[string]any{}
	if recs, err := s.store.Records(ctx); err == nil {
		stats["scoreRecords"] = len(recs)
	}
	if institutes, err := s.store.Institutes(ctx); err == nil {
		stats["institutes"] = len(institutes)
	}
	if students, err := s.store.Students(ctx); err == nil {
		stats["students"] = len(students)
	}
	if courses, err := s.store.Courses(ctx); err == nil {
		stats["courses"] = len(courses)
	}
	return stats
}
