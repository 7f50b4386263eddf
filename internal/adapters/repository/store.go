// Package repository defines the record store interface and its
// implementations.
package repository

import (
	"context"

	"github.com/okian/gradebook/internal/domain/model"
)

// Store provides durable access to score records, the referential
// entities they point at, and API users.
//
// InsertRecord and UpdateRecord own the composite-key uniqueness
// invariant: both perform the existence check and the mutation as one
// atomic step against the backend, so two concurrent submissions for the
// same (student, course, year, semester) can never both succeed.
type Store interface {
	// Score records.
	InsertRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error)
	RecordByID(ctx context.Context, id string) (model.ScoreRecord, error)
	RecordByKey(ctx context.Context, key model.RecordKey) (model.ScoreRecord, error)
	// UpdateRecord replaces the key fields and score of an existing record,
	// re-checking the composite key against all other records.
	UpdateRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	// Records returns all score records, newest first.
	Records(ctx context.Context) ([]model.ScoreRecord, error)
	// Rows returns every score record joined with student, institute and
	// course identity fields, as one consistent snapshot for the reports.
	Rows(ctx context.Context) ([]model.ScoreRow, error)

	// Institutes.
	InsertInstitute(ctx context.Context, in model.Institute) (model.Institute, error)
	InstituteByID(ctx context.Context, id string) (model.Institute, error)
	Institutes(ctx context.Context) ([]model.Institute, error)
	UpdateInstitute(ctx context.Context, in model.Institute) (model.Institute, error)
	DeleteInstitute(ctx context.Context, id string) error

	// Students.
	InsertStudent(ctx context.Context, s model.Student) (model.Student, error)
	StudentByID(ctx context.Context, id string) (model.Student, error)
	Students(ctx context.Context) ([]model.Student, error)
	StudentsByInstitute(ctx context.Context, instituteID string) ([]model.Student, error)
	UpdateStudent(ctx context.Context, s model.Student) (model.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	// Courses.
	InsertCourse(ctx context.Context, c model.Course) (model.Course, error)
	CourseByID(ctx context.Context, id string) (model.Course, error)
	Courses(ctx context.Context) ([]model.Course, error)
	UpdateCourse(ctx context.Context, c model.Course) (model.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	// API users.
	InsertUser(ctx context.Context, u model.User) (model.User, error)
	UserByEmail(ctx context.Context, email string) (model.User, error)

	// Close releases backend resources.
	Close() error
}
