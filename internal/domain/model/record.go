// Package model contains domain models passed between layers.
package model

import "time"

// Semester identifies the academic period within a year.
type Semester string

// Enumerated semesters. Score records are only accepted for these.
const (
	SemesterSpring Semester = "Spring"
	SemesterSummer Semester = "Summer"
	SemesterFall   Semester = "Fall"
)

// Valid reports whether s is one of the enumerated semesters.
func (s Semester) Valid() bool {
	switch s {
	case SemesterSpring, SemesterSummer, SemesterFall:
		return true
	}
	return false
}

// RecordKey is the composite key that must be unique across all score
// records: one score per student, course and academic period.
type RecordKey struct {
	StudentID    string
	CourseID     string
	AcademicYear int
	Semester     Semester
}

// ScoreRecord represents one student's result in one course for one
// academic period. Score is kept in [0, 100].
type ScoreRecord struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	CourseID     string    `json:"courseId"`
	Score        float64   `json:"score"`
	AcademicYear int       `json:"academicYear"`
	Semester     Semester  `json:"semester"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Key returns the record's composite key.
func (r ScoreRecord) Key() RecordKey {
	return RecordKey{
		StudentID:    r.StudentID,
		CourseID:     r.CourseID,
		AcademicYear: r.AcademicYear,
		Semester:     r.Semester,
	}
}

// ScoreRecordInput is the payload accepted by score submission and score
// update. Score and AcademicYear are pointers so a submitted zero survives
// the required check.
type ScoreRecordInput struct {
	StudentID    string   `json:"studentId" validate:"required"`
	CourseID     string   `json:"courseId" validate:"required"`
	Score        *float64 `json:"score" validate:"required,gte=0,lte=100"`
	AcademicYear *int     `json:"academicYear" validate:"required"`
	Semester     Semester `json:"semester" validate:"required,oneof=Spring Summer Fall"`
}

// Key returns the composite key the input would occupy.
func (in ScoreRecordInput) Key() RecordKey {
	k := RecordKey{
		StudentID: in.StudentID,
		CourseID:  in.CourseID,
		Semester:  in.Semester,
	}
	if in.AcademicYear != nil {
		k.AcademicYear = *in.AcademicYear
	}
	return k
}

// ScoreRow is a score record joined with the student, institute and course
// identity fields the reports need. Rows are read-only snapshots; the
// derived rankings are recomputed from them on every request.
type ScoreRow struct {
	ScoreRecord

	FirstName     string
	LastName      string
	InstituteID   string
	InstituteName string
	CourseName    string
	CourseCode    string
}
