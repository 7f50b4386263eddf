// Package types contains common types shared between the service and the
// HTTP layer.
package types

// CourseRef identifies a course in report output.
type CourseRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// EnrollmentRank is one academic year's most-enrolled course.
type EnrollmentRank struct {
	AcademicYear    int       `json:"academicYear"`
	Course          CourseRef `json:"course"`
	EnrollmentCount int       `json:"enrollmentCount"`
}

// StudentRank is one row of the student leaderboard. HighestScore is the
// student's best score across qualifying records, rendered with two
// decimal places.
type StudentRank struct {
	Rank          int    `json:"rank"`
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	InstituteID   string `json:"instituteId"`
	InstituteName string `json:"instituteName"`
	HighestScore  string `json:"highestScore"`
}

// Pagination describes the window applied to a listed or ranked result set.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}
