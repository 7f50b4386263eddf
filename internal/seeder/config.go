// Package seeder populates a running gradebook instance with realistic
// demo data over the HTTP API and spot-checks the reports afterwards.
package seeder

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Email      string        // API account email
	Password   string        // API account password
	Institutes int           // Number of institutes to create
	Students   int           // Number of students to create
	Courses    int           // Number of courses to create
	Results    int           // Number of score records to submit
	Workers    int           // Number of concurrent submission workers
	Timeout    time.Duration // HTTP request timeout
	YearFrom   int           // First academic year used for results
	YearTo     int           // Last academic year used for results
	Verbose    bool          // Enable verbose logging
}

// Stats holds seeding statistics.
type Stats struct {
	InstitutesCreated int
	StudentsCreated   int
	CoursesCreated    int
	ResultsSubmitted  int
	ResultsSuccessful int
	ResultsDuplicate  int
	ResultsFailed     int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
