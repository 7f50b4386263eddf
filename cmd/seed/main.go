package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/gradebook/internal/seeder"
	"github.com/okian/gradebook/pkg/logger"
)

// Default configuration constants.
const (
	defaultInstitutes  = 5
	defaultStudents    = 200
	defaultCourses     = 12
	defaultResults     = 2000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSeedTimeout = 10 * time.Minute
	defaultYearFrom    = 2020
	defaultYearTo      = 2025
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		email      = flag.String("email", "seeder@example.com", "API account email")
		password   = flag.String("password", "seed-me-in", "API account password")
		institutes = flag.Int("institutes", defaultInstitutes, "Number of institutes to create")
		students   = flag.Int("students", defaultStudents, "Number of students to create")
		courses    = flag.Int("courses", defaultCourses, "Number of courses to create")
		results    = flag.Int("results", defaultResults, "Number of score records to submit")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent submission workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		yearFrom   = flag.Int("year-from", defaultYearFrom, "First academic year used for results")
		yearTo     = flag.Int("year-to", defaultYearTo, "Last academic year used for results")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	if *yearTo < *yearFrom {
		os.Stderr.WriteString("year-to must not be before year-from\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	cfg := &seeder.Config{
		BaseURL:    *baseURL,
		Email:      *email,
		Password:   *password,
		Institutes: *institutes,
		Students:   *students,
		Courses:    *courses,
		Results:    *results,
		Workers:    *workers,
		Timeout:    *timeout,
		YearFrom:   *yearFrom,
		YearTo:     *yearTo,
		Verbose:    *verbose,
	}

	if err := seeder.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seeding failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
