package seeder

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/gradebook/internal/domain/types"
	"github.com/okian/gradebook/pkg/logger"
)

// Run executes a complete seeding pass: authenticate, create the
// referential entities, submit score records concurrently, then verify
// the reports reflect the seeded data.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Named("seeder")
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting seeding run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("institutes", cfg.Institutes),
		logger.Int("students", cfg.Students),
		logger.Int("courses", cfg.Courses),
		logger.Int("results", cfg.Results),
		logger.Int("workers", cfg.Workers),
	)

	c := newClient(cfg.BaseURL, cfg.Timeout)

	if err := c.health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if err := c.authenticate(ctx, cfg.Email, cfg.Password); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	instituteIDs := make([]string, 0, cfg.Institutes)
	for _, in := range instituteInputs(cfg.Institutes) {
		inst, err := c.createInstitute(ctx, in)
		if err != nil {
			return fmt.Errorf("institute creation failed: %w", err)
		}
		instituteIDs = append(instituteIDs, inst.ID)
	}
	stats.InstitutesCreated = len(instituteIDs)

	studentIDs := make([]string, 0, cfg.Students)
	for _, in := range studentInputs(cfg.Students, instituteIDs) {
		s, err := c.createStudent(ctx, in)
		if err != nil {
			return fmt.Errorf("student creation failed: %w", err)
		}
		studentIDs = append(studentIDs, s.ID)
	}
	stats.StudentsCreated = len(studentIDs)

	courseIDs := make([]string, 0, cfg.Courses)
	for _, in := range courseInputs(cfg.Courses) {
		course, err := c.createCourse(ctx, in)
		if err != nil {
			return fmt.Errorf("course creation failed: %w", err)
		}
		courseIDs = append(courseIDs, course.ID)
	}
	stats.CoursesCreated = len(courseIDs)

	inputs := resultInputs(cfg, studentIDs, courseIDs)
	if err := submitResults(ctx, cfg, c, inputs, stats); err != nil {
		return fmt.Errorf("result submission failed: %w", err)
	}

	if err := verifyReports(ctx, cfg, c, stats); err != nil {
		return fmt.Errorf("report verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return nil
}

// verifyReports fetches the two reports and sanity-checks their shape
// against what was just seeded.
func verifyReports(ctx context.Context, cfg *Config, c *client, stats *Stats) error {
	log := logger.Named("seeder")

	status, env, err := c.do(ctx, http.MethodGet, "/api/reports/top-courses", nil)
	if err != nil {
		return fmt.Errorf("top courses: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("top courses failed with status %d: %s", status, env.Message)
	}
	var results []types.EnrollmentRank
	if err := unmarshalData(env, "results", &results); err != nil {
		return fmt.Errorf("top courses: %w", err)
	}
	if stats.ResultsSuccessful > 0 && len(results) == 0 {
		return fmt.Errorf("top courses report is empty after %d successful submissions", stats.ResultsSuccessful)
	}
	for i := 1; i < len(results); i++ {
		if results[i].AcademicYear >= results[i-1].AcademicYear {
			return fmt.Errorf("top courses not ordered by year: %d before %d",
				results[i-1].AcademicYear, results[i].AcademicYear)
		}
	}

	status, env, err = c.do(ctx, http.MethodGet, "/api/reports/top-students?limit=10", nil)
	if err != nil {
		return fmt.Errorf("top students: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("top students failed with status %d: %s", status, env.Message)
	}
	var students []types.StudentRank
	if err := unmarshalData(env, "students", &students); err != nil {
		return fmt.Errorf("top students: %w", err)
	}
	prev := 101.0
	for _, s := range students {
		score, err := strconv.ParseFloat(s.HighestScore, 64)
		if err != nil {
			return fmt.Errorf("student %s has malformed highest score %q", s.ID, s.HighestScore)
		}
		if score > prev {
			return fmt.Errorf("leaderboard not sorted: %s scored %.2f above previous %.2f", s.ID, score, prev)
		}
		prev = score
	}

	log.Info(ctx, "reports verified",
		logger.Int("topCourseYears", len(results)),
		logger.Int("leaderboardEntries", len(students)),
	)
	return nil
}

// displayFinalStats logs the final seeding statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var perSecond float64
	if stats.Duration > 0 {
		perSecond = float64(stats.ResultsSubmitted) / stats.Duration.Seconds()
	}
	logger.Named("seeder").Info(ctx, "seeding completed",
		logger.Int("institutes", stats.InstitutesCreated),
		logger.Int("students", stats.StudentsCreated),
		logger.Int("courses", stats.CoursesCreated),
		logger.Int("resultsSubmitted", stats.ResultsSubmitted),
		logger.Int("resultsSuccessful", stats.ResultsSuccessful),
		logger.Int("resultsDuplicate", stats.ResultsDuplicate),
		logger.Int("resultsFailed", stats.ResultsFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("resultsPerSecond", perSecond),
	)
}
