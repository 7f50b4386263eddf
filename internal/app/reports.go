package app

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/gradebook/internal/domain/paging"
	"github.com/okian/gradebook/internal/domain/ranking"
	"github.com/okian/gradebook/internal/domain/types"
	"github.com/okian/gradebook/pkg/metrics"
)

// TopCourses returns, per academic year, the course with the highest
// distinct-student enrollment, newest year first.
func (s *Service) TopCourses(ctx context.Context) ([]types.EnrollmentRank, error) {
	start := time.Now()
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("top courses: %w", err)
	}

	winners := ranking.TopCoursesByYear(rows)
	out := make([]types.EnrollmentRank, len(winners))
	for i, w := range winners {
		out[i] = types.EnrollmentRank{
			AcademicYear:    w.AcademicYear,
			EnrollmentCount: w.EnrollmentCount,
			Course: types.CourseRef{
				Name: w.CourseName,
				Code: w.CourseCode,
			},
		}
	}
	metrics.RecordReportDuration("top_courses", float64(time.Since(start).Milliseconds()))
	return out, nil
}

// TopStudents returns the windowed student leaderboard, optionally
// filtered to one academic year. Ranked page and total always come from
// the same row snapshot.
func (s *Service) TopStudents(ctx context.Context, year *int, page, limit int) (paging.Page[types.StudentRank], error) {
	start := time.Now()
	rows, err := s.store.Rows(ctx)
	if err != nil {
		return paging.Page[types.StudentRank]{}, fmt.Errorf("top students: %w", err)
	}

	ranked := ranking.TopStudents(rows, year)
	out := make([]types.StudentRank, len(ranked))
	for i, e := range ranked {
		out[i] = types.StudentRank{
			Rank:          e.Rank,
			ID:            e.StudentID,
			FirstName:     e.FirstName,
			LastName:      e.LastName,
			InstituteID:   e.InstituteID,
			InstituteName: e.InstituteName,
			HighestScore:  fmt.Sprintf("%.2f", e.HighestScore),
		}
	}
	metrics.RecordReportDuration("top_students", float64(time.Since(start).Milliseconds()))
	return window(s, out, page, limit), nil
}
