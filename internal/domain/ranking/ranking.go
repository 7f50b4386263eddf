// Package ranking derives the academic performance reports from score
// rows. All functions are pure: they take a row snapshot and return the
// ranked output, so every request recomputes from current store state and
// two runs over an unchanged snapshot always agree.
package ranking

import (
	"sort"

	"github.com/okian/gradebook/internal/domain/model"
)

// CourseEntry is one academic year's enrollment winner.
type CourseEntry struct {
	AcademicYear    int
	CourseID        string
	CourseName      string
	CourseCode      string
	EnrollmentCount int
	Rank            int
}

// StudentEntry is one row of the student leaderboard.
type StudentEntry struct {
	Rank          int
	StudentID     string
	FirstName     string
	LastName      string
	InstituteID   string
	InstituteName string
	HighestScore  float64
}

type yearCourse struct {
	year     int
	courseID string
}

// TopCoursesByYear returns, per academic year, the course with the highest
// distinct-student enrollment count. Within a year the full ordering is
// enrollment count desc, then course code asc; only the first entry of
// each year survives. Years without records produce no entry. Output is
// ordered by academic year desc.
func TopCoursesByYear(rows []model.ScoreRow) []CourseEntry {
	students := make(map[yearCourse]map[string]struct{})
	courses := make(map[yearCourse]model.ScoreRow)
	for _, r := range rows {
		k := yearCourse{year: r.AcademicYear, courseID: r.CourseID}
		if students[k] == nil {
			students[k] = make(map[string]struct{})
			courses[k] = r
		}
		students[k][r.StudentID] = struct{}{}
	}

	byYear := make(map[int][]CourseEntry)
	for k, ids := range students {
		row := courses[k]
		byYear[k.year] = append(byYear[k.year], CourseEntry{
			AcademicYear:    k.year,
			CourseID:        k.courseID,
			CourseName:      row.CourseName,
			CourseCode:      row.CourseCode,
			EnrollmentCount: len(ids),
		})
	}

	winners := make([]CourseEntry, 0, len(byYear))
	for _, entries := range byYear {
		// The tie-break only means anything relative to the whole year,
		// so order every course before picking the winner.
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].EnrollmentCount != entries[j].EnrollmentCount {
				return entries[i].EnrollmentCount > entries[j].EnrollmentCount
			}
			return entries[i].CourseCode < entries[j].CourseCode
		})
		for i := range entries {
			entries[i].Rank = i + 1
		}
		winners = append(winners, entries[0])
	}

	sort.Slice(winners, func(i, j int) bool {
		return winners[i].AcademicYear > winners[j].AcademicYear
	})
	return winners
}

// TopStudents ranks students by their best score across the rows, filtered
// to one academic year when year is non-nil. Ranks follow standard
// competition semantics: students with equal best scores share a rank and
// the next distinct score's rank is 1 + the number of strictly better
// students, leaving gaps after ties. Ties order deterministically by last
// name, first name, then student id. The returned slice length is the
// distinct-student total; ranked page and total therefore always come from
// the same snapshot.
func TopStudents(rows []model.ScoreRow, year *int) []StudentEntry {
	best := make(map[string]StudentEntry)
	for _, r := range rows {
		if year != nil && r.AcademicYear != *year {
			continue
		}
		e, ok := best[r.StudentID]
		if !ok {
			best[r.StudentID] = StudentEntry{
				StudentID:     r.StudentID,
				FirstName:     r.FirstName,
				LastName:      r.LastName,
				InstituteID:   r.InstituteID,
				InstituteName: r.InstituteName,
				HighestScore:  r.Score,
			}
			continue
		}
		if r.Score > e.HighestScore {
			e.HighestScore = r.Score
			best[r.StudentID] = e
		}
	}

	entries := make([]StudentEntry, 0, len(best))
	for _, e := range best {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.HighestScore != b.HighestScore {
			return a.HighestScore > b.HighestScore
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.StudentID < b.StudentID
	})

	for i := range entries {
		if i > 0 && entries[i].HighestScore == entries[i-1].HighestScore {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
	return entries
}
