package ranking_test

import (
	"testing"

	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func row(studentID, courseID string, year int, semester model.Semester, score float64) model.ScoreRow {
	return model.ScoreRow{
		ScoreRecord: model.ScoreRecord{
			StudentID:    studentID,
			CourseID:     courseID,
			Score:        score,
			AcademicYear: year,
			Semester:     semester,
		},
	}
}

func namedRow(studentID, first, last, courseID, code string, year int, score float64) model.ScoreRow {
	r := row(studentID, courseID, year, model.SemesterFall, score)
	r.FirstName = first
	r.LastName = last
	r.CourseCode = code
	return r
}

func TestTopCoursesByYear(t *testing.T) {
	Convey("Given score rows across two academic years", t, func() {
		rows := []model.ScoreRow{
			namedRow("s1", "Ann", "Abel", "c-math", "MATH1", 2024, 80),
			namedRow("s2", "Bob", "Best", "c-math", "MATH1", 2024, 70),
			namedRow("s3", "Cleo", "Cage", "c-phys", "PHYS1", 2024, 90),
			namedRow("s1", "Ann", "Abel", "c-phys", "PHYS1", 2023, 60),
		}

		Convey("When computing the enrollment winners", func() {
			winners := ranking.TopCoursesByYear(rows)

			Convey("Then each year keeps exactly one winner, newest year first", func() {
				So(len(winners), ShouldEqual, 2)
				So(winners[0].AcademicYear, ShouldEqual, 2024)
				So(winners[1].AcademicYear, ShouldEqual, 2023)
			})

			Convey("And the year winner is the course with most distinct students", func() {
				So(winners[0].CourseID, ShouldEqual, "c-math")
				So(winners[0].EnrollmentCount, ShouldEqual, 2)
				So(winners[0].Rank, ShouldEqual, 1)
				So(winners[1].CourseID, ShouldEqual, "c-phys")
				So(winners[1].EnrollmentCount, ShouldEqual, 1)
			})
		})

		Convey("When one student has multiple records in the same course and year", func() {
			extra := append(rows,
				row("s3", "c-phys", 2024, model.SemesterSpring, 40),
				row("s3", "c-phys", 2024, model.SemesterSummer, 50),
			)
			winners := ranking.TopCoursesByYear(extra)

			Convey("Then enrollment still counts the student once", func() {
				So(winners[0].CourseID, ShouldEqual, "c-math")
				So(winners[0].EnrollmentCount, ShouldEqual, 2)
			})
		})
	})

	Convey("Given two courses tied on enrollment in one year", t, func() {
		rows := []model.ScoreRow{
			namedRow("s1", "Ann", "Abel", "c-zoo", "ZO900", 2024, 80),
			namedRow("s2", "Bob", "Best", "c-zoo", "ZO900", 2024, 80),
			namedRow("s3", "Cleo", "Cage", "c-art", "AB100", 2024, 80),
			namedRow("s4", "Dana", "Dorn", "c-art", "AB100", 2024, 80),
		}

		Convey("When computing the enrollment winners", func() {
			winners := ranking.TopCoursesByYear(rows)

			Convey("Then the lexicographically smaller course code wins", func() {
				So(len(winners), ShouldEqual, 1)
				So(winners[0].CourseCode, ShouldEqual, "AB100")
			})
		})
	})

	Convey("Given no score rows", t, func() {
		Convey("Then the winner list is empty", func() {
			So(ranking.TopCoursesByYear(nil), ShouldBeEmpty)
		})
	})
}

func TestTopStudents(t *testing.T) {
	Convey("Given students with scores 95, 95, 90 and 80", t, func() {
		rows := []model.ScoreRow{
			namedRow("s1", "Ann", "Abel", "c1", "C1", 2024, 95),
			namedRow("s2", "Bob", "Best", "c1", "C1", 2024, 95),
			namedRow("s3", "Cleo", "Cage", "c1", "C1", 2024, 90),
			namedRow("s4", "Dana", "Dorn", "c1", "C1", 2024, 80),
		}

		Convey("When ranking without a year filter", func() {
			entries := ranking.TopStudents(rows, nil)

			Convey("Then competition ranking leaves a gap after the tie", func() {
				So(len(entries), ShouldEqual, 4)
				So(entries[0].Rank, ShouldEqual, 1)
				So(entries[1].Rank, ShouldEqual, 1)
				So(entries[2].Rank, ShouldEqual, 3)
				So(entries[3].Rank, ShouldEqual, 4)
			})

			Convey("And tied students order by last name", func() {
				So(entries[0].StudentID, ShouldEqual, "s1")
				So(entries[1].StudentID, ShouldEqual, "s2")
			})
		})
	})

	Convey("Given one student with several scores", t, func() {
		rows := []model.ScoreRow{
			namedRow("s1", "Ann", "Abel", "c1", "C1", 2023, 55),
			namedRow("s1", "Ann", "Abel", "c2", "C2", 2024, 88),
			namedRow("s1", "Ann", "Abel", "c3", "C3", 2024, 71),
		}

		Convey("When ranking without a year filter", func() {
			entries := ranking.TopStudents(rows, nil)

			Convey("Then only the best score survives", func() {
				So(len(entries), ShouldEqual, 1)
				So(entries[0].HighestScore, ShouldEqual, 88.0)
				So(entries[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When filtering to 2023", func() {
			year := 2023
			entries := ranking.TopStudents(rows, &year)

			Convey("Then only that year's records count", func() {
				So(len(entries), ShouldEqual, 1)
				So(entries[0].HighestScore, ShouldEqual, 55.0)
			})
		})

		Convey("When filtering to a year with no records", func() {
			year := 2019
			entries := ranking.TopStudents(rows, &year)

			Convey("Then the leaderboard is empty", func() {
				So(entries, ShouldBeEmpty)
			})
		})
	})

	Convey("Given the same rows in a different input order", t, func() {
		a := []model.ScoreRow{
			namedRow("s1", "Ann", "Abel", "c1", "C1", 2024, 90),
			namedRow("s2", "Bob", "Best", "c1", "C1", 2024, 90),
			namedRow("s3", "Cleo", "Cage", "c1", "C1", 2024, 85),
		}
		b := []model.ScoreRow{a[2], a[0], a[1]}

		Convey("When ranking both snapshots", func() {
			ea := ranking.TopStudents(a, nil)
			eb := ranking.TopStudents(b, nil)

			Convey("Then the output is identical", func() {
				So(len(ea), ShouldEqual, len(eb))
				for i := range ea {
					So(ea[i], ShouldResemble, eb[i])
				}
			})
		})
	})
}
