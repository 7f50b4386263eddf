package app_test

import (
	"context"
	"testing"

	"github.com/okian/gradebook/internal/app"
	"github.com/okian/gradebook/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// reportFixture seeds a richer dataset for the report tests: one
// institute, four students and three courses.
func reportFixture(ctx context.Context) (*app.Service, []model.Student, []model.Course) {
	svc := app.New()

	inst, _ := svc.CreateInstitute(ctx, model.InstituteInput{Name: "Lakeside College", Code: "LC"})
	var students []model.Student
	for _, in := range []model.StudentInput{
		{InstituteID: inst.ID, FirstName: "Ann", LastName: "Abel", Email: "ann@lc.edu"},
		{InstituteID: inst.ID, FirstName: "Bob", LastName: "Best", Email: "bob@lc.edu"},
		{InstituteID: inst.ID, FirstName: "Cleo", LastName: "Cage", Email: "cleo@lc.edu"},
		{InstituteID: inst.ID, FirstName: "Dana", LastName: "Dorn", Email: "dana@lc.edu"},
	} {
		s, _ := svc.CreateStudent(ctx, in)
		students = append(students, s)
	}
	var courses []model.Course
	for _, in := range []model.CourseInput{
		{Name: "Algorithms", Code: "CS101", Credits: 4},
		{Name: "Art History", Code: "AB100", Credits: 2},
		{Name: "Databases", Code: "CS240", Credits: 3},
	} {
		c, _ := svc.CreateCourse(ctx, in)
		courses = append(courses, c)
	}
	return svc, students, courses
}

func TestService_TopCourses(t *testing.T) {
	Convey("Given records across two academic years", t, func() {
		ctx := context.Background()
		svc, students, courses := reportFixture(ctx)

		// 2024: CS101 has 3 students, AB100 has 1.
		for i, score := range []float64{80, 75, 90} {
			_, err := svc.SubmitScore(ctx, submission(students[i].ID, courses[0].ID, 2024, model.SemesterFall, score))
			So(err, ShouldBeNil)
		}
		_, err := svc.SubmitScore(ctx, submission(students[3].ID, courses[1].ID, 2024, model.SemesterFall, 95))
		So(err, ShouldBeNil)
		// 2023: only AB100 has a record.
		_, err = svc.SubmitScore(ctx, submission(students[0].ID, courses[1].ID, 2023, model.SemesterFall, 70))
		So(err, ShouldBeNil)

		Convey("When computing the top courses report", func() {
			results, err := svc.TopCourses(ctx)

			Convey("Then each year reports its most-enrolled course, newest first", func() {
				So(err, ShouldBeNil)
				So(len(results), ShouldEqual, 2)
				So(results[0].AcademicYear, ShouldEqual, 2024)
				So(results[0].Course.Code, ShouldEqual, "CS101")
				So(results[0].EnrollmentCount, ShouldEqual, 3)
				So(results[1].AcademicYear, ShouldEqual, 2023)
				So(results[1].Course.Code, ShouldEqual, "AB100")
				So(results[1].EnrollmentCount, ShouldEqual, 1)
			})
		})

		Convey("When a second course draws level in 2024", func() {
			// AB100 reaches 3 distinct students, tying CS101.
			for _, sid := range []string{students[0].ID, students[1].ID} {
				_, err := svc.SubmitScore(ctx, submission(sid, courses[1].ID, 2024, model.SemesterFall, 50))
				So(err, ShouldBeNil)
			}

			results, err := svc.TopCourses(ctx)

			Convey("Then the lexicographically smaller code wins the tie", func() {
				So(err, ShouldBeNil)
				So(results[0].Course.Code, ShouldEqual, "AB100")
			})
		})

		Convey("When a student repeats a course across semesters", func() {
			_, err := svc.SubmitScore(ctx, submission(students[3].ID, courses[1].ID, 2024, model.SemesterSpring, 40))
			So(err, ShouldBeNil)
			_, err = svc.SubmitScore(ctx, submission(students[3].ID, courses[1].ID, 2024, model.SemesterSummer, 60))
			So(err, ShouldBeNil)

			results, err := svc.TopCourses(ctx)

			Convey("Then enrollment counts that student once and CS101 still leads", func() {
				So(err, ShouldBeNil)
				So(results[0].Course.Code, ShouldEqual, "CS101")
				So(results[0].EnrollmentCount, ShouldEqual, 3)
			})
		})
	})

	Convey("Given no records at all", t, func() {
		ctx := context.Background()
		svc, _, _ := reportFixture(ctx)

		Convey("Then the report is empty", func() {
			results, err := svc.TopCourses(ctx)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})
	})
}

func TestService_TopStudents(t *testing.T) {
	Convey("Given four students with best scores 95, 95, 90 and 80", t, func() {
		ctx := context.Background()
		svc, students, courses := reportFixture(ctx)

		scores := map[string][]float64{
			students[0].ID: {95, 60},
			students[1].ID: {40, 95},
			students[2].ID: {90},
			students[3].ID: {80},
		}
		for sid, ss := range scores {
			for i, score := range ss {
				_, err := svc.SubmitScore(ctx, submission(sid, courses[i].ID, 2024, model.SemesterFall, score))
				So(err, ShouldBeNil)
			}
		}

		Convey("When requesting the leaderboard", func() {
			page, err := svc.TopStudents(ctx, nil, 1, 10)

			Convey("Then ranks are 1, 1, 3, 4 with scores as fixed-point strings", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 4)
				So(page.Items[0].Rank, ShouldEqual, 1)
				So(page.Items[1].Rank, ShouldEqual, 1)
				So(page.Items[2].Rank, ShouldEqual, 3)
				So(page.Items[3].Rank, ShouldEqual, 4)
				So(page.Items[0].HighestScore, ShouldEqual, "95.00")
				So(page.Items[2].HighestScore, ShouldEqual, "90.00")
			})

			Convey("And entries carry institute identity", func() {
				So(page.Items[0].InstituteName, ShouldEqual, "Lakeside College")
				So(page.Items[0].InstituteID, ShouldNotBeEmpty)
			})
		})

		Convey("When paging the leaderboard", func() {
			page, err := svc.TopStudents(ctx, nil, 2, 3)

			Convey("Then rank numbering continues across pages", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 4)
				So(page.Pages, ShouldEqual, 2)
				So(len(page.Items), ShouldEqual, 1)
				So(page.Items[0].Rank, ShouldEqual, 4)
			})
		})

		Convey("When filtering by academic year", func() {
			year := 2023
			_, err := svc.SubmitScore(ctx, submission(students[3].ID, courses[0].ID, year, model.SemesterFall, 42.5))
			So(err, ShouldBeNil)

			page, err := svc.TopStudents(ctx, &year, 1, 10)

			Convey("Then only that year's records count", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 1)
				So(page.Items[0].ID, ShouldEqual, students[3].ID)
				So(page.Items[0].HighestScore, ShouldEqual, "42.50")
				So(page.Items[0].Rank, ShouldEqual, 1)
			})
		})

		Convey("When filtering by a year with no records", func() {
			year := 1999
			page, err := svc.TopStudents(ctx, &year, 1, 10)

			Convey("Then the page is empty with zero totals", func() {
				So(err, ShouldBeNil)
				So(page.Items, ShouldBeEmpty)
				So(page.Total, ShouldEqual, 0)
				So(page.Pages, ShouldEqual, 0)
			})
		})
	})
}
