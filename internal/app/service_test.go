package app_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/gradebook/internal/adapters/repository"
	"github.com/okian/gradebook/internal/app"
	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/internal/domain/validate"
	"github.com/okian/gradebook/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func ptr[T any](v T) *T { return &v }

// seeded builds a service with one institute, two students and two courses.
func seeded(ctx context.Context, opts ...app.Option) (*app.Service, []model.Student, []model.Course) {
	svc := app.New(opts...)

	inst, _ := svc.CreateInstitute(ctx, model.InstituteInput{Name: "Harbor University", Code: "HU"})
	var students []model.Student
	for _, in := range []model.StudentInput{
		{InstituteID: inst.ID, FirstName: "Ann", LastName: "Abel", Email: "ann@hu.edu"},
		{InstituteID: inst.ID, FirstName: "Bob", LastName: "Best", Email: "bob@hu.edu"},
	} {
		s, _ := svc.CreateStudent(ctx, in)
		students = append(students, s)
	}
	var courses []model.Course
	for _, in := range []model.CourseInput{
		{Name: "Algorithms", Code: "CS101", Credits: 4},
		{Name: "Databases", Code: "CS240", Credits: 3},
	} {
		c, _ := svc.CreateCourse(ctx, in)
		courses = append(courses, c)
	}
	return svc, students, courses
}

func submission(studentID, courseID string, year int, sem model.Semester, score float64) model.ScoreRecordInput {
	return model.ScoreRecordInput{
		StudentID:    studentID,
		CourseID:     courseID,
		Score:        ptr(score),
		AcademicYear: ptr(year),
		Semester:     sem,
	}
}

func TestService_SubmitScore(t *testing.T) {
	Convey("Given a service with seeded students and courses", t, func() {
		ctx := context.Background()
		svc, students, courses := seeded(ctx)

		Convey("When submitting a valid score", func() {
			rec, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 91.5))

			Convey("Then the record is stored with an id and timestamp", func() {
				So(err, ShouldBeNil)
				So(rec.ID, ShouldNotBeEmpty)
				So(rec.Score, ShouldEqual, 91.5)
				So(rec.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("And resubmitting the same composite key is a conflict", func() {
				_, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 50))
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})

			Convey("And the same student in another semester is accepted", func() {
				_, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterSpring, 50))
				So(err, ShouldBeNil)
			})
		})

		Convey("When the payload fails validation", func() {
			_, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 101))

			Convey("Then field errors come back and nothing is stored", func() {
				var fields validate.FieldErrors
				So(errors.As(err, &fields), ShouldBeTrue)
				So(fields, ShouldContainKey, "score")

				page, err := svc.ScoreRecords(ctx, 1, 10)
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 0)
			})
		})

		Convey("When a submitted score is exactly zero", func() {
			_, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 0))

			Convey("Then zero passes the required check", func() {
				So(err, ShouldBeNil)
			})
		})

		Convey("When the student does not exist", func() {
			_, err := svc.SubmitScore(ctx, submission("missing", courses[0].ID, 2024, model.SemesterFall, 50))

			Convey("Then the submission is rejected as not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the course does not exist", func() {
			_, err := svc.SubmitScore(ctx, submission(students[0].ID, "missing", 2024, model.SemesterFall, 50))

			Convey("Then the submission is rejected as not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestService_UpdateAndDeleteScore(t *testing.T) {
	Convey("Given a service with two stored records", t, func() {
		ctx := context.Background()
		svc, students, courses := seeded(ctx)

		a, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 80))
		So(err, ShouldBeNil)
		b, err := svc.SubmitScore(ctx, submission(students[1].ID, courses[0].ID, 2024, model.SemesterFall, 75))
		So(err, ShouldBeNil)

		Convey("When updating a record's score in place", func() {
			out, err := svc.UpdateScore(ctx, a.ID, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 85))

			Convey("Then the new score is stored", func() {
				So(err, ShouldBeNil)
				So(out.Score, ShouldEqual, 85.0)
			})
		})

		Convey("When moving a record onto another record's key", func() {
			_, err := svc.UpdateScore(ctx, b.ID, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 75))

			Convey("Then the update conflicts", func() {
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("When updating a missing record", func() {
			_, err := svc.UpdateScore(ctx, "missing", submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 75))

			Convey("Then it is not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When deleting a record", func() {
			So(svc.DeleteScore(ctx, a.ID), ShouldBeNil)

			Convey("Then it is gone and its key is free again", func() {
				_, err := svc.ScoreRecord(ctx, a.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)

				_, err = svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 99))
				So(err, ShouldBeNil)
			})
		})
	})
}

func TestService_Pagination(t *testing.T) {
	Convey("Given a service with 25 records", t, func() {
		ctx := context.Background()
		svc, students, courses := seeded(ctx)

		for year := 2000; year < 2025; year++ {
			_, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, year, model.SemesterFall, 60))
			So(err, ShouldBeNil)
		}

		Convey("When listing with an explicit limit", func() {
			page, err := svc.ScoreRecords(ctx, 3, 10)

			Convey("Then the window and totals line up", func() {
				So(err, ShouldBeNil)
				So(len(page.Items), ShouldEqual, 5)
				So(page.Total, ShouldEqual, 25)
				So(page.Pages, ShouldEqual, 3)
			})
		})

		Convey("When the limit is omitted", func() {
			page, err := svc.ScoreRecords(ctx, 1, 0)

			Convey("Then the default page size applies", func() {
				So(err, ShouldBeNil)
				So(len(page.Items), ShouldEqual, 10)
			})
		})

		Convey("When the limit exceeds the configured maximum", func() {
			capped, cst, cco := seeded(ctx, app.WithMaxPageSize(20))
			for year := 2000; year < 2025; year++ {
				_, err := capped.SubmitScore(ctx, submission(cst[0].ID, cco[0].ID, year, model.SemesterFall, 60))
				So(err, ShouldBeNil)
			}

			page, err := capped.ScoreRecords(ctx, 1, 500)

			Convey("Then the limit is capped", func() {
				So(err, ShouldBeNil)
				So(page.Total, ShouldEqual, 25)
				So(len(page.Items), ShouldEqual, 20)
			})
		})
	})
}

func TestService_Auth(t *testing.T) {
	Convey("Given a service", t, func() {
		ctx := context.Background()
		svc := app.New()

		Convey("When registering a user", func() {
			u, err := svc.Register(ctx, model.RegisterInput{Email: "admin@example.com", Password: "secret1"})

			Convey("Then the user exists and the raw password is never stored", func() {
				So(err, ShouldBeNil)
				So(u.ID, ShouldNotBeEmpty)
				So(u.PasswordHash, ShouldNotEqual, "secret1")
			})

			Convey("And the same email cannot register twice", func() {
				_, err := svc.Register(ctx, model.RegisterInput{Email: "admin@example.com", Password: "other-pass"})
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})

			Convey("And correct credentials authenticate", func() {
				got, err := svc.Authenticate(ctx, model.LoginInput{Email: "admin@example.com", Password: "secret1"})
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, u.ID)
			})

			Convey("And a wrong password fails the same way as an unknown email", func() {
				_, badPass := svc.Authenticate(ctx, model.LoginInput{Email: "admin@example.com", Password: "wrong-1"})
				_, badMail := svc.Authenticate(ctx, model.LoginInput{Email: "nobody@example.com", Password: "secret1"})
				So(errors.Is(badPass, repository.ErrNotFound), ShouldBeTrue)
				So(errors.Is(badMail, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When registering with a weak password", func() {
			_, err := svc.Register(ctx, model.RegisterInput{Email: "a@b.co", Password: "123"})

			Convey("Then validation rejects it", func() {
				var fields validate.FieldErrors
				So(errors.As(err, &fields), ShouldBeTrue)
			})
		})
	})
}

func TestService_CRUD(t *testing.T) {
	Convey("Given a seeded service", t, func() {
		ctx := context.Background()
		svc, students, courses := seeded(ctx)

		Convey("When updating a student without a status", func() {
			out, err := svc.UpdateStudent(ctx, students[0].ID, model.StudentInput{
				InstituteID: students[0].InstituteID,
				FirstName:   "Anna",
				LastName:    students[0].LastName,
				Email:       students[0].Email,
			})

			Convey("Then the existing status is preserved", func() {
				So(err, ShouldBeNil)
				So(out.FirstName, ShouldEqual, "Anna")
				So(out.Status, ShouldEqual, model.StatusActive)
			})
		})

		Convey("When creating a course with a taken code", func() {
			_, err := svc.CreateCourse(ctx, model.CourseInput{Name: "Other", Code: courses[0].Code})

			Convey("Then it conflicts", func() {
				So(errors.Is(err, repository.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("When deleting a student that still has records", func() {
			_, err := svc.SubmitScore(ctx, submission(students[0].ID, courses[0].ID, 2024, model.SemesterFall, 70))
			So(err, ShouldBeNil)

			Convey("Then the delete is refused", func() {
				So(errors.Is(svc.DeleteStudent(ctx, students[0].ID), repository.ErrConflict), ShouldBeTrue)
			})
		})

		Convey("When reading service stats", func() {
			stats := svc.Stats(ctx)

			Convey("Then entity counts are reported", func() {
				So(stats["institutes"], ShouldEqual, 1)
				So(stats["students"], ShouldEqual, 2)
				So(stats["courses"], ShouldEqual, 2)
				So(stats["scoreRecords"], ShouldEqual, 0)
			})
		})
	})
}
