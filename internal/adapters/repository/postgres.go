package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/okian/gradebook/internal/domain/model"
)

// Postgres error codes translated into store sentinels.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PGStore is the PostgreSQL Store implementation. The composite-key
// invariant is enforced by a unique index over (student_id, course_id,
// academic_year, semester), so the check and the insert are one atomic
// statement on the database side.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to the database and ensures the schema exists.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PGStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS institutes (
			id uuid PRIMARY KEY,
			name text NOT NULL,
			code text NOT NULL UNIQUE,
			address text NOT NULL DEFAULT '',
			status text NOT NULL DEFAULT 'active',
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS students (
			id uuid PRIMARY KEY,
			institute_id uuid NOT NULL REFERENCES institutes(id),
			first_name text NOT NULL,
			last_name text NOT NULL,
			email text NOT NULL UNIQUE,
			status text NOT NULL DEFAULT 'active',
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS courses (
			id uuid PRIMARY KEY,
			name text NOT NULL,
			code text NOT NULL UNIQUE,
			description text NOT NULL DEFAULT '',
			credits integer NOT NULL DEFAULT 0,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id uuid PRIMARY KEY,
			student_id uuid NOT NULL REFERENCES students(id),
			course_id uuid NOT NULL REFERENCES courses(id),
			score double precision NOT NULL,
			academic_year integer NOT NULL,
			semester text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now(),
			UNIQUE (student_id, course_id, academic_year, semester)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id uuid PRIMARY KEY,
			email text NOT NULL UNIQUE,
			password_hash text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// translate maps backend errors onto the store sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrConflict
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
	}
	return err
}

// InsertRecord appends a score record. The unique index rejects composite
// key collisions atomically.
func (s *PGStore) InsertRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO results (id, student_id, course_id, score, academic_year, semester)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.StudentID, rec.CourseID, rec.Score, rec.AcademicYear, string(rec.Semester)).Scan(&rec.CreatedAt)
	if err != nil {
		return model.ScoreRecord{}, translate(err)
	}
	return rec, nil
}

// RecordByID returns the score record with the given id.
func (s *PGStore) RecordByID(ctx context.Context, id string) (model.ScoreRecord, error) {
	return s.scanRecord(s.pool.QueryRow(ctx, `
		SELECT id, student_id, course_id, score, academic_year, semester, created_at
		FROM results WHERE id = $1
	`, id))
}

// RecordByKey returns the record occupying the composite key, if any.
func (s *PGStore) RecordByKey(ctx context.Context, key model.RecordKey) (model.ScoreRecord, error) {
	return s.scanRecord(s.pool.QueryRow(ctx, `
		SELECT id, student_id, course_id, score, academic_year, semester, created_at
		FROM results
		WHERE student_id = $1 AND course_id = $2 AND academic_year = $3 AND semester = $4
	`, key.StudentID, key.CourseID, key.AcademicYear, string(key.Semester)))
}

func (s *PGStore) scanRecord(row pgx.Row) (model.ScoreRecord, error) {
	var rec model.ScoreRecord
	var semester string
	err := row.Scan(&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Score, &rec.AcademicYear, &semester, &rec.CreatedAt)
	if err != nil {
		return model.ScoreRecord{}, translate(err)
	}
	rec.Semester = model.Semester(semester)
	return rec, nil
}

// UpdateRecord applies new key fields and score to an existing record; the
// unique index re-checks the composite key against all other rows.
func (s *PGStore) UpdateRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	err := s.pool.QueryRow(ctx, `
		UPDATE results
		SET student_id = $2, course_id = $3, score = $4, academic_year = $5, semester = $6
		WHERE id = $1
		RETURNING created_at
	`, rec.ID, rec.StudentID, rec.CourseID, rec.Score, rec.AcademicYear, string(rec.Semester)).Scan(&rec.CreatedAt)
	if err != nil {
		return model.ScoreRecord{}, translate(err)
	}
	return rec, nil
}

// DeleteRecord removes a score record.
func (s *PGStore) DeleteRecord(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Records returns all score records, newest first.
func (s *PGStore) Records(ctx context.Context) ([]model.ScoreRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, student_id, course_id, score, academic_year, semester, created_at
		FROM results ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.ScoreRecord
	for rows.Next() {
		var rec model.ScoreRecord
		var semester string
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.CourseID, &rec.Score, &rec.AcademicYear, &semester, &rec.CreatedAt); err != nil {
			return nil, translate(err)
		}
		rec.Semester = model.Semester(semester)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Rows returns every score record joined with student, institute and
// course identity fields in one statement, so the reports always see a
// single consistent snapshot.
func (s *PGStore) Rows(ctx context.Context) ([]model.ScoreRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.student_id, r.course_id, r.score, r.academic_year, r.semester, r.created_at,
		       s.first_name, s.last_name, i.id, i.name, c.name, c.code
		FROM results r
		JOIN students s ON r.student_id = s.id
		JOIN institutes i ON s.institute_id = i.id
		JOIN courses c ON r.course_id = c.id
		ORDER BY r.created_at
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.ScoreRow
	for rows.Next() {
		var row model.ScoreRow
		var semester string
		if err := rows.Scan(
			&row.ID, &row.StudentID, &row.CourseID, &row.Score, &row.AcademicYear, &semester, &row.CreatedAt,
			&row.FirstName, &row.LastName, &row.InstituteID, &row.InstituteName, &row.CourseName, &row.CourseCode,
		); err != nil {
			return nil, translate(err)
		}
		row.Semester = model.Semester(semester)
		out = append(out, row)
	}
	return out, rows.Err()
}

// InsertInstitute adds an institute.
func (s *PGStore) InsertInstitute(ctx context.Context, in model.Institute) (model.Institute, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Status == "" {
		in.Status = model.StatusActive
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO institutes (id, name, code, address, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, in.ID, in.Name, in.Code, in.Address, in.Status).Scan(&in.CreatedAt)
	if err != nil {
		return model.Institute{}, translate(err)
	}
	return in, nil
}

// InstituteByID returns one institute.
func (s *PGStore) InstituteByID(ctx context.Context, id string) (model.Institute, error) {
	var in model.Institute
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, code, address, status, created_at FROM institutes WHERE id = $1
	`, id).Scan(&in.ID, &in.Name, &in.Code, &in.Address, &in.Status, &in.CreatedAt)
	if err != nil {
		return model.Institute{}, translate(err)
	}
	return in, nil
}

// Institutes returns all institutes, newest first.
func (s *PGStore) Institutes(ctx context.Context) ([]model.Institute, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, code, address, status, created_at FROM institutes ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Institute
	for rows.Next() {
		var in model.Institute
		if err := rows.Scan(&in.ID, &in.Name, &in.Code, &in.Address, &in.Status, &in.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// UpdateInstitute replaces the mutable fields of an institute.
func (s *PGStore) UpdateInstitute(ctx context.Context, in model.Institute) (model.Institute, error) {
	err := s.pool.QueryRow(ctx, `
		UPDATE institutes SET name = $2, code = $3, address = $4, status = $5
		WHERE id = $1
		RETURNING created_at
	`, in.ID, in.Name, in.Code, in.Address, in.Status).Scan(&in.CreatedAt)
	if err != nil {
		return model.Institute{}, translate(err)
	}
	return in, nil
}

// DeleteInstitute removes an institute; the students FK refuses it while
// students still reference it.
func (s *PGStore) DeleteInstitute(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM institutes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(translate(err), ErrForeignKey) {
			return ErrConflict
		}
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertStudent adds a student.
func (s *PGStore) InsertStudent(ctx context.Context, stu model.Student) (model.Student, error) {
	if stu.ID == "" {
		stu.ID = uuid.NewString()
	}
	if stu.Status == "" {
		stu.Status = model.StatusActive
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO students (id, institute_id, first_name, last_name, email, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, stu.ID, stu.InstituteID, stu.FirstName, stu.LastName, stu.Email, stu.Status).Scan(&stu.CreatedAt)
	if err != nil {
		return model.Student{}, translate(err)
	}
	return stu, nil
}

// StudentByID returns one student.
func (s *PGStore) StudentByID(ctx context.Context, id string) (model.Student, error) {
	var stu model.Student
	err := s.pool.QueryRow(ctx, `
		SELECT id, institute_id, first_name, last_name, email, status, created_at
		FROM students WHERE id = $1
	`, id).Scan(&stu.ID, &stu.InstituteID, &stu.FirstName, &stu.LastName, &stu.Email, &stu.Status, &stu.CreatedAt)
	if err != nil {
		return model.Student{}, translate(err)
	}
	return stu, nil
}

// Students returns all students, newest first.
func (s *PGStore) Students(ctx context.Context) ([]model.Student, error) {
	return s.queryStudents(ctx, `
		SELECT id, institute_id, first_name, last_name, email, status, created_at
		FROM students ORDER BY created_at DESC
	`)
}

// StudentsByInstitute returns the institute's students, newest first.
func (s *PGStore) StudentsByInstitute(ctx context.Context, instituteID string) ([]model.Student, error) {
	if _, err := s.InstituteByID(ctx, instituteID); err != nil {
		return nil, err
	}
	return s.queryStudents(ctx, `
		SELECT id, institute_id, first_name, last_name, email, status, created_at
		FROM students WHERE institute_id = $1 ORDER BY created_at DESC
	`, instituteID)
}

func (s *PGStore) queryStudents(ctx context.Context, sql string, args ...any) ([]model.Student, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		var stu model.Student
		if err := rows.Scan(&stu.ID, &stu.InstituteID, &stu.FirstName, &stu.LastName, &stu.Email, &stu.Status, &stu.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, stu)
	}
	return out, rows.Err()
}

// UpdateStudent replaces the mutable fields of a student.
func (s *PGStore) UpdateStudent(ctx context.Context, stu model.Student) (model.Student, error) {
	err := s.pool.QueryRow(ctx, `
		UPDATE students SET institute_id = $2, first_name = $3, last_name = $4, email = $5, status = $6
		WHERE id = $1
		RETURNING created_at
	`, stu.ID, stu.InstituteID, stu.FirstName, stu.LastName, stu.Email, stu.Status).Scan(&stu.CreatedAt)
	if err != nil {
		return model.Student{}, translate(err)
	}
	return stu, nil
}

// DeleteStudent removes a student; the results FK refuses it while score
// records still reference it.
func (s *PGStore) DeleteStudent(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		if errors.Is(translate(err), ErrForeignKey) {
			return ErrConflict
		}
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertCourse adds a course.
func (s *PGStore) InsertCourse(ctx context.Context, c model.Course) (model.Course, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO courses (id, name, code, description, credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, c.ID, c.Name, c.Code, c.Description, c.Credits).Scan(&c.CreatedAt)
	if err != nil {
		return model.Course{}, translate(err)
	}
	return c, nil
}

// CourseByID returns one course.
func (s *PGStore) CourseByID(ctx context.Context, id string) (model.Course, error) {
	var c model.Course
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, code, description, credits, created_at FROM courses WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credits, &c.CreatedAt)
	if err != nil {
		return model.Course{}, translate(err)
	}
	return c, nil
}

// Courses returns all courses, newest first.
func (s *PGStore) Courses(ctx context.Context) ([]model.Course, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, code, description, credits, created_at FROM courses ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.Credits, &c.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateCourse replaces the mutable fields of a course.
func (s *PGStore) UpdateCourse(ctx context.Context, c model.Course) (model.Course, error) {
	err := s.pool.QueryRow(ctx, `
		UPDATE courses SET name = $2, code = $3, description = $4, credits = $5
		WHERE id = $1
		RETURNING created_at
	`, c.ID, c.Name, c.Code, c.Description, c.Credits).Scan(&c.CreatedAt)
	if err != nil {
		return model.Course{}, translate(err)
	}
	return c, nil
}

// DeleteCourse removes a course; the results FK refuses it while score
// records still reference it.
func (s *PGStore) DeleteCourse(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(translate(err), ErrForeignKey) {
			return ErrConflict
		}
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertUser adds an API user.
func (s *PGStore) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, u.ID, u.Email, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		return model.User{}, translate(err)
	}
	return u, nil
}

// UserByEmail returns the user owning the email.
func (s *PGStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return model.User{}, translate(err)
	}
	return u, nil
}

// Close releases the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
