package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/pkg/metrics"
)

// MemStore is the in-memory Store implementation. A single RWMutex guards
// every map, so the composite-key check and the insert happen under one
// critical section and report reads always see whole records, never a
// partial write.
type MemStore struct {
	mu sync.RWMutex

	records    map[string]model.ScoreRecord
	recordKeys map[model.RecordKey]string // composite key -> record id
	recordIDs  []string                   // insertion order

	institutes   map[string]model.Institute
	instituteIDs []string

	students   map[string]model.Student
	studentIDs []string

	courses     map[string]model.Course
	courseCodes map[string]string // code -> course id
	courseIDs   []string

	users        map[string]model.User
	usersByEmail map[string]string

	now func() time.Time
}

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithClock overrides the timestamp source. Tests use it to pin CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		records:      make(map[string]model.ScoreRecord),
		recordKeys:   make(map[model.RecordKey]string),
		institutes:   make(map[string]model.Institute),
		students:     make(map[string]model.Student),
		courses:      make(map[string]model.Course),
		courseCodes:  make(map[string]string),
		users:        make(map[string]model.User),
		usersByEmail: make(map[string]string),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InsertRecord appends a new score record after checking, under the same
// lock, that the referenced student and course exist and that the
// composite key is free. Returns ErrConflict without mutating anything
// when the key is taken.
func (s *MemStore) InsertRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[rec.StudentID]; !ok {
		return model.ScoreRecord{}, ErrForeignKey
	}
	if _, ok := s.courses[rec.CourseID]; !ok {
		return model.ScoreRecord{}, ErrForeignKey
	}
	if _, taken := s.recordKeys[rec.Key()]; taken {
		return model.ScoreRecord{}, ErrConflict
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	s.records[rec.ID] = rec
	s.recordKeys[rec.Key()] = rec.ID
	s.recordIDs = append(s.recordIDs, rec.ID)
	metrics.UpdateStoreRecords(len(s.records))
	return rec, nil
}

// RecordByID returns the score record with the given id.
func (s *MemStore) RecordByID(ctx context.Context, id string) (model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return model.ScoreRecord{}, ErrNotFound
	}
	return rec, nil
}

// RecordByKey returns the record occupying the composite key, if any.
func (s *MemStore) RecordByKey(ctx context.Context, key model.RecordKey) (model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.recordKeys[key]
	if !ok {
		return model.ScoreRecord{}, ErrNotFound
	}
	return s.records[id], nil
}

// UpdateRecord applies new key fields and score to an existing record.
// When the key fields change, the new key is checked against every other
// record under the same lock; a collision returns ErrConflict and leaves
// the record untouched.
func (s *MemStore) UpdateRecord(ctx context.Context, rec model.ScoreRecord) (model.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[rec.ID]
	if !ok {
		return model.ScoreRecord{}, ErrNotFound
	}
	if _, ok := s.students[rec.StudentID]; !ok {
		return model.ScoreRecord{}, ErrForeignKey
	}
	if _, ok := s.courses[rec.CourseID]; !ok {
		return model.ScoreRecord{}, ErrForeignKey
	}
	if rec.Key() != existing.Key() {
		if otherID, taken := s.recordKeys[rec.Key()]; taken && otherID != rec.ID {
			return model.ScoreRecord{}, ErrConflict
		}
		delete(s.recordKeys, existing.Key())
		s.recordKeys[rec.Key()] = rec.ID
	}

	rec.CreatedAt = existing.CreatedAt // immutable once set
	s.records[rec.ID] = rec
	return rec, nil
}

// DeleteRecord removes a score record.
func (s *MemStore) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	delete(s.recordKeys, rec.Key())
	s.recordIDs = removeID(s.recordIDs, id)
	metrics.UpdateStoreRecords(len(s.records))
	return nil
}

// Records returns all score records, newest first.
func (s *MemStore) Records(ctx context.Context) ([]model.ScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ScoreRecord, 0, len(s.recordIDs))
	for i := len(s.recordIDs) - 1; i >= 0; i-- {
		out = append(out, s.records[s.recordIDs[i]])
	}
	return out, nil
}

// Rows returns every score record joined with the identity fields the
// reports need, as one snapshot taken under a single read lock.
func (s *MemStore) Rows(ctx context.Context) ([]model.ScoreRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ScoreRow, 0, len(s.recordIDs))
	for _, id := range s.recordIDs {
		rec := s.records[id]
		stu := s.students[rec.StudentID]
		course := s.courses[rec.CourseID]
		inst := s.institutes[stu.InstituteID]
		out = append(out, model.ScoreRow{
			ScoreRecord:   rec,
			FirstName:     stu.FirstName,
			LastName:      stu.LastName,
			InstituteID:   inst.ID,
			InstituteName: inst.Name,
			CourseName:    course.Name,
			CourseCode:    course.Code,
		})
	}
	return out, nil
}

// InsertInstitute adds an institute. Codes are unique.
func (s *MemStore) InsertInstitute(ctx context.Context, in model.Institute) (model.Institute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.institutes {
		if other.Code == in.Code {
			return model.Institute{}, ErrConflict
		}
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	if in.Status == "" {
		in.Status = model.StatusActive
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = s.now()
	}
	s.institutes[in.ID] = in
	s.instituteIDs = append(s.instituteIDs, in.ID)
	return in, nil
}

// InstituteByID returns one institute.
func (s *MemStore) InstituteByID(ctx context.Context, id string) (model.Institute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.institutes[id]
	if !ok {
		return model.Institute{}, ErrNotFound
	}
	return in, nil
}

// Institutes returns all institutes, newest first.
func (s *MemStore) Institutes(ctx context.Context) ([]model.Institute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Institute, 0, len(s.instituteIDs))
	for i := len(s.instituteIDs) - 1; i >= 0; i-- {
		out = append(out, s.institutes[s.instituteIDs[i]])
	}
	return out, nil
}

// UpdateInstitute replaces the mutable fields of an institute.
func (s *MemStore) UpdateInstitute(ctx context.Context, in model.Institute) (model.Institute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.institutes[in.ID]
	if !ok {
		return model.Institute{}, ErrNotFound
	}
	for id, other := range s.institutes {
		if id != in.ID && other.Code == in.Code {
			return model.Institute{}, ErrConflict
		}
	}
	in.CreatedAt = existing.CreatedAt
	s.institutes[in.ID] = in
	return in, nil
}

// DeleteInstitute removes an institute unless students still reference it.
func (s *MemStore) DeleteInstitute(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.institutes[id]; !ok {
		return ErrNotFound
	}
	for _, stu := range s.students {
		if stu.InstituteID == id {
			return ErrConflict
		}
	}
	delete(s.institutes, id)
	s.instituteIDs = removeID(s.instituteIDs, id)
	return nil
}

// InsertStudent adds a student after checking the institute exists and the
// email is free.
func (s *MemStore) InsertStudent(ctx context.Context, stu model.Student) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.institutes[stu.InstituteID]; !ok {
		return model.Student{}, ErrForeignKey
	}
	for _, other := range s.students {
		if other.Email == stu.Email {
			return model.Student{}, ErrConflict
		}
	}
	if stu.ID == "" {
		stu.ID = uuid.NewString()
	}
	if stu.Status == "" {
		stu.Status = model.StatusActive
	}
	if stu.CreatedAt.IsZero() {
		stu.CreatedAt = s.now()
	}
	s.students[stu.ID] = stu
	s.studentIDs = append(s.studentIDs, stu.ID)
	return stu, nil
}

// StudentByID returns one student.
func (s *MemStore) StudentByID(ctx context.Context, id string) (model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stu, ok := s.students[id]
	if !ok {
		return model.Student{}, ErrNotFound
	}
	return stu, nil
}

// Students returns all students, newest first.
func (s *MemStore) Students(ctx context.Context) ([]model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Student, 0, len(s.studentIDs))
	for i := len(s.studentIDs) - 1; i >= 0; i-- {
		out = append(out, s.students[s.studentIDs[i]])
	}
	return out, nil
}

// StudentsByInstitute returns the institute's students, newest first.
func (s *MemStore) StudentsByInstitute(ctx context.Context, instituteID string) ([]model.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.institutes[instituteID]; !ok {
		return nil, ErrNotFound
	}
	var out []model.Student
	for i := len(s.studentIDs) - 1; i >= 0; i-- {
		stu := s.students[s.studentIDs[i]]
		if stu.InstituteID == instituteID {
			out = append(out, stu)
		}
	}
	return out, nil
}

// UpdateStudent replaces the mutable fields of a student.
func (s *MemStore) UpdateStudent(ctx context.Context, stu model.Student) (model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.students[stu.ID]
	if !ok {
		return model.Student{}, ErrNotFound
	}
	if _, ok := s.institutes[stu.InstituteID]; !ok {
		return model.Student{}, ErrForeignKey
	}
	for id, other := range s.students {
		if id != stu.ID && other.Email == stu.Email {
			return model.Student{}, ErrConflict
		}
	}
	stu.CreatedAt = existing.CreatedAt
	s.students[stu.ID] = stu
	return stu, nil
}

// DeleteStudent removes a student unless score records still reference it.
func (s *MemStore) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return ErrNotFound
	}
	for _, rec := range s.records {
		if rec.StudentID == id {
			return ErrConflict
		}
	}
	delete(s.students, id)
	s.studentIDs = removeID(s.studentIDs, id)
	return nil
}

// InsertCourse adds a course. Codes are unique.
func (s *MemStore) InsertCourse(ctx context.Context, c model.Course) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.courseCodes[c.Code]; taken {
		return model.Course{}, ErrConflict
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	s.courses[c.ID] = c
	s.courseCodes[c.Code] = c.ID
	s.courseIDs = append(s.courseIDs, c.ID)
	return c, nil
}

// CourseByID returns one course.
func (s *MemStore) CourseByID(ctx context.Context, id string) (model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return model.Course{}, ErrNotFound
	}
	return c, nil
}

// Courses returns all courses, newest first.
func (s *MemStore) Courses(ctx context.Context) ([]model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Course, 0, len(s.courseIDs))
	for i := len(s.courseIDs) - 1; i >= 0; i-- {
		out = append(out, s.courses[s.courseIDs[i]])
	}
	return out, nil
}

// UpdateCourse replaces the mutable fields of a course.
func (s *MemStore) UpdateCourse(ctx context.Context, c model.Course) (model.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.courses[c.ID]
	if !ok {
		return model.Course{}, ErrNotFound
	}
	if otherID, taken := s.courseCodes[c.Code]; taken && otherID != c.ID {
		return model.Course{}, ErrConflict
	}
	if existing.Code != c.Code {
		delete(s.courseCodes, existing.Code)
		s.courseCodes[c.Code] = c.ID
	}
	c.CreatedAt = existing.CreatedAt
	s.courses[c.ID] = c
	return c, nil
}

// DeleteCourse removes a course unless score records still reference it.
func (s *MemStore) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return ErrNotFound
	}
	for _, rec := range s.records {
		if rec.CourseID == id {
			return ErrConflict
		}
	}
	delete(s.courses, id)
	delete(s.courseCodes, c.Code)
	s.courseIDs = removeID(s.courseIDs, id)
	return nil
}

// InsertUser adds an API user. Emails are unique.
func (s *MemStore) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.usersByEmail[u.Email]; taken {
		return model.User{}, ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
	s.usersByEmail[u.Email] = u.ID
	return u, nil
}

// UserByEmail returns the user owning the email.
func (s *MemStore) UserByEmail(ctx context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usersByEmail[email]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return s.users[id], nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
