package app

import (
	"context"
	"fmt"

	"github.com/okian/gradebook/internal/domain/model"
	"github.com/okian/gradebook/internal/domain/paging"
)

// CreateInstitute validates and stores a new institute.
func (s *Service) CreateInstitute(ctx context.Context, in model.InstituteInput) (model.Institute, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Institute{}, err
	}
	out, err := s.store.InsertInstitute(ctx, model.Institute{
		Name:    in.Name,
		Code:    in.Code,
		Address: in.Address,
		Status:  in.Status,
	})
	if err != nil {
		return model.Institute{}, fmt.Errorf("create institute: %w", err)
	}
	return out, nil
}

// Institute returns one institute by id.
func (s *Service) Institute(ctx context.Context, id string) (model.Institute, error) {
	out, err := s.store.InstituteByID(ctx, id)
	if err != nil {
		return model.Institute{}, fmt.Errorf("institute %s: %w", id, err)
	}
	return out, nil
}

// Institutes lists institutes newest first, windowed.
func (s *Service) Institutes(ctx context.Context, page, limit int) (paging.Page[model.Institute], error) {
	all, err := s.store.Institutes(ctx)
	if err != nil {
		return paging.Page[model.Institute]{}, fmt.Errorf("list institutes: %w", err)
	}
	return window(s, all, page, limit), nil
}

// UpdateInstitute validates and applies a full replacement.
func (s *Service) UpdateInstitute(ctx context.Context, id string, in model.InstituteInput) (model.Institute, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Institute{}, err
	}
	existing, err := s.store.InstituteByID(ctx, id)
	if err != nil {
		return model.Institute{}, fmt.Errorf("institute %s: %w", id, err)
	}
	status := in.Status
	if status == "" {
		status = existing.Status
	}
	out, err := s.store.UpdateInstitute(ctx, model.Institute{
		ID:      id,
		Name:    in.Name,
		Code:    in.Code,
		Address: in.Address,
		Status:  status,
	})
	if err != nil {
		return model.Institute{}, fmt.Errorf("update institute %s: %w", id, err)
	}
	return out, nil
}

// DeleteInstitute removes an institute.
func (s *Service) DeleteInstitute(ctx context.Context, id string) error {
	if err := s.store.DeleteInstitute(ctx, id); err != nil {
		return fmt.Errorf("delete institute %s: %w", id, err)
	}
	return nil
}

// CreateStudent validates and stores a new student.
func (s *Service) CreateStudent(ctx context.Context, in model.StudentInput) (model.Student, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Student{}, err
	}
	out, err := s.store.InsertStudent(ctx, model.Student{
		InstituteID: in.InstituteID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Status:      in.Status,
	})
	if err != nil {
		return model.Student{}, fmt.Errorf("create student: %w", err)
	}
	return out, nil
}

// Student returns one student by id.
func (s *Service) Student(ctx context.Context, id string) (model.Student, error) {
	out, err := s.store.StudentByID(ctx, id)
	if err != nil {
		return model.Student{}, fmt.Errorf("student %s: %w", id, err)
	}
	return out, nil
}

// Students lists students newest first, windowed.
func (s *Service) Students(ctx context.Context, page, limit int) (paging.Page[model.Student], error) {
	all, err := s.store.Students(ctx)
	if err != nil {
		return paging.Page[model.Student]{}, fmt.Errorf("list students: %w", err)
	}
	return window(s, all, page, limit), nil
}

// StudentsByInstitute lists an institute's students newest first, windowed.
func (s *Service) StudentsByInstitute(ctx context.Context, instituteID string, page, limit int) (paging.Page[model.Student], error) {
	all, err := s.store.StudentsByInstitute(ctx, instituteID)
	if err != nil {
		return paging.Page[model.Student]{}, fmt.Errorf("institute %s students: %w", instituteID, err)
	}
	return window(s, all, page, limit), nil
}

// UpdateStudent validates and applies a full replacement.
func (s *Service) UpdateStudent(ctx context.Context, id string, in model.StudentInput) (model.Student, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Student{}, err
	}
	existing, err := s.store.StudentByID(ctx, id)
	if err != nil {
		return model.Student{}, fmt.Errorf("student %s: %w", id, err)
	}
	status := in.Status
	if status == "" {
		status = existing.Status
	}
	out, err := s.store.UpdateStudent(ctx, model.Student{
		ID:          id,
		InstituteID: in.InstituteID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Status:      status,
	})
	if err != nil {
		return model.Student{}, fmt.Errorf("update student %s: %w", id, err)
	}
	return out, nil
}

// DeleteStudent removes a student.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return fmt.Errorf("delete student %s: %w", id, err)
	}
	return nil
}

// CreateCourse validates and stores a new course.
func (s *Service) CreateCourse(ctx context.Context, in model.CourseInput) (model.Course, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Course{}, err
	}
	out, err := s.store.InsertCourse(ctx, model.Course{
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		Credits:     in.Credits,
	})
	if err != nil {
		return model.Course{}, fmt.Errorf("create course: %w", err)
	}
	return out, nil
}

// Course returns one course by id.
func (s *Service) Course(ctx context.Context, id string) (model.Course, error) {
	out, err := s.store.CourseByID(ctx, id)
	if err != nil {
		return model.Course{}, fmt.Errorf("course %s: %w", id, err)
	}
	return out, nil
}

// Courses lists courses newest first, windowed.
func (s *Service) Courses(ctx context.Context, page, limit int) (paging.Page[model.Course], error) {
	all, err := s.store.Courses(ctx)
	if err != nil {
		return paging.Page[model.Course]{}, fmt.Errorf("list courses: %w", err)
	}
	return window(s, all, page, limit), nil
}

// UpdateCourse validates and applies a full replacement.
func (s *Service) UpdateCourse(ctx context.Context, id string, in model.CourseInput) (model.Course, error) {
	if err := s.validator.Struct(in); err != nil {
		return model.Course{}, err
	}
	if _, err := s.store.CourseByID(ctx, id); err != nil {
		return model.Course{}, fmt.Errorf("course %s: %w", id, err)
	}
	out, err := s.store.UpdateCourse(ctx, model.Course{
		ID:          id,
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		Credits:     in.Credits,
	})
	if err != nil {
		return model.Course{}, fmt.Errorf("update course %s: %w", id, err)
	}
	return out, nil
}

// DeleteCourse removes a course.
func (s *Service) DeleteCourse(ctx context.Context, id string) error {
	if err := s.store.DeleteCourse(ctx, id); err != nil {
		return fmt.Errorf("delete course %s: %w", id, err)
	}
	return nil
}
