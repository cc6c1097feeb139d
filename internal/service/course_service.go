package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

// CreateCourseRequest holds payload for creating courses.
type CreateCourseRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"required,min=1,max=6"`
	Instructor  string `json:"instructor" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Room        string `json:"room"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
}

// UpdateCourseRequest is a partial update; nil fields keep their stored value.
type UpdateCourseRequest struct {
	Code        *string `json:"code" validate:"omitempty,min=1"`
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits" validate:"omitempty,min=1,max=6"`
	Instructor  *string `json:"instructor" validate:"omitempty,min=1"`
	Schedule    *string `json:"schedule" validate:"omitempty,min=1"`
	Room        *string `json:"room"`
	Enrolled    *int    `json:"enrolled" validate:"omitempty,gte=0"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
}

// EnrollmentRequest names the student joining or leaving a course.
type EnrollmentRequest struct {
	StudentID int `json:"student_id" validate:"omitempty,gt=0"`
}

// CourseService handles course use-cases.
type CourseService struct {
	store     recordStore[models.Course]
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(store recordStore[models.Course], cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{store: store, cache: cache, validator: validate, logger: logger}
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.All(ctx)
	if err != nil {
		return nil, storeError(err, "course", "list courses")
	}
	return courses, nil
}

// Get returns a single course.
func (s *CourseService) Get(ctx context.Context, id int) (*models.Course, error) {
	course, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, "course", "load course")
	}
	return &course, nil
}

// Enrolled returns the courses of the given student. Every student is enrolled in every course.
func (s *CourseService) Enrolled(ctx context.Context, studentID int) ([]models.Course, error) {
	courses, err := s.store.All(ctx)
	if err != nil {
		return nil, storeError(err, "course", "list enrolled courses")
	}
	return courses, nil
}

// Available returns the courses with free seats.
func (s *CourseService) Available(ctx context.Context) ([]models.Course, error) {
	courses, err := s.store.Filter(ctx, func(c models.Course) bool { return c.Enrolled < c.Capacity })
	if err != nil {
		return nil, storeError(err, "course", "list available courses")
	}
	return courses, nil
}

// Enroll takes one seat in the course. A full course fails with ErrCourseFull and keeps its count.
func (s *CourseService) Enroll(ctx context.Context, courseID, studentID int) (*models.Course, error) {
	course, err := s.store.Update(ctx, courseID, func(c *models.Course) error {
		if c.Enrolled >= c.Capacity {
			return appErrors.ErrCourseFull
		}
		c.Enrolled++
		return nil
	})
	if err != nil {
		if errors.Is(err, appErrors.ErrCourseFull) {
			s.logger.Info("enrollment rejected: course full", zap.Int("course_id", courseID), zap.Int("student_id", studentID))
			return nil, appErrors.Clone(appErrors.ErrCourseFull, "")
		}
		return nil, storeError(err, "course", "enroll in course")
	}
	s.logger.Info("student enrolled", zap.Int("course_id", courseID), zap.Int("student_id", studentID), zap.Int("enrolled", course.Enrolled))
	s.cache.InvalidateDashboards(ctx)
	return &course, nil
}

// Drop frees one seat in the course. The count never goes below zero.
func (s *CourseService) Drop(ctx context.Context, courseID, studentID int) (*models.Course, error) {
	course, err := s.store.Update(ctx, courseID, func(c *models.Course) error {
		if c.Enrolled > 0 {
			c.Enrolled--
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "course", "drop course")
	}
	s.logger.Info("student dropped course", zap.Int("course_id", courseID), zap.Int("student_id", studentID), zap.Int("enrolled", course.Enrolled))
	s.cache.InvalidateDashboards(ctx)
	return &course, nil
}

// Create adds a course with no enrolled students.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	created, err := s.store.Insert(ctx, models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Credits:     req.Credits,
		Instructor:  req.Instructor,
		Schedule:    req.Schedule,
		Room:        req.Room,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return nil, storeError(err, "course", "create course")
	}
	s.cache.InvalidateDashboards(ctx)
	return &created, nil
}

// Update merges the provided fields into the stored course. Enrolled may exceed capacity here.
func (s *CourseService) Update(ctx context.Context, id int, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid course payload")
	}
	updated, err := s.store.Update(ctx, id, func(c *models.Course) error {
		setString(&c.Code, req.Code)
		setString(&c.Name, req.Name)
		setString(&c.Description, req.Description)
		setInt(&c.Credits, req.Credits)
		setString(&c.Instructor, req.Instructor)
		setString(&c.Schedule, req.Schedule)
		setString(&c.Room, req.Room)
		setInt(&c.Enrolled, req.Enrolled)
		setInt(&c.Capacity, req.Capacity)
		return nil
	})
	if err != nil {
		return nil, storeError(err, "course", "update course")
	}
	s.cache.InvalidateDashboards(ctx)
	return &updated, nil
}

// Delete removes a course. Grades referencing its code are left alone.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "course", "delete course")
	}
	s.cache.InvalidateDashboards(ctx)
	return nil
}
