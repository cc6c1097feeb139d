package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/academics"
	"github.com/noah-isme/scholarhub-api/internal/models"
)

// CreateGradeRequest holds payload for recording a grade.
type CreateGradeRequest struct {
	CourseCode string  `json:"course_code" validate:"required"`
	CourseName string  `json:"course_name" validate:"required"`
	Grade      string  `json:"grade" validate:"required,max=3"`
	Credits    int     `json:"credits" validate:"gte=0,max=12"`
	Points     float64 `json:"points" validate:"gte=0,lte=4.3"`
	Semester   string  `json:"semester" validate:"required"`
}

// UpdateGradeRequest is a partial update; nil fields keep their stored value.
type UpdateGradeRequest struct {
	CourseCode *string  `json:"course_code" validate:"omitempty,min=1"`
	CourseName *string  `json:"course_name" validate:"omitempty,min=1"`
	Grade      *string  `json:"grade" validate:"omitempty,max=3"`
	Credits    *int     `json:"credits" validate:"omitempty,gte=0,max=12"`
	Points     *float64 `json:"points" validate:"omitempty,gte=0,lte=4.3"`
	Semester   *string  `json:"semester" validate:"omitempty,min=1"`
}

// GradeService handles grade use-cases.
type GradeService struct {
	store     recordStore[models.Grade]
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService constructs the grade service.
func NewGradeService(store recordStore[models.Grade], cache *CacheService, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{store: store, cache: cache, validator: validate, logger: logger}
}

// List returns every grade.
func (s *GradeService) List(ctx context.Context) ([]models.Grade, error) {
	grades, err := s.store.All(ctx)
	if err != nil {
		return nil, storeError(err, "grade", "list grades")
	}
	return grades, nil
}

// Get returns a single grade.
func (s *GradeService) Get(ctx context.Context, id int) (*models.Grade, error) {
	grade, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, "grade", "load grade")
	}
	return &grade, nil
}

// ForStudent returns the grades of the given student. Grades carry no owner, so every grade matches.
func (s *GradeService) ForStudent(ctx context.Context, studentID int) ([]models.Grade, error) {
	return s.List(ctx)
}

// BySemester returns the grades recorded in semester.
func (s *GradeService) BySemester(ctx context.Context, semester string) ([]models.Grade, error) {
	grades, err := s.store.Filter(ctx, func(g models.Grade) bool { return g.Semester == semester })
	if err != nil {
		return nil, storeError(err, "grade", "list semester grades")
	}
	return grades, nil
}

// GPA returns the overall credit-weighted GPA of the student.
func (s *GradeService) GPA(ctx context.Context, studentID int) (float64, error) {
	grades, err := s.ForStudent(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return academics.ComputeGPA(grades), nil
}

// SemesterGPA returns the GPA restricted to one semester.
func (s *GradeService) SemesterGPA(ctx context.Context, studentID int, semester string) (float64, error) {
	grades, err := s.BySemester(ctx, semester)
	if err != nil {
		return 0, err
	}
	return academics.ComputeGPA(grades), nil
}

// Transcript groups the student's grades by semester, most recent semester first.
func (s *GradeService) Transcript(ctx context.Context, studentID int) ([]models.TranscriptTerm, error) {
	grades, err := s.ForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return BuildTranscript(grades), nil
}

// BuildTranscript groups grades into terms ordered most recent first.
func BuildTranscript(grades []models.Grade) []models.TranscriptTerm {
	semesters := academics.Semesters(grades)
	terms := make([]models.TranscriptTerm, 0, len(semesters))
	for _, semester := range semesters {
		termGrades := academics.FilterBySemester(grades, semester)
		terms = append(terms, models.TranscriptTerm{
			Semester: semester,
			GPA:      academics.ComputeGPA(termGrades),
			Credits:  academics.TotalCredits(termGrades),
			Grades:   termGrades,
		})
	}
	return terms
}

// Create records a grade.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid grade payload")
	}
	created, err := s.store.Insert(ctx, models.Grade{
		CourseCode: req.CourseCode,
		CourseName: req.CourseName,
		Grade:      req.Grade,
		Credits:    req.Credits,
		Points:     req.Points,
		Semester:   req.Semester,
	})
	if err != nil {
		return nil, storeError(err, "grade", "create grade")
	}
	s.cache.InvalidateDashboards(ctx)
	return &created, nil
}

// Update merges the provided fields into the stored grade.
func (s *GradeService) Update(ctx context.Context, id int, req UpdateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid grade payload")
	}
	updated, err := s.store.Update(ctx, id, func(g *models.Grade) error {
		setString(&g.CourseCode, req.CourseCode)
		setString(&g.CourseName, req.CourseName)
		setString(&g.Grade, req.Grade)
		setInt(&g.Credits, req.Credits)
		if req.Points != nil {
			g.Points = *req.Points
		}
		setString(&g.Semester, req.Semester)
		return nil
	})
	if err != nil {
		return nil, storeError(err, "grade", "update grade")
	}
	s.cache.InvalidateDashboards(ctx)
	return &updated, nil
}

// Delete removes a grade.
func (s *GradeService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "grade", "delete grade")
	}
	s.cache.InvalidateDashboards(ctx)
	return nil
}
