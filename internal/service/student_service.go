package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarhub-api/internal/models"
	appErrors "github.com/noah-isme/scholarhub-api/pkg/errors"
)

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	StudentNumber            string  `json:"student_number" validate:"required"`
	Name                     string  `json:"name" validate:"required"`
	Email                    string  `json:"email" validate:"required,email"`
	Phone                    string  `json:"phone"`
	Address                  string  `json:"address"`
	Major                    string  `json:"major" validate:"required"`
	Year                     int     `json:"year" validate:"required,min=1,max=4"`
	GPA                      float64 `json:"gpa" validate:"gte=0,lte=4"`
	Credits                  int     `json:"credits" validate:"gte=0"`
	EmergencyContactName     string  `json:"emergency_contact_name"`
	EmergencyContactPhone    string  `json:"emergency_contact_phone"`
	EmergencyContactRelation string  `json:"emergency_contact_relation"`
}

// UpdateStudentRequest is a partial update; nil fields keep their stored value.
type UpdateStudentRequest struct {
	StudentNumber            *string               `json:"student_number" validate:"omitempty,min=1"`
	Name                     *string               `json:"name" validate:"omitempty,min=1"`
	Email                    *string               `json:"email" validate:"omitempty,email"`
	Phone                    *string               `json:"phone"`
	Address                  *string               `json:"address"`
	Major                    *string               `json:"major" validate:"omitempty,min=1"`
	Year                     *int                  `json:"year" validate:"omitempty,min=1,max=4"`
	GPA                      *float64              `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	Credits                  *int                  `json:"credits" validate:"omitempty,gte=0"`
	Status                   *models.StudentStatus `json:"status" validate:"omitempty,oneof=active inactive"`
	EmergencyContactName     *string               `json:"emergency_contact_name"`
	EmergencyContactPhone    *string               `json:"emergency_contact_phone"`
	EmergencyContactRelation *string               `json:"emergency_contact_relation"`
}

// UpdateProfileRequest carries the fields a student may edit on their own profile.
type UpdateProfileRequest struct {
	Name                     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Email                    *string `json:"email" validate:"omitempty,email"`
	Phone                    *string `json:"phone" validate:"omitempty,max=32"`
	Address                  *string `json:"address" validate:"omitempty,max=255"`
	EmergencyContactName     *string `json:"emergency_contact_name" validate:"omitempty,max=120"`
	EmergencyContactPhone    *string `json:"emergency_contact_phone" validate:"omitempty,max=32"`
	EmergencyContactRelation *string `json:"emergency_contact_relation" validate:"omitempty,max=60"`
}

// StudentService handles student use-cases.
type StudentService struct {
	store     recordStore[models.Student]
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(store recordStore[models.Student], cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: store, cache: cache, validator: validate, logger: logger, now: time.Now}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.store.All(ctx)
	if err != nil {
		return nil, storeError(err, "student", "list students")
	}
	return students, nil
}

// Get returns a single student.
func (s *StudentService) Get(ctx context.Context, id int) (*models.Student, error) {
	student, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, storeError(err, "student", "load student")
	}
	return &student, nil
}

// Profile returns the profile of the given student.
func (s *StudentService) Profile(ctx context.Context, studentID int) (*models.Student, error) {
	student, err := s.store.Find(ctx, studentID)
	if err != nil {
		return nil, storeError(err, "student profile", "load student profile")
	}
	return &student, nil
}

// Create registers a new active student enrolled today.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	created, err := s.store.Insert(ctx, models.Student{
		StudentNumber:            req.StudentNumber,
		Name:                     req.Name,
		Email:                    req.Email,
		Phone:                    req.Phone,
		Address:                  req.Address,
		Major:                    req.Major,
		Year:                     req.Year,
		GPA:                      req.GPA,
		Credits:                  req.Credits,
		EnrollmentDate:           s.now().Format("2006-01-02"),
		Status:                   models.StudentStatusActive,
		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
	})
	if err != nil {
		return nil, storeError(err, "student", "create student")
	}
	s.logger.Info("student created", zap.Int("student_id", created.ID))
	return &created, nil
}

// Update merges the provided fields into the stored student.
func (s *StudentService) Update(ctx context.Context, id int, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	updated, err := s.store.Update(ctx, id, func(st *models.Student) error {
		setString(&st.StudentNumber, req.StudentNumber)
		setString(&st.Name, req.Name)
		setString(&st.Email, req.Email)
		setString(&st.Phone, req.Phone)
		setString(&st.Address, req.Address)
		setString(&st.Major, req.Major)
		setInt(&st.Year, req.Year)
		setInt(&st.Credits, req.Credits)
		if req.GPA != nil {
			st.GPA = *req.GPA
		}
		if req.Status != nil {
			st.Status = *req.Status
		}
		setString(&st.EmergencyContactName, req.EmergencyContactName)
		setString(&st.EmergencyContactPhone, req.EmergencyContactPhone)
		setString(&st.EmergencyContactRelation, req.EmergencyContactRelation)
		return nil
	})
	if err != nil {
		return nil, storeError(err, "student", "update student")
	}
	s.cache.InvalidateDashboards(ctx)
	return &updated, nil
}

// UpdateProfile applies a self-service profile edit.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID int, req UpdateProfileRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid profile payload")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name must not be empty")
	}
	student, err := s.Update(ctx, studentID, UpdateStudentRequest{
		Name:                     req.Name,
		Email:                    req.Email,
		Phone:                    req.Phone,
		Address:                  req.Address,
		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile updated", zap.Int("student_id", studentID))
	return student, nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storeError(err, "student", "delete student")
	}
	s.cache.InvalidateDashboards(ctx)
	return nil
}
